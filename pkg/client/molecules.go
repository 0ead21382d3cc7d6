package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	moltypes "github.com/turtacn/molgen/pkg/types/molecule"
)

// Generate builds the edited molecule and returns its report, descriptors
// and PNG depiction.
func (c *Client) Generate(ctx context.Context, req *moltypes.GenerateRequest) (*moltypes.GenerateResponse, error) {
	var resp moltypes.GenerateResponse
	if err := c.postJSON(ctx, "/api/v1/molecules/generate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Render builds the edited molecule and returns only the PNG bytes.
func (c *Client) Render(ctx context.Context, req *moltypes.GenerateRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/v1/molecules/render", req)
}

// ParseGroups validates a "fragment:index" list on the server.
func (c *Client) ParseGroups(ctx context.Context, functionalGroups string) ([]moltypes.FunctionalGroup, error) {
	var resp moltypes.ParseGroupsResponse
	err := c.postJSON(ctx, "/api/v1/functional-groups/parse",
		moltypes.ParseGroupsRequest{FunctionalGroups: functionalGroups}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

// History lists recent generations, newest first. limit <= 0 uses the
// server default.
func (c *Client) History(ctx context.Context, limit int) ([]moltypes.GenerationRecord, error) {
	path := "/api/v1/generations"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	var resp moltypes.HistoryResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

//Personal.AI order the ending
