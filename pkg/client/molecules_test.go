package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgen/pkg/types/common"
	moltypes "github.com/turtacn/molgen/pkg/types/molecule"
)

func TestClient_Generate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/molecules/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, r.Header.Get("User-Agent"), "molgen-go-sdk/")

		var req moltypes.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CCO", req.BaseSMILES)
		assert.Equal(t, "O:0", req.FunctionalGroups)

		_ = json.NewEncoder(w).Encode(moltypes.GenerateResponse{
			ID:          "gen-1",
			SMILES:      "OCCO",
			Descriptors: moltypes.Descriptors{MolWt: 62.068, HBD: 2, HBA: 2},
			Image:       []byte("png"),
		})
	})

	resp, err := c.Generate(context.Background(), &moltypes.GenerateRequest{BaseSMILES: "CCO", FunctionalGroups: "O:0"})
	require.NoError(t, err)
	assert.Equal(t, "OCCO", resp.SMILES)
	assert.Equal(t, 2, resp.Descriptors.HBD)
	assert.Equal(t, []byte("png"), resp.Image)
}

func TestClient_Generate_InputError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusBadRequest, common.ErrorDetail{Code: "MOL_018", Message: "invalid functional group index"})
	})

	_, err := c.Generate(context.Background(), &moltypes.GenerateRequest{BaseSMILES: "CCO", FunctionalGroups: "O:x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsInputError())
	assert.Equal(t, "MOL_018", apiErr.Code)
}

func TestClient_Render(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/molecules/render", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})

	got, err := c.Render(context.Background(), &moltypes.GenerateRequest{BaseSMILES: "c1ccccc1"})
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestClient_ParseGroups(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req moltypes.ParseGroupsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "O:0,N:1", req.FunctionalGroups)
		_ = json.NewEncoder(w).Encode(moltypes.ParseGroupsResponse{Groups: []moltypes.FunctionalGroup{
			{Fragment: "O", Index: 0}, {Fragment: "N", Index: 1},
		}})
	})

	groups, err := c.ParseGroups(context.Background(), "O:0,N:1")
	require.NoError(t, err)
	assert.Len(t, groups, 2)
	assert.Equal(t, "N", groups[1].Fragment)
}

func TestClient_History(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/generations", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(common.NewListResponse([]moltypes.GenerationRecord{{ID: "a"}, {ID: "b"}}))
	})

	records, err := c.History(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
}

func TestClient_History_DefaultLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"items":[],"count":0}`))
	})

	records, err := c.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

//Personal.AI order the ending
