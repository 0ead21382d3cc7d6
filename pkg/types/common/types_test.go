package common

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDetail_Error(t *testing.T) {
	e := &ErrorDetail{Code: "MOL_018", Message: "invalid functional group index"}
	assert.Equal(t, "[MOL_018] invalid functional group index", e.Error())

	e.Detail = `"x" in "O:x"`
	assert.Equal(t, `[MOL_018] invalid functional group index: "x" in "O:x"`, e.Error())
}

func TestNewListResponse_NilBecomesEmpty(t *testing.T) {
	resp := NewListResponse[string](nil)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"count":0}`, string(data))
}

func TestNewListResponse_Count(t *testing.T) {
	resp := NewListResponse([]int{1, 2, 3})
	assert.Equal(t, 3, resp.Count)
}

func TestErrorDetail_DetailOmittedWhenEmpty(t *testing.T) {
	data, err := json.Marshal(ErrorDetail{Code: "COMMON_002", Message: "bad request"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "detail")
}

//Personal.AI order the ending
