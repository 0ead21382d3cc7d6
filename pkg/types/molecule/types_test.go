package molecule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequest_Normalize(t *testing.T) {
	req := GenerateRequest{BaseSMILES: "  CCO\n", FunctionalGroups: " O:0 "}
	req.Normalize()
	assert.Equal(t, "CCO", req.BaseSMILES)
	assert.Equal(t, "O:0", req.FunctionalGroups)
}

func TestGenerateResponse_ImageIsBase64(t *testing.T) {
	resp := GenerateResponse{
		ID:        "gen-1",
		SMILES:    "OCCO",
		Image:     []byte{0x89, 'P', 'N', 'G'},
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"image":"iVBORw=="`)

	var back GenerateResponse
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, resp.Image, back.Image)
}

func TestGenerationRecord_OptionalFieldsOmitted(t *testing.T) {
	data, err := json.Marshal(GenerationRecord{ID: "a"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "image_url")
	assert.NotContains(t, string(data), "image_key")
}

//Personal.AI order the ending
