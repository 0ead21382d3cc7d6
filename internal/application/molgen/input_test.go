package molgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgen/pkg/errors"
)

func TestParseFunctionalGroups(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []FunctionalGroupSpec
	}{
		{"empty", "", []FunctionalGroupSpec{}},
		{"single", "O:2", []FunctionalGroupSpec{{"O", 2}}},
		{"drops_tokens_without_colon", "O:1,bad,N:3", []FunctionalGroupSpec{{"O", 1}, {"N", 3}}},
		{"keeps_order", "N:5,O:2", []FunctionalGroupSpec{{"N", 5}, {"O", 2}}},
		{"trims_whitespace", " O : 2 , C(=O)O:0 ", []FunctionalGroupSpec{{"O", 2}, {"C(=O)O", 0}}},
		{"extra_colon_parts_ignored", "O:1:7", []FunctionalGroupSpec{{"O", 1}}},
		{"empty_fragment_kept", ":1", []FunctionalGroupSpec{{"", 1}}},
		{"negative_index_parsed", "O:-1", []FunctionalGroupSpec{{"O", -1}}},
		{"only_junk", "a,b,,c", []FunctionalGroupSpec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFunctionalGroups(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFunctionalGroups_BadIndex(t *testing.T) {
	for _, raw := range []string{"O:x", "O:1,N:", "O:1.5", "N:3,O:two"} {
		t.Run(raw, func(t *testing.T) {
			got, err := ParseFunctionalGroups(raw)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.IsCode(err, errors.ErrCodeFunctionalGroupBadIndex))
			assert.True(t, errors.IsInputSyntax(err))
		})
	}
}

func TestCollectForm(t *testing.T) {
	req, err := CollectForm(FormInput{
		BaseSMILES:       "  CCO ",
		FunctionalGroups: "O:0",
		Desired:          DesiredProperties{LogP: " 1.5", HBD: "2 "},
	})
	require.NoError(t, err)
	assert.Equal(t, "CCO", req.BaseSMILES)
	assert.Equal(t, []FunctionalGroupSpec{{"O", 0}}, req.Groups)
	assert.Equal(t, "1.5", req.Desired.LogP)
	assert.Equal(t, "2", req.Desired.HBD)

	_, err = CollectForm(FormInput{BaseSMILES: "CCO", FunctionalGroups: "O:zero"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeFunctionalGroupBadIndex))
}

func TestGenerateRequest_CacheKey(t *testing.T) {
	a := &GenerateRequest{BaseSMILES: "CCO", Groups: []FunctionalGroupSpec{{"O", 0}}}
	b := &GenerateRequest{BaseSMILES: "CCO", Groups: []FunctionalGroupSpec{{"O", 0}}, Desired: DesiredProperties{LogP: "3"}}
	c := &GenerateRequest{BaseSMILES: "CCO", Groups: []FunctionalGroupSpec{{"O", 1}}}

	assert.Len(t, a.CacheKey(), 64)
	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
	assert.Equal(t, "O:0", a.GroupsString())
}

//Personal.AI order the ending
