package rendering

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

func newTestRenderer(t *testing.T) *PNGRenderer {
	t.Helper()
	r, err := NewPNGRenderer(config.RenderConfig{}, logging.NewNopLogger())
	require.NoError(t, err)
	return r
}

func TestNewPNGRenderer_Defaults(t *testing.T) {
	r := newTestRenderer(t)
	w, h := r.Size()
	assert.Equal(t, config.DefaultRenderWidth, w)
	assert.Equal(t, config.DefaultRenderHeight, h)

	r, err := NewPNGRenderer(config.RenderConfig{Width: 120, Height: 80}, nil)
	require.NoError(t, err)
	w, h = r.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 80, h)
}

func TestPNGRenderer_Render(t *testing.T) {
	r := newTestRenderer(t)
	for _, smi := range []string{"C", "CCO", "c1ccccc1O", "CC#N", "C[N+](C)(C)C.[Cl-]", "O=C1C=CC(=O)C=C1"} {
		t.Run(smi, func(t *testing.T) {
			m, err := molecule.ParseSMILES(smi)
			require.NoError(t, err)

			data, err := r.Render(m)
			require.NoError(t, err)
			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 300, img.Bounds().Dx())
			assert.Equal(t, 300, img.Bounds().Dy())
		})
	}
}

func TestPNGRenderer_DrawsSomething(t *testing.T) {
	r := newTestRenderer(t)
	m, err := molecule.ParseSMILES("c1ccccc1")
	require.NoError(t, err)
	data, err := r.Render(m)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	dark := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr < 0x8000 && cg < 0x8000 && cb < 0x8000 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 100)
}

func TestPNGRenderer_Empty(t *testing.T) {
	r := newTestRenderer(t)
	_, err := r.Render(molecule.New())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeRenderFailed))

	_, err = r.Render(nil)
	assert.Error(t, err)
}

func TestAtomLabel(t *testing.T) {
	tests := []struct {
		smiles string
		atom   int
		want   string
	}{
		{"CCO", 0, ""},
		{"CCO", 2, "OH"},
		{"C", 0, "CH4"},
		{"CN", 1, "NH2"},
		{"C[N+](C)(C)C", 1, "N+"},
		{"CC(=O)[O-]", 3, "O-"},
		{"[13CH4]", 0, "13CH4"},
		{"CCl", 1, "Cl"},
	}
	for _, tt := range tests {
		t.Run(tt.smiles, func(t *testing.T) {
			m, err := molecule.ParseSMILES(tt.smiles)
			require.NoError(t, err)
			assert.Equal(t, tt.want, atomLabel(m, tt.atom))
		})
	}
}

//Personal.AI order the ending
