package molecule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_ValenceErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"pentavalent_carbon", "C(C)(C)(C)(C)C"},
		{"trivalent_oxygen", "CO(C)C"},
		{"divalent_fluorine", "CF(C)"},
		{"bracket_overvalent", "[CH4](C)"},
		{"double_bonded_halogen", "C=Cl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSMILES(tt.input)
			require.Error(t, err)
			var serr *SanitizeError
			require.True(t, errors.As(err, &serr))
			assert.Contains(t, serr.Msg, "Explicit valence")
			assert.Len(t, serr.Atoms, 1)
		})
	}
}

func TestSanitize_ChargedAtomsUseIsoelectronicValence(t *testing.T) {
	m := mustParse(t, "C[N+](C)(C)C")
	assert.Equal(t, 0, m.Atom(1).TotalH())

	m = mustParse(t, "CC(=O)[O-]")
	assert.Equal(t, 0, m.Atom(3).TotalH())

	_, err := ParseSMILES("C[N+](C)(C)(C)C")
	assert.Error(t, err)
}

func TestSanitize_Kekulization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"benzene", "c1ccccc1", true},
		{"pyridine", "c1ccncc1", true},
		{"pyrrole", "c1cc[nH]c1", true},
		{"furan", "c1ccoc1", true},
		{"thiophene", "c1ccsc1", true},
		{"naphthalene", "c1ccc2ccccc2c1", true},
		{"indole", "c1ccc2[nH]ccc2c1", true},
		{"pyridone", "O=c1cccc[nH]1", true},
		{"biphenyl", "c1ccccc1c1ccccc1", true},
		{"pyrrole_without_h", "c1ccnc1", false},
		{"odd_ring", "c1cccc1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseSMILES(tt.input)
			if !tt.ok {
				require.Error(t, err)
				var serr *SanitizeError
				require.True(t, errors.As(err, &serr))
				assert.Contains(t, serr.Msg, "kekulize")
				return
			}
			require.NoError(t, err)
			// no atom takes more than one Kekulé double bond
			for i := 0; i < m.NumAtoms(); i++ {
				doubles := 0
				for _, bi := range m.AtomBonds(i) {
					if m.Bond(bi).Kekule == 2 {
						doubles++
					}
				}
				assert.LessOrEqual(t, doubles, 1, "atom %d", i)
			}
		})
	}
}

func TestSanitize_BiphenylLinkIsSingle(t *testing.T) {
	m := mustParse(t, "c1ccccc1c1ccccc1")
	link := m.BondBetween(5, 6)
	require.GreaterOrEqual(t, link, 0)
	assert.Equal(t, BondSingle, m.Bond(link).Order)
	assert.False(t, m.Bond(link).InRing)
}

func TestSanitize_RingBonds(t *testing.T) {
	m := mustParse(t, "CC1CC1")
	assert.False(t, m.Bond(m.BondBetween(0, 1)).InRing)
	assert.True(t, m.Bond(m.BondBetween(1, 2)).InRing)
	assert.False(t, m.AtomInRing(0))
	assert.True(t, m.AtomInRing(3))
	require.Len(t, m.Rings(), 1)
	assert.Len(t, m.Rings()[0], 3)

	m = mustParse(t, "C1CCC2CCCCC2C1")
	assert.Len(t, m.Rings(), 2)
}

func TestSanitize_AromaticityPerception(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		aromatic  []int
		aliphatic []int
	}{
		{"kekule_benzene", "C1=CC=CC=C1", []int{0, 1, 2, 3, 4, 5}, nil},
		{"kekule_pyrrole", "C1=CC=CN1", []int{0, 1, 2, 3, 4}, nil},
		{"kekule_pyridine", "C1=CC=NC=C1", []int{0, 1, 2, 3, 4, 5}, nil},
		{"cyclohexadiene", "C1=CCCC=C1", nil, []int{0, 1, 2, 3, 4, 5}},
		{"quinone", "O=C1C=CC(=O)C=C1", nil, []int{1, 2, 3, 4}},
		{"toluene_methyl", "CC1=CC=CC=C1", []int{1, 2, 3, 4, 5, 6}, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustParse(t, tt.input)
			for _, i := range tt.aromatic {
				assert.True(t, m.Atom(i).Aromatic, "atom %d", i)
			}
			for _, i := range tt.aliphatic {
				assert.False(t, m.Atom(i).Aromatic, "atom %d", i)
			}
		})
	}
}

func TestSanitize_NonRingAromaticAtom(t *testing.T) {
	_, err := ParseSMILES("Cc")
	require.Error(t, err)
	var serr *SanitizeError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, []int{1}, serr.Atoms)
}

func TestSanitize_AfterEdit(t *testing.T) {
	m := mustParse(t, "c1ccccc1")
	frag := mustParse(t, "O")
	c := Combine(m, frag)
	require.NoError(t, c.AddBond(0, 6, BondSingle))
	require.NoError(t, Sanitize(c))
	assert.Equal(t, 0, c.Atom(0).TotalH())
	assert.Equal(t, 1, c.Atom(6).TotalH())

	// aromatic nitrogen has no room for another bond
	pyr := mustParse(t, "c1ccncc1")
	c = Combine(pyr, frag)
	require.NoError(t, c.AddBond(3, 6, BondSingle))
	assert.Error(t, Sanitize(c))
	assert.False(t, c.Sanitized())
}

//Personal.AI order the ending
