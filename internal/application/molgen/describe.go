package molgen

import (
	"strconv"
	"strings"

	"github.com/turtacn/molgen/internal/domain/molecule"
)

// Describe computes the reported descriptors of a built molecule.
func Describe(m *molecule.Molecule) molecule.Descriptors {
	return molecule.CalcDescriptors(m)
}

// FormatReport writes the five-line result text. Floats use the shortest
// representation that reads back to the same value.
func FormatReport(smiles string, d molecule.Descriptors) string {
	return "Generated Molecule: " + smiles + "\n" +
		"Molecular Weight: " + formatFloat(d.MolWt) + "\n" +
		"LogP: " + formatFloat(d.LogP) + "\n" +
		"Number of Hydrogen Donors: " + strconv.Itoa(d.HBD) + "\n" +
		"Number of Hydrogen Acceptors: " + strconv.Itoa(d.HBA)
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

//Personal.AI order the ending
