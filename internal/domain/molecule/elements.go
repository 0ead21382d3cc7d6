package molecule

// element describes one entry of the periodic table as far as the chemistry
// layer needs it.
type element struct {
	Symbol string
	Number int
	Mass   float64
	// Valences lists the allowed total valences in ascending order. A nil
	// slice disables valence checking for the element.
	Valences []int
}

var elements = []element{
	{"*", 0, 0, nil},
	{"H", 1, 1.008, []int{1}},
	{"He", 2, 4.003, []int{0}},
	{"Li", 3, 6.941, []int{1}},
	{"Be", 4, 9.012, []int{2}},
	{"B", 5, 10.812, []int{3}},
	{"C", 6, 12.011, []int{4}},
	{"N", 7, 14.007, []int{3}},
	{"O", 8, 15.999, []int{2}},
	{"F", 9, 18.998, []int{1}},
	{"Ne", 10, 20.180, []int{0}},
	{"Na", 11, 22.990, []int{1}},
	{"Mg", 12, 24.305, []int{2}},
	{"Al", 13, 26.982, []int{3}},
	{"Si", 14, 28.086, []int{4}},
	{"P", 15, 30.974, []int{3, 5, 7}},
	{"S", 16, 32.067, []int{2, 4, 6}},
	{"Cl", 17, 35.453, []int{1}},
	{"Ar", 18, 39.948, []int{0}},
	{"K", 19, 39.098, []int{1}},
	{"Ca", 20, 40.078, []int{2}},
	{"Sc", 21, 44.956, nil},
	{"Ti", 22, 47.867, nil},
	{"V", 23, 50.942, nil},
	{"Cr", 24, 51.996, nil},
	{"Mn", 25, 54.938, nil},
	{"Fe", 26, 55.845, nil},
	{"Co", 27, 58.933, nil},
	{"Ni", 28, 58.693, nil},
	{"Cu", 29, 63.546, nil},
	{"Zn", 30, 65.390, nil},
	{"Ga", 31, 69.723, []int{3}},
	{"Ge", 32, 72.610, []int{4}},
	{"As", 33, 74.922, []int{3, 5, 7}},
	{"Se", 34, 78.960, []int{2, 4, 6}},
	{"Br", 35, 79.904, []int{1}},
	{"Kr", 36, 83.800, []int{0}},
	{"Rb", 37, 85.468, []int{1}},
	{"Sr", 38, 87.620, []int{2}},
	{"Y", 39, 88.906, nil},
	{"Zr", 40, 91.224, nil},
	{"Nb", 41, 92.906, nil},
	{"Mo", 42, 95.940, nil},
	{"Tc", 43, 98.000, nil},
	{"Ru", 44, 101.070, nil},
	{"Rh", 45, 102.906, nil},
	{"Pd", 46, 106.420, nil},
	{"Ag", 47, 107.868, nil},
	{"Cd", 48, 112.411, nil},
	{"In", 49, 114.818, []int{3}},
	{"Sn", 50, 118.710, []int{2, 4}},
	{"Sb", 51, 121.760, []int{3, 5, 7}},
	{"Te", 52, 127.600, []int{2, 4, 6}},
	{"I", 53, 126.904, []int{1, 3, 5}},
	{"Xe", 54, 131.290, []int{0, 2, 4, 6}},
	{"Cs", 55, 132.905, []int{1}},
	{"Ba", 56, 137.328, []int{2}},
	{"Pt", 78, 195.078, nil},
	{"Au", 79, 196.967, nil},
	{"Hg", 80, 200.590, nil},
	{"Tl", 81, 204.383, []int{1, 3}},
	{"Pb", 82, 207.200, []int{2, 4}},
	{"Bi", 83, 208.980, []int{3, 5}},
}

var (
	bySymbol = make(map[string]*element, len(elements))
	byNumber = make(map[int]*element, len(elements))
)

func init() {
	for i := range elements {
		e := &elements[i]
		bySymbol[e.Symbol] = e
		byNumber[e.Number] = e
	}
}

// organicSubset lists the elements that may appear outside brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticSymbols maps lowercase aromatic symbols to their element. The
// two-letter forms are only legal inside brackets.
var aromaticSymbols = map[string]string{
	"b": "B", "c": "C", "n": "N", "o": "O", "p": "P", "s": "S",
	"se": "Se", "te": "Te", "as": "As", "si": "Si",
}

// organicAromatic lists the aromatic symbols legal outside brackets.
var organicAromatic = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
}

// lookupElement returns the element with the given symbol.
func lookupElement(symbol string) (*element, bool) {
	e, ok := bySymbol[symbol]
	return e, ok
}

// allowedValences returns the valence list used for an atom of atomic number
// z carrying charge. Charged atoms are checked against the isoelectronic
// element (N+ like C, O- like F) when that element has a list.
func allowedValences(z, charge int) []int {
	if charge != 0 {
		if e, ok := byNumber[z-charge]; ok && e.Valences != nil && z-charge > 0 {
			return e.Valences
		}
	}
	if e, ok := byNumber[z]; ok {
		return e.Valences
	}
	return nil
}

// atomicMass returns the average atomic weight of z, or the isotope mass
// number when isotope is set.
func atomicMass(z, isotope int) float64 {
	if isotope > 0 {
		return float64(isotope)
	}
	if e, ok := byNumber[z]; ok {
		return e.Mass
	}
	return 0
}

// hydrogenMass is the average atomic weight of hydrogen.
const hydrogenMass = 1.008

//Personal.AI order the ending
