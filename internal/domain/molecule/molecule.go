// Package molecule is MolGen's chemistry library: a molecular graph, a SMILES
// reader and canonical writer, sanitization (ring perception, Kekulé
// assignment, valence checks, implicit hydrogens), descriptor calculation and
// 2D coordinate generation.
//
// A *Molecule returned by ParseSMILES or Combine is an independent value.
// Edits never alias the inputs they were built from.
package molecule

import (
	"fmt"
	"slices"
)

// BondOrder is the order of a bond as written.
type BondOrder int

const (
	BondSingle    BondOrder = 1
	BondDouble    BondOrder = 2
	BondTriple    BondOrder = 3
	BondQuadruple BondOrder = 4
	// BondAromatic is resolved to 1 or 2 by Kekulé assignment.
	BondAromatic BondOrder = 5
)

func (o BondOrder) String() string {
	switch o {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondQuadruple:
		return "quadruple"
	case BondAromatic:
		return "aromatic"
	default:
		return fmt.Sprintf("BondOrder(%d)", int(o))
	}
}

// Atom is a vertex of the molecular graph.
type Atom struct {
	Element  string
	Number   int
	Aromatic bool
	Charge   int
	Isotope  int
	Class    int
	// Bracket atoms carry an explicit hydrogen count and never receive
	// implicit hydrogens.
	Bracket   bool
	ExplicitH int
	// Chirality is the raw tetrahedral marker ("@", "@@"); it is kept but
	// never written back out.
	Chirality string

	// ImplicitH is assigned by Sanitize.
	ImplicitH int
}

// TotalH returns the number of hydrogens attached to the atom that are not
// graph vertices.
func (a *Atom) TotalH() int {
	return a.ExplicitH + a.ImplicitH
}

// Bond is an edge of the molecular graph.
type Bond struct {
	Begin, End int
	Order      BondOrder
	// Stereo is the directional marker ('/' or '\\') of a single bond, 0 if none.
	Stereo byte

	// Kekule is the integer order used for valence, 1 to 4. Sanitize fills it
	// for aromatic bonds.
	Kekule int
	InRing bool
}

// Other returns the bond end that is not atom.
func (b *Bond) Other(atom int) int {
	if b.Begin == atom {
		return b.End
	}
	return b.Begin
}

// Molecule is a molecular graph.
type Molecule struct {
	atoms []Atom
	bonds []Bond
	// adj[i] lists indices into bonds incident to atom i.
	adj [][]int

	sanitized bool
	rings     [][]int
}

// New returns an empty molecule.
func New() *Molecule {
	return &Molecule{}
}

// NumAtoms returns the number of graph atoms.
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int { return len(m.bonds) }

// Atom returns a pointer to atom i. The pointer is invalidated by AddAtom.
func (m *Molecule) Atom(i int) *Atom { return &m.atoms[i] }

// Bond returns a pointer to bond i.
func (m *Molecule) Bond(i int) *Bond { return &m.bonds[i] }

// Sanitized reports whether the molecule passed Sanitize since its last edit.
func (m *Molecule) Sanitized() bool { return m.sanitized }

// AddAtom appends a and returns its index.
func (m *Molecule) AddAtom(a Atom) int {
	m.atoms = append(m.atoms, a)
	m.adj = append(m.adj, nil)
	m.sanitized = false
	return len(m.atoms) - 1
}

// AddBond connects atoms i and j. It fails for out-of-range indices, self
// bonds and duplicate bonds. The molecule must be sanitized again afterwards.
func (m *Molecule) AddBond(i, j int, order BondOrder) error {
	n := len(m.atoms)
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("atom index out of range: (%d, %d) with %d atoms", i, j, n)
	}
	if i == j {
		return fmt.Errorf("cannot bond atom %d to itself", i)
	}
	if m.BondBetween(i, j) >= 0 {
		return fmt.Errorf("bond already exists between atoms %d and %d", i, j)
	}
	if order < BondSingle || order > BondAromatic {
		return fmt.Errorf("unsupported bond order %d", int(order))
	}
	b := Bond{Begin: i, End: j, Order: order}
	if order != BondAromatic {
		b.Kekule = int(order)
	}
	m.bonds = append(m.bonds, b)
	idx := len(m.bonds) - 1
	m.adj[i] = append(m.adj[i], idx)
	m.adj[j] = append(m.adj[j], idx)
	m.sanitized = false
	return nil
}

// BondBetween returns the index of the bond joining i and j, or -1.
func (m *Molecule) BondBetween(i, j int) int {
	for _, b := range m.adj[i] {
		if m.bonds[b].Other(i) == j {
			return b
		}
	}
	return -1
}

// AtomBonds returns the indices of the bonds incident to atom i.
func (m *Molecule) AtomBonds(i int) []int { return m.adj[i] }

// Neighbors returns the atoms bonded to atom i, in bond insertion order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, len(m.adj[i]))
	for k, b := range m.adj[i] {
		out[k] = m.bonds[b].Other(i)
	}
	return out
}

// Degree returns the number of graph neighbours of atom i.
func (m *Molecule) Degree(i int) int { return len(m.adj[i]) }

// ExplicitValence returns the sum of Kekulé bond orders at atom i plus its
// bracket hydrogen count.
func (m *Molecule) ExplicitValence(i int) int {
	v := m.atoms[i].ExplicitH
	for _, b := range m.adj[i] {
		v += m.bonds[b].Kekule
	}
	return v
}

// TotalValence is ExplicitValence plus implicit hydrogens.
func (m *Molecule) TotalValence(i int) int {
	return m.ExplicitValence(i) + m.atoms[i].ImplicitH
}

// Rings returns the perceived small rings as atom index cycles. Valid after
// Sanitize.
func (m *Molecule) Rings() [][]int { return m.rings }

// AtomInRing reports whether atom i belongs to any ring bond.
func (m *Molecule) AtomInRing(i int) bool {
	for _, b := range m.adj[i] {
		if m.bonds[b].InRing {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of m.
func (m *Molecule) Clone() *Molecule {
	c := &Molecule{
		atoms:     append([]Atom(nil), m.atoms...),
		bonds:     append([]Bond(nil), m.bonds...),
		adj:       make([][]int, len(m.adj)),
		sanitized: m.sanitized,
	}
	for i, a := range m.adj {
		c.adj[i] = append([]int(nil), a...)
	}
	for _, r := range m.rings {
		c.rings = append(c.rings, append([]int(nil), r...))
	}
	return c
}

// Combine returns the disjoint union of a and b. Atoms of b follow the atoms
// of a, so b's atom k becomes a.NumAtoms()+k. Neither input is modified.
func Combine(a, b *Molecule) *Molecule {
	c := a.Clone()
	offset := len(c.atoms)
	for _, atom := range b.atoms {
		c.AddAtom(atom)
	}
	for _, bond := range b.bonds {
		nb := bond
		nb.Begin += offset
		nb.End += offset
		c.bonds = append(c.bonds, nb)
		idx := len(c.bonds) - 1
		c.adj[nb.Begin] = append(c.adj[nb.Begin], idx)
		c.adj[nb.End] = append(c.adj[nb.End], idx)
	}
	c.sanitized = false
	c.rings = nil
	return c
}

// Components returns the connected components as ascending atom index lists,
// ordered by their lowest atom index.
func (m *Molecule) Components() [][]int {
	seen := make([]bool, len(m.atoms))
	var out [][]int
	for start := range m.atoms {
		if seen[start] {
			continue
		}
		var comp []int
		stack := []int{start}
		seen[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, nb := range m.Neighbors(cur) {
				if !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	return out
}

//Personal.AI order the ending
