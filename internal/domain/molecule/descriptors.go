package molecule

// Descriptors is the set of computed properties reported for a molecule.
type Descriptors struct {
	MolWt float64 `json:"mol_wt"`
	LogP  float64 `json:"log_p"`
	HBD   int     `json:"hbd"`
	HBA   int     `json:"hba"`
}

// CalcDescriptors computes the average molecular weight, Wildman-Crippen
// LogP and Lipinski hydrogen-bond donor and acceptor counts of a sanitized
// molecule.
func CalcDescriptors(m *Molecule) Descriptors {
	return Descriptors{
		MolWt: MolWt(m),
		LogP:  CrippenLogP(m),
		HBD:   NumHDonors(m),
		HBA:   NumHAcceptors(m),
	}
}

// MolWt is the average molecular weight including hydrogens.
func MolWt(m *Molecule) float64 {
	w := 0.0
	for i := range m.atoms {
		a := &m.atoms[i]
		w += atomicMass(a.Number, a.Isotope)
		w += float64(a.TotalH()) * hydrogenMass
	}
	return w
}

// NumHDonors counts Lipinski donors:
// [N;!H0;v3], [N;!H0;+1;v4], [O,S;H1;+0], [n;H1;+0].
func NumHDonors(m *Molecule) int {
	count := 0
	for i := range m.atoms {
		a := &m.atoms[i]
		h := a.TotalH()
		v := m.TotalValence(i)
		switch {
		case a.Number == 7 && !a.Aromatic && h > 0 && v == 3:
			count++
		case a.Number == 7 && !a.Aromatic && h > 0 && a.Charge == 1 && v == 4:
			count++
		case (a.Number == 8 || a.Number == 16) && !a.Aromatic && h == 1 && a.Charge == 0:
			count++
		case a.Number == 7 && a.Aromatic && h == 1 && a.Charge == 0:
			count++
		}
	}
	return count
}

// NumHAcceptors counts Lipinski acceptors:
// [O,S;H1;v2]-[!$(*=[O,N,P,S])], [O,S;H0;v2], [O,S;-],
// [N;v3;!$(N-*=!@[O,N,P,S])], [nH0,o,s;+0], F.
func NumHAcceptors(m *Molecule) int {
	count := 0
	for i := range m.atoms {
		if isAcceptor(m, i) {
			count++
		}
	}
	return count
}

func isAcceptor(m *Molecule, i int) bool {
	a := &m.atoms[i]
	h := a.TotalH()
	v := m.TotalValence(i)
	chalcogen := a.Number == 8 || a.Number == 16

	if chalcogen && !a.Aromatic {
		if h == 1 && v == 2 {
			for _, bi := range m.adj[i] {
				b := &m.bonds[bi]
				if b.Order != BondSingle {
					continue
				}
				if !hasDoubleToHetero(m, b.Other(i), -1, false) {
					return true
				}
			}
		}
		if h == 0 && v == 2 {
			return true
		}
		if a.Charge < 0 {
			return true
		}
	}
	if a.Number == 7 && !a.Aromatic && v == 3 {
		// exclude amide-like N-X=[O,N,P,S] where X=Y is acyclic
		for _, bi := range m.adj[i] {
			b := &m.bonds[bi]
			if b.Order != BondSingle {
				continue
			}
			if hasDoubleToHetero(m, b.Other(i), i, true) {
				return false
			}
		}
		return true
	}
	if a.Charge == 0 && a.Aromatic {
		if a.Number == 7 && h == 0 {
			return true
		}
		if chalcogen {
			return true
		}
	}
	return a.Number == 9
}

// hasDoubleToHetero reports whether atom x carries a double bond to O, N, P
// or S other than towards skip. With acyclicOnly, ring bonds are ignored.
func hasDoubleToHetero(m *Molecule, x, skip int, acyclicOnly bool) bool {
	for _, bi := range m.adj[x] {
		b := &m.bonds[bi]
		if b.Order != BondDouble {
			continue
		}
		if acyclicOnly && b.InRing {
			continue
		}
		y := b.Other(x)
		if y == skip {
			continue
		}
		switch m.atoms[y].Number {
		case 7, 8, 15, 16:
			return true
		}
	}
	return false
}

//Personal.AI order the ending
