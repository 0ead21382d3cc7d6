package molecule

// perceiveAromaticity marks rings written in Kekulé form as aromatic when
// they satisfy the 4n+2 rule, alone or fused with one neighbouring ring.
// Kekule orders are left untouched, so valence and hydrogen counts stay
// valid.
func perceiveAromaticity(m *Molecule, rings [][]int) {
	if len(rings) == 0 {
		return
	}
	electrons := make([]int, len(m.atoms))
	for i := range m.atoms {
		electrons[i] = piElectrons(m, i)
	}

	aromaticRing := make([]bool, len(rings))
	for r, ring := range rings {
		if huckel(ring, electrons) {
			aromaticRing[r] = true
		}
	}
	// fused pairs, for systems such as azulene
	for r1 := range rings {
		for r2 := r1 + 1; r2 < len(rings); r2++ {
			if aromaticRing[r1] && aromaticRing[r2] {
				continue
			}
			if !sharesBond(m, rings[r1], rings[r2]) {
				continue
			}
			union := unionAtoms(rings[r1], rings[r2])
			if huckel(union, electrons) {
				aromaticRing[r1], aromaticRing[r2] = true, true
			}
		}
	}

	for r, ring := range rings {
		if !aromaticRing[r] {
			continue
		}
		inRing := make(map[int]bool, len(ring))
		for _, a := range ring {
			inRing[a] = true
			m.atoms[a].Aromatic = true
		}
		for _, a := range ring {
			for _, bi := range m.adj[a] {
				b := &m.bonds[bi]
				if inRing[b.Other(a)] && b.Order != BondAromatic {
					b.Order = BondAromatic
				}
			}
		}
	}
}

func huckel(atoms []int, electrons []int) bool {
	total := 0
	for _, a := range atoms {
		if electrons[a] < 0 {
			return false
		}
		total += electrons[a]
	}
	return total >= 2 && (total-2)%4 == 0
}

// piElectrons returns the number of electrons atom i donates to an aromatic
// ring, or -1 when it cannot take part in one.
func piElectrons(m *Molecule, i int) int {
	a := &m.atoms[i]
	if !m.AtomInRing(i) {
		return -1
	}
	ringDouble, exoHetero := false, false
	for _, bi := range m.adj[i] {
		b := &m.bonds[bi]
		switch b.Kekule {
		case 1:
			continue
		case 2:
			if b.InRing {
				ringDouble = true
				continue
			}
			switch m.atoms[b.Other(i)].Number {
			case 7, 8, 16:
				exoHetero = true
				continue
			}
			return -1
		default:
			return -1
		}
	}
	if ringDouble {
		return 1
	}
	if exoHetero {
		if a.Number == 6 {
			return 0
		}
		return -1
	}
	degree := m.Degree(i) + a.TotalH()
	switch a.Number {
	case 6:
		switch {
		case a.Charge == -1 && degree == 3:
			return 2
		case a.Charge == 1 && degree == 3:
			return 0
		}
	case 7, 15:
		if a.Charge == 0 && degree == 3 {
			return 2
		}
		if a.Charge == -1 && degree == 2 {
			return 2
		}
	case 8, 16, 34, 52:
		if a.Charge == 0 && degree == 2 {
			return 2
		}
	case 5:
		if a.Charge == 0 && degree == 3 {
			return 0
		}
	}
	return -1
}

func sharesBond(m *Molecule, r1, r2 []int) bool {
	in2 := make(map[int]bool, len(r2))
	for _, a := range r2 {
		in2[a] = true
	}
	shared := 0
	for _, a := range r1 {
		if in2[a] {
			shared++
		}
	}
	return shared >= 2
}

func unionAtoms(r1, r2 []int) []int {
	seen := make(map[int]bool, len(r1)+len(r2))
	var out []int
	for _, ring := range [][]int{r1, r2} {
		for _, a := range ring {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	return out
}

//Personal.AI order the ending
