package molecule

// Wildman-Crippen atom-type contributions to LogP. Only the types reachable
// from the rules in crippenHeavy and crippenHydrogen are listed.
const (
	cC1  = 0.1441  // aliphatic CH4, CH3R, CH2R2 with carbon neighbours
	cC2  = 0.0     // CHR3, CR4
	cC3  = -0.2035 // CH3X, CH2RX
	cC4  = -0.2051 // CHR2X, CR3X
	cC5  = -0.2783 // C = heteroatom
	cC6  = 0.1551  // C = C aliphatic
	cC7  = 0.0017  // acetylenic and nitrile carbon
	cC8  = 0.08452 // CH3 on aromatic carbon
	cC9  = -0.1444 // CH3 on aromatic heteroatom
	cC10 = -0.0516 // CH2 on aromatic atom
	cC11 = 0.1193  // CH on aromatic atom
	cC12 = -0.0967 // C on aromatic atom
	cC13 = -0.5443 // aromatic C bonded to an unusual element
	cC14 = 0.0     // aromatic C-F
	cC15 = 0.2450  // aromatic C-Cl
	cC16 = 0.1980  // aromatic C-Br
	cC17 = 0.0     // aromatic C-I
	cC18 = 0.1581  // aromatic CH
	cC19 = 0.2955  // aromatic bridgehead
	cC20 = 0.2713  // aromatic C bonded to aromatic atom
	cC21 = 0.1360  // aromatic C bonded to aliphatic C
	cC22 = 0.4619  // aromatic C bonded to N
	cC23 = 0.5437  // aromatic C bonded to O
	cC24 = 0.1893  // aromatic C bonded to S
	cC25 = -0.8186 // aromatic C with exocyclic double bond
	cC26 = 0.2640  // C = C conjugated with an aromatic ring
	cC27 = 0.2148  // aliphatic C bonded to an unusual element
	cCS  = 0.08129 // carbon fallback

	cH1 = 0.1230  // hydrocarbon
	cH2 = -0.2677 // alcohol
	cH3 = 0.2142  // amine
	cH4 = 0.2980  // acid
	cHS = 0.1125  // hydrogen fallback

	cN1  = -1.0190 // primary amine
	cN2  = -0.7096 // secondary amine
	cN3  = -1.0270 // primary aromatic amine
	cN4  = -0.5188 // secondary aromatic amine
	cN5  = 0.08387 // diaryl amine
	cN6  = -0.3187 // tertiary amine
	cN7  = -0.4458 // tertiary aromatic amine
	cN8  = 0.01508 // tertiary diaryl amine
	cN9  = 0.01508 // nitrile
	cN10 = -1.950  // protonated amine
	cN11 = -0.3239 // unprotonated aromatic
	cN12 = -0.1035 // protonated aromatic
	cN13 = -0.3396 // quaternary N
	cNS  = -0.4806 // nitrogen fallback

	cO1  = 0.1552  // aromatic
	cO2  = -0.2893 // alcohol
	cO3  = -0.0684 // aliphatic ether
	cO4  = -0.4195 // aromatic ether
	cO5  = 0.0335  // oxide
	cO6  = -0.3339 // S oxide anion
	cO7  = -1.189  // other anion
	cO8  = 0.1788  // aromatic carbonyl
	cO9  = -0.1526 // carbonyl aliphatic
	cO10 = 0.1129  // carbonyl aromatic
	cO11 = 0.4833  // carbonyl heteroatom
	cO12 = -1.326  // acid anion
	cOS  = -0.1188 // oxygen fallback

	cF  = 0.4202
	cCl = 0.6895
	cBr = 0.8456
	cI  = 0.8857

	cS1 = 0.6482  // aliphatic
	cS2 = -0.0024 // ionic
	cS3 = 0.6237  // aromatic

	cP = 0.8612
)

// CrippenLogP returns the Wildman-Crippen LogP estimate of a sanitized
// molecule: a sum of per-atom contributions for heavy atoms and for the
// hydrogens attached to them.
func CrippenLogP(m *Molecule) float64 {
	logp := 0.0
	for i := range m.atoms {
		logp += crippenHeavy(m, i)
		if h := m.atoms[i].TotalH(); h > 0 {
			logp += float64(h) * crippenHydrogen(m, i)
		}
	}
	return logp
}

// isHetero reports whether z is one of N, O, P, S or a halogen.
func isHetero(z int) bool {
	switch z {
	case 7, 8, 15, 16, 9, 17, 35, 53:
		return true
	}
	return false
}

// isUnusual reports elements outside C, N, O, P, S, H and the halogens.
func isUnusual(z int) bool {
	return z != 6 && z != 1 && !isHetero(z)
}

func crippenHeavy(m *Molecule, i int) float64 {
	a := &m.atoms[i]
	switch a.Number {
	case 1:
		// graph hydrogens are typed like implicit ones on their neighbour
		if nbs := m.Neighbors(i); len(nbs) == 1 {
			return crippenHydrogen(m, nbs[0])
		}
		return cHS
	case 6:
		if a.Aromatic {
			return crippenAromaticCarbon(m, i)
		}
		return crippenAliphaticCarbon(m, i)
	case 7:
		return crippenNitrogen(m, i)
	case 8:
		return crippenOxygen(m, i)
	case 9:
		return cF
	case 17:
		return cCl
	case 35:
		return cBr
	case 53:
		return cI
	case 15:
		return cP
	case 16:
		switch {
		case a.Aromatic:
			return cS3
		case a.Charge != 0:
			return cS2
		default:
			return cS1
		}
	}
	return 0
}

func crippenAliphaticCarbon(m *Molecule, i int) float64 {
	a := &m.atoms[i]
	var (
		multiple, toHetero, toCarbon, toAromatic bool
		aromaticNb, heteroNb, unusualNb          bool
		aromaticCarbonNb                         bool
	)
	for _, bi := range m.adj[i] {
		b := &m.bonds[bi]
		nb := &m.atoms[b.Other(i)]
		switch b.Order {
		case BondTriple:
			return cC7
		case BondDouble:
			multiple = true
			switch {
			case nb.Aromatic:
				toAromatic = true
			case nb.Number == 6:
				toCarbon = true
			case nb.Number != 1:
				toHetero = true
			}
			continue
		}
		if nb.Aromatic {
			aromaticNb = true
			if nb.Number == 6 {
				aromaticCarbonNb = true
			}
		}
		if isHetero(nb.Number) && !nb.Aromatic {
			heteroNb = true
		}
		if isUnusual(nb.Number) {
			unusualNb = true
		}
	}
	h := a.TotalH()
	if multiple {
		switch {
		case toHetero:
			return cC5
		case toAromatic || (toCarbon && aromaticNb):
			return cC26
		case toCarbon:
			return cC6
		}
		return cCS
	}
	if aromaticNb {
		switch h {
		case 3:
			if aromaticCarbonNb {
				return cC8
			}
			return cC9
		case 2:
			return cC10
		case 1:
			return cC11
		default:
			return cC12
		}
	}
	if unusualNb {
		return cC27
	}
	if heteroNb {
		if h >= 2 {
			return cC3
		}
		return cC4
	}
	if h >= 2 {
		return cC1
	}
	return cC2
}

func crippenAromaticCarbon(m *Molecule, i int) float64 {
	a := &m.atoms[i]
	if a.TotalH() > 0 {
		return cC18
	}
	aromaticBonds := 0
	subst := -1
	for _, bi := range m.adj[i] {
		b := &m.bonds[bi]
		if b.Order == BondAromatic {
			aromaticBonds++
			continue
		}
		if b.Order == BondDouble {
			return cC25
		}
		subst = b.Other(i)
	}
	if aromaticBonds >= 3 {
		return cC19
	}
	if subst < 0 {
		return cCS
	}
	nb := &m.atoms[subst]
	if nb.Aromatic {
		return cC20
	}
	switch nb.Number {
	case 9:
		return cC14
	case 17:
		return cC15
	case 35:
		return cC16
	case 53:
		return cC17
	case 6:
		return cC21
	case 7:
		return cC22
	case 8:
		return cC23
	case 16:
		return cC24
	case 1:
		return cC18
	}
	return cC13
}

func crippenNitrogen(m *Molecule, i int) float64 {
	a := &m.atoms[i]
	h := a.TotalH()
	if a.Aromatic {
		if a.Charge > 0 {
			return cN12
		}
		return cN11
	}
	if a.Charge > 0 {
		if h > 0 {
			return cN10
		}
		return cN13
	}
	heavy, aromatic := 0, 0
	for _, bi := range m.adj[i] {
		b := &m.bonds[bi]
		switch b.Order {
		case BondTriple:
			return cN9
		case BondDouble:
			return cNS
		}
		nb := &m.atoms[b.Other(i)]
		if nb.Number == 1 {
			continue
		}
		heavy++
		if nb.Aromatic {
			aromatic++
		}
	}
	switch {
	case heavy <= 1 && h >= 2:
		if aromatic > 0 {
			return cN3
		}
		return cN1
	case heavy == 2 && h == 1:
		switch aromatic {
		case 0:
			return cN2
		case 1:
			return cN4
		default:
			return cN5
		}
	case heavy == 3:
		switch aromatic {
		case 0:
			return cN6
		case 1:
			return cN7
		default:
			return cN8
		}
	}
	return cNS
}

func crippenOxygen(m *Molecule, i int) float64 {
	a := &m.atoms[i]
	if a.Aromatic {
		return cO1
	}
	if a.Charge < 0 {
		for _, nb := range m.Neighbors(i) {
			switch m.atoms[nb].Number {
			case 7:
				return cO5
			case 16:
				return cO6
			case 6:
				if hasDoubleToElement(m, nb, 8) {
					return cO12
				}
			}
		}
		return cO7
	}
	for _, bi := range m.adj[i] {
		b := &m.bonds[bi]
		if b.Order != BondDouble {
			continue
		}
		x := b.Other(i)
		nb := &m.atoms[x]
		switch {
		case nb.Number == 7 || nb.Number == 8:
			return cO5
		case nb.Number == 6 && nb.Aromatic:
			return cO8
		case nb.Number == 6:
			return carbonylOxygen(m, x, i)
		}
		return cOS
	}
	if a.TotalH() > 0 {
		return cO2
	}
	for _, nb := range m.Neighbors(i) {
		if m.atoms[nb].Aromatic {
			return cO4
		}
	}
	if m.Degree(i) >= 2 {
		return cO3
	}
	return cOS
}

// carbonylOxygen types the oxygen of the carbonyl carbon c.
func carbonylOxygen(m *Molecule, c, oxygen int) float64 {
	others, hetero := 0, 0
	for _, nb := range m.Neighbors(c) {
		if nb == oxygen || m.atoms[nb].Number == 1 {
			continue
		}
		others++
		if m.atoms[nb].Aromatic {
			return cO10
		}
		if m.atoms[nb].Number != 6 {
			hetero++
		}
	}
	if others >= 2 && hetero == others {
		return cO11
	}
	return cO9
}

func hasDoubleToElement(m *Molecule, x, z int) bool {
	for _, bi := range m.adj[x] {
		b := &m.bonds[bi]
		if b.Order == BondDouble && m.atoms[b.Other(x)].Number == z {
			return true
		}
	}
	return false
}

// crippenHydrogen returns the contribution of one hydrogen attached to
// heavy atom i.
func crippenHydrogen(m *Molecule, i int) float64 {
	a := &m.atoms[i]
	switch a.Number {
	case 6:
		return cH1
	case 7:
		return cH3
	case 8:
		for _, nb := range m.Neighbors(i) {
			x := &m.atoms[nb]
			switch {
			case x.Number == 1:
				continue
			case x.Number == 7:
				return cH3
			case x.Number == 8 || x.Number == 16:
				return cH4
			case x.Number == 6 && !x.Aromatic && isAcylCarbon(m, nb):
				return cH4
			}
			return cH2
		}
		return cHS
	}
	return cH2
}

// isAcylCarbon reports a C=C, C=N, C=O or C=S double bond on carbon c, the
// environments that make an attached hydroxyl acidic.
func isAcylCarbon(m *Molecule, c int) bool {
	for _, bi := range m.adj[c] {
		b := &m.bonds[bi]
		if b.Order != BondDouble {
			continue
		}
		switch m.atoms[b.Other(c)].Number {
		case 6, 7, 8, 16:
			return true
		}
	}
	return false
}

//Personal.AI order the ending
