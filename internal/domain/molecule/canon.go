package molecule

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// CanonicalSMILES writes m as a canonical SMILES string. Two molecules with
// the same graph produce the same string regardless of input atom order, up
// to tie-breaking between atoms the invariants cannot tell apart. The output
// parses and sanitizes back to the same graph. Stereo markers are dropped.
//
// m must be sanitized.
func CanonicalSMILES(m *Molecule) string {
	if len(m.atoms) == 0 {
		return ""
	}
	ranks := canonicalRanks(m)
	w := &smilesWriter{m: m, ranks: ranks}
	return w.write()
}

// ─────────────────────────────────────────────────────────────────────────────
// Ranking
// ─────────────────────────────────────────────────────────────────────────────

// atomInvariant returns the initial invariant of atom i.
func atomInvariant(m *Molecule, i int) []int {
	a := &m.atoms[i]
	arom, ring := 0, 0
	if a.Aromatic {
		arom = 1
	}
	if m.AtomInRing(i) {
		ring = 1
	}
	return []int{m.Degree(i), a.Number, a.Isotope, a.Charge + 8, a.TotalH(), arom, ring, a.Class}
}

func bondCode(b *Bond) int {
	if b.Order == BondAromatic {
		return 4
	}
	return int(b.Order)
}

// rankBy assigns dense ranks to keys; equal keys share a rank.
func rankBy(keys [][]int) []int {
	n := len(keys)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return slices.Compare(keys[a], keys[b]) })
	ranks := make([]int, n)
	r := 0
	for k, i := range idx {
		if k > 0 && slices.Compare(keys[idx[k-1]], keys[i]) != 0 {
			r++
		}
		ranks[i] = r
	}
	return ranks
}

func countClasses(ranks []int) int {
	seen := map[int]bool{}
	for _, r := range ranks {
		seen[r] = true
	}
	return len(seen)
}

// refine iterates neighbourhood refinement until the partition is stable.
func refine(m *Molecule, ranks []int) []int {
	n := len(m.atoms)
	classes := countClasses(ranks)
	for {
		keys := make([][]int, n)
		for i := 0; i < n; i++ {
			var nbs [][2]int
			for _, bi := range m.adj[i] {
				b := &m.bonds[bi]
				nbs = append(nbs, [2]int{ranks[b.Other(i)], bondCode(b)})
			}
			slices.SortFunc(nbs, func(a, b [2]int) int {
				if a[0] != b[0] {
					return a[0] - b[0]
				}
				return a[1] - b[1]
			})
			key := []int{ranks[i]}
			for _, nb := range nbs {
				key = append(key, nb[0], nb[1])
			}
			keys[i] = key
		}
		next := rankBy(keys)
		nc := countClasses(next)
		if nc == classes {
			return next
		}
		ranks, classes = next, nc
	}
}

// canonicalRanks returns a total order of atoms: invariant refinement
// followed by tie breaking on the lowest tied class.
func canonicalRanks(m *Molecule) []int {
	n := len(m.atoms)
	keys := make([][]int, n)
	for i := range keys {
		keys[i] = atomInvariant(m, i)
	}
	ranks := refine(m, rankBy(keys))
	for countClasses(ranks) < n {
		// pick the smallest rank shared by more than one atom
		counts := map[int]int{}
		for _, r := range ranks {
			counts[r]++
		}
		tied := -1
		for r, c := range counts {
			if c > 1 && (tied < 0 || r < tied) {
				tied = r
			}
		}
		chosen := -1
		for i, r := range ranks {
			if r == tied {
				chosen = i
				break
			}
		}
		keys := make([][]int, n)
		for i, r := range ranks {
			k := 2 * r
			if i != chosen && r == tied {
				k++
			}
			keys[i] = []int{k}
		}
		ranks = refine(m, rankBy(keys))
	}
	return ranks
}

// ─────────────────────────────────────────────────────────────────────────────
// Writer
// ─────────────────────────────────────────────────────────────────────────────

type smilesWriter struct {
	m     *Molecule
	ranks []int
	sb    strings.Builder

	visited  []bool
	children [][]int
	// ringBonds[i] lists ring-closure bonds touching atom i in visit order.
	ringBonds [][]int
	digits    map[int]int
	inUse     map[int]bool
}

func (w *smilesWriter) write() string {
	m := w.m
	n := len(m.atoms)
	w.visited = make([]bool, n)
	w.children = make([][]int, n)
	w.ringBonds = make([][]int, n)
	w.digits = map[int]int{}
	w.inUse = map[int]bool{}

	comps := m.Components()
	starts := make([]int, 0, len(comps))
	for _, comp := range comps {
		start := comp[0]
		for _, a := range comp {
			if w.ranks[a] < w.ranks[start] {
				start = a
			}
		}
		starts = append(starts, start)
	}
	slices.SortFunc(starts, func(a, b int) int { return w.ranks[a] - w.ranks[b] })

	for k, start := range starts {
		if k > 0 {
			w.sb.WriteByte('.')
		}
		closed := map[int]bool{}
		w.buildTree(start, -1, closed)
		w.emit(start)
	}
	return w.sb.String()
}

func (w *smilesWriter) sortedBonds(atom int) []int {
	bonds := slices.Clone(w.m.adj[atom])
	slices.SortFunc(bonds, func(a, b int) int {
		return w.ranks[w.m.bonds[a].Other(atom)] - w.ranks[w.m.bonds[b].Other(atom)]
	})
	return bonds
}

// buildTree performs the DFS that fixes the spanning tree and ring closures.
func (w *smilesWriter) buildTree(atom, parentBond int, closed map[int]bool) {
	w.visited[atom] = true
	for _, bi := range w.sortedBonds(atom) {
		if bi == parentBond || closed[bi] {
			continue
		}
		nb := w.m.bonds[bi].Other(atom)
		if w.visited[nb] {
			closed[bi] = true
			w.ringBonds[nb] = append(w.ringBonds[nb], bi)
			w.ringBonds[atom] = append(w.ringBonds[atom], bi)
			continue
		}
		w.children[atom] = append(w.children[atom], bi)
		w.buildTree(nb, bi, closed)
	}
}

func (w *smilesWriter) emit(atom int) {
	w.sb.WriteString(w.atomSymbol(atom))

	var closing, opening []int
	for _, bi := range w.ringBonds[atom] {
		if _, ok := w.digits[bi]; ok {
			closing = append(closing, bi)
		} else {
			opening = append(opening, bi)
		}
	}
	var freed []int
	for _, bi := range closing {
		d := w.digits[bi]
		w.sb.WriteString(ringDigit(d))
		delete(w.digits, bi)
		freed = append(freed, d)
	}
	for _, bi := range opening {
		d := 1
		for w.inUse[d] {
			d++
		}
		w.inUse[d] = true
		w.digits[bi] = d
		w.sb.WriteString(w.bondSymbol(bi))
		w.sb.WriteString(ringDigit(d))
	}
	for _, d := range freed {
		delete(w.inUse, d)
	}

	kids := w.children[atom]
	for k, bi := range kids {
		child := w.m.bonds[bi].Other(atom)
		if k < len(kids)-1 {
			w.sb.WriteByte('(')
			w.sb.WriteString(w.bondSymbol(bi))
			w.emit(child)
			w.sb.WriteByte(')')
			continue
		}
		w.sb.WriteString(w.bondSymbol(bi))
		w.emit(child)
	}
}

func ringDigit(d int) string {
	if d < 10 {
		return strconv.Itoa(d)
	}
	return fmt.Sprintf("%%%02d", d)
}

func (w *smilesWriter) bondSymbol(bi int) string {
	b := &w.m.bonds[bi]
	switch b.Order {
	case BondAromatic:
		return ""
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondQuadruple:
		return "$"
	default:
		if w.m.atoms[b.Begin].Aromatic && w.m.atoms[b.End].Aromatic {
			return "-"
		}
		return ""
	}
}

// atomSymbol writes atom i in organic-subset form when that form reads back
// to the same atom, and in bracket form otherwise.
func (w *smilesWriter) atomSymbol(i int) string {
	a := &w.m.atoms[i]
	sym := a.Element
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}
	if w.bareIsExact(i) {
		return sym
	}

	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope > 0 {
		sb.WriteString(strconv.Itoa(a.Isotope))
	}
	sb.WriteString(sym)
	switch h := a.TotalH(); {
	case h == 1:
		sb.WriteByte('H')
	case h > 1:
		sb.WriteString("H" + strconv.Itoa(h))
	}
	switch {
	case a.Charge == 1:
		sb.WriteByte('+')
	case a.Charge == -1:
		sb.WriteByte('-')
	case a.Charge > 1:
		sb.WriteString("+" + strconv.Itoa(a.Charge))
	case a.Charge < -1:
		sb.WriteString(strconv.Itoa(a.Charge))
	}
	if a.Class > 0 {
		sb.WriteString(":" + strconv.Itoa(a.Class))
	}
	sb.WriteByte(']')
	return sb.String()
}

// bareIsExact reports whether writing atom i without brackets would be read
// back with the same element, charge and hydrogen count.
func (w *smilesWriter) bareIsExact(i int) bool {
	m := w.m
	a := &m.atoms[i]
	if a.Charge != 0 || a.Isotope != 0 || a.Class != 0 {
		return false
	}
	if a.Element == "*" {
		return a.TotalH() == 0
	}
	if a.Aromatic {
		if !organicAromatic[strings.ToLower(a.Element)] {
			return false
		}
	} else if !organicSubset[a.Element] {
		return false
	}

	hasDouble := false
	if a.Aromatic {
		for _, bi := range m.adj[i] {
			b := &m.bonds[bi]
			if b.Order == BondAromatic && b.Kekule == 2 {
				hasDouble = true
			}
		}
		if needsDoubleWithH(m, i, 0) != hasDouble {
			return false
		}
	}

	allowed := allowedValences(a.Number, 0)
	if allowed == nil {
		return a.TotalH() == 0
	}
	ev := m.ExplicitValence(i) - a.ExplicitH
	v, ok := smallestAtLeast(allowed, ev)
	if !ok {
		return false
	}
	return v-ev == a.TotalH()
}

//Personal.AI order the ending
