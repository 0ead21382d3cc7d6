package molecule

import (
	"fmt"
	"slices"
	"strings"
)

// SanitizeError reports a chemically invalid graph.
type SanitizeError struct {
	Atoms []int
	Msg   string
}

func (e *SanitizeError) Error() string {
	return e.Msg
}

// Sanitize validates m in place: it perceives ring bonds, resolves aromatic
// bonds to a Kekulé structure, checks every atom against its allowed
// valences, assigns implicit hydrogens and marks 4n+2 rings aromatic. On
// error m is left unsanitized.
func Sanitize(m *Molecule) error {
	m.sanitized = false
	perceiveRingBonds(m)

	for i := range m.atoms {
		if m.atoms[i].Aromatic && !m.AtomInRing(i) {
			return &SanitizeError{Atoms: []int{i}, Msg: fmt.Sprintf("non-ring atom %d marked aromatic", i)}
		}
	}
	// An unlabelled bond joining two aromatic rings (biphenyl) is single.
	for k := range m.bonds {
		b := &m.bonds[k]
		if b.Order == BondAromatic && !b.InRing {
			b.Order = BondSingle
		}
	}

	if err := kekulize(m); err != nil {
		return err
	}

	for i := range m.atoms {
		a := &m.atoms[i]
		a.ImplicitH = 0
		allowed := allowedValences(a.Number, a.Charge)
		if allowed == nil {
			continue
		}
		ev := m.ExplicitValence(i)
		if a.Bracket {
			if ev > allowed[len(allowed)-1] {
				return valenceError(m, i, ev)
			}
			continue
		}
		v, ok := smallestAtLeast(allowed, ev)
		if !ok {
			return valenceError(m, i, ev)
		}
		a.ImplicitH = v - ev
	}

	m.rings = findRings(m)
	perceiveAromaticity(m, m.rings)
	m.sanitized = true
	return nil
}

func valenceError(m *Molecule, i, ev int) error {
	a := m.atoms[i]
	return &SanitizeError{
		Atoms: []int{i},
		Msg:   fmt.Sprintf("Explicit valence for atom # %d %s, %d, is greater than permitted", i, a.Element, ev),
	}
}

func smallestAtLeast(allowed []int, v int) (int, bool) {
	for _, a := range allowed {
		if a >= v {
			return a, true
		}
	}
	return 0, false
}

// ─────────────────────────────────────────────────────────────────────────────
// Ring perception
// ─────────────────────────────────────────────────────────────────────────────

// perceiveRingBonds marks every bond that is not a bridge as a ring bond.
func perceiveRingBonds(m *Molecule) {
	n := len(m.atoms)
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	for k := range m.bonds {
		m.bonds[k].InRing = true
	}
	timer := 0

	type frame struct {
		atom, parentBond, next int
	}
	for root := 0; root < n; root++ {
		if disc[root] >= 0 {
			continue
		}
		disc[root], low[root] = timer, timer
		timer++
		stack := []frame{{atom: root, parentBond: -1}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(m.adj[top.atom]) {
				bi := m.adj[top.atom][top.next]
				top.next++
				if bi == top.parentBond {
					continue
				}
				nb := m.bonds[bi].Other(top.atom)
				if disc[nb] < 0 {
					disc[nb], low[nb] = timer, timer
					timer++
					stack = append(stack, frame{atom: nb, parentBond: bi})
				} else if disc[nb] < low[top.atom] {
					low[top.atom] = disc[nb]
				}
				continue
			}
			done := *top
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1].atom
			if low[done.atom] < low[parent] {
				low[parent] = low[done.atom]
			}
			if low[done.atom] > disc[parent] {
				m.bonds[done.parentBond].InRing = false
			}
		}
	}
}

// findRings returns, for every ring bond, the shortest cycle through it,
// de-duplicated. The result is a practical smallest-ring set for depiction.
func findRings(m *Molecule) [][]int {
	var rings [][]int
	seen := map[string]bool{}
	for k := range m.bonds {
		b := m.bonds[k]
		if !b.InRing {
			continue
		}
		path := shortestPathAvoiding(m, b.Begin, b.End, k)
		if path == nil {
			continue
		}
		key := ringKey(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		rings = append(rings, path)
	}
	return rings
}

// shortestPathAvoiding runs a BFS from src to dst over ring bonds other than skip.
func shortestPathAvoiding(m *Molecule, src, dst, skip int) []int {
	prev := make([]int, len(m.atoms))
	for i := range prev {
		prev[i] = -2
	}
	prev[src] = -1
	queue := []int{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst {
			break
		}
		for _, bi := range m.adj[cur] {
			if bi == skip || !m.bonds[bi].InRing {
				continue
			}
			nb := m.bonds[bi].Other(cur)
			if prev[nb] != -2 {
				continue
			}
			prev[nb] = cur
			queue = append(queue, nb)
		}
	}
	if prev[dst] == -2 {
		return nil
	}
	var path []int
	for cur := dst; cur != -1; cur = prev[cur] {
		path = append(path, cur)
	}
	return path
}

func ringKey(ring []int) string {
	sorted := slices.Clone(ring)
	slices.Sort(sorted)
	var sb strings.Builder
	for _, a := range sorted {
		fmt.Fprintf(&sb, "%d,", a)
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// Kekulé assignment
// ─────────────────────────────────────────────────────────────────────────────

// needsAromaticDouble reports whether aromatic atom i must take one double
// bond from its aromatic bonds to reach an allowed valence.
func needsAromaticDouble(m *Molecule, i int) bool {
	return needsDoubleWithH(m, i, m.atoms[i].ExplicitH)
}

// needsDoubleWithH is needsAromaticDouble for atom i carrying hCount
// hydrogens that are fixed in advance.
func needsDoubleWithH(m *Molecule, i, hCount int) bool {
	a := &m.atoms[i]
	if !a.Aromatic {
		return false
	}
	base := hCount
	aromatic := 0
	for _, bi := range m.adj[i] {
		b := &m.bonds[bi]
		switch {
		case b.Order == BondAromatic:
			base++
			aromatic++
		case b.Order >= BondDouble:
			// an exocyclic multiple bond already supplies the unsaturation
			return false
		default:
			base += int(b.Order)
		}
	}
	if aromatic == 0 {
		return false
	}
	allowed := allowedValences(a.Number, a.Charge)
	if allowed == nil {
		return false
	}
	v, ok := smallestAtLeast(allowed, base)
	return ok && v-base >= 1
}

// kekulize assigns Kekule orders of 1 or 2 to aromatic bonds so that every
// aromatic atom that needs a double bond gets exactly one.
func kekulize(m *Molecule) error {
	need := make([]bool, len(m.atoms))
	hasAromatic := false
	for k := range m.bonds {
		b := &m.bonds[k]
		if b.Order == BondAromatic {
			b.Kekule = 1
			hasAromatic = true
		} else {
			b.Kekule = int(b.Order)
		}
	}
	if !hasAromatic {
		return nil
	}
	var pending []int
	for i := range m.atoms {
		if needsAromaticDouble(m, i) {
			need[i] = true
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	matched := make([]int, len(m.atoms))
	for i := range matched {
		matched[i] = -1
	}
	// candidates returns the aromatic bonds from i to unmatched needing atoms.
	candidates := func(i int) []int {
		var out []int
		for _, bi := range m.adj[i] {
			b := &m.bonds[bi]
			if b.Order != BondAromatic {
				continue
			}
			nb := b.Other(i)
			if need[nb] && matched[nb] < 0 {
				out = append(out, bi)
			}
		}
		return out
	}

	var solve func(remaining int) bool
	solve = func(remaining int) bool {
		if remaining == 0 {
			return true
		}
		// most constrained atom first
		best, bestOpts := -1, []int(nil)
		for _, i := range pending {
			if matched[i] >= 0 {
				continue
			}
			opts := candidates(i)
			if best < 0 || len(opts) < len(bestOpts) {
				best, bestOpts = i, opts
				if len(opts) == 0 {
					return false
				}
			}
		}
		for _, bi := range bestOpts {
			nb := m.bonds[bi].Other(best)
			matched[best], matched[nb] = bi, bi
			if solve(remaining - 2) {
				return true
			}
			matched[best], matched[nb] = -1, -1
		}
		return false
	}

	if len(pending)%2 != 0 || !solve(len(pending)) {
		var stuck []string
		var atoms []int
		for _, i := range pending {
			atoms = append(atoms, i)
			stuck = append(stuck, fmt.Sprintf("%d", i))
		}
		return &SanitizeError{
			Atoms: atoms,
			Msg:   "Can't kekulize mol. Unkekulized atoms: " + strings.Join(stuck, " "),
		}
	}
	for _, i := range pending {
		m.bonds[matched[i]].Kekule = 2
	}
	return nil
}

//Personal.AI order the ending
