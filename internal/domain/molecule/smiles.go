package molecule

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed SMILES string.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("SMILES parse error at position %d of %q: %s", e.Pos, e.Input, e.Msg)
}

// ParseSMILES reads a SMILES string and returns the sanitized molecule.
// Reading stops at the first whitespace character; the remainder is treated
// as a title and ignored.
func ParseSMILES(s string) (*Molecule, error) {
	m, err := ReadSMILES(s)
	if err != nil {
		return nil, err
	}
	if err := Sanitize(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadSMILES parses s into a graph without sanitizing it.
func ReadSMILES(s string) (*Molecule, error) {
	if i := strings.IndexAny(s, " \t\r\n"); i >= 0 {
		s = s[:i]
	}
	p := &smilesParser{src: s, mol: New(), prev: -1, rings: map[int]*ringOpen{}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.mol, nil
}

type ringOpen struct {
	atom   int
	order  BondOrder
	stereo byte
	set    bool
	pos    int
}

type smilesParser struct {
	src  string
	pos  int
	mol  *Molecule
	prev int
	// pending bond symbol for the next atom or ring closure
	order    BondOrder
	stereo   byte
	orderSet bool
	orderPos int

	branches []int
	rings    map[int]*ringOpen
}

func (p *smilesParser) fail(format string, args ...interface{}) error {
	return &ParseError{Input: p.src, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *smilesParser) parse() error {
	if p.src == "" {
		return p.fail("empty input")
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.fail("branch opened before any atom")
			}
			if p.orderSet {
				return p.fail("bond symbol before branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.fail("unmatched ')'")
			}
			if p.orderSet {
				return p.fail("bond symbol at end of branch")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case c == '.':
			if p.orderSet {
				return p.fail("bond symbol before '.'")
			}
			if len(p.branches) > 0 {
				return p.fail("'.' inside a branch")
			}
			if p.prev < 0 {
				return p.fail("empty component before '.'")
			}
			p.prev = -1
			p.pos++
		case strings.IndexByte("-=#$:/\\", c) >= 0:
			if p.orderSet {
				return p.fail("two consecutive bond symbols")
			}
			if p.prev < 0 {
				return p.fail("bond symbol before any atom")
			}
			p.order, p.stereo = bondSymbol(c)
			p.orderSet = true
			p.orderPos = p.pos
			p.pos++
		case c >= '0' && c <= '9' || c == '%':
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			if err := p.bracketAtom(); err != nil {
				return err
			}
		default:
			if err := p.organicAtom(); err != nil {
				return err
			}
		}
	}
	if p.orderSet {
		p.pos = p.orderPos
		return p.fail("bond symbol without a following atom")
	}
	if p.prev < 0 {
		p.pos = len(p.src) - 1
		return p.fail("empty component after '.'")
	}
	if len(p.branches) > 0 {
		return p.fail("unclosed branch")
	}
	for digit, r := range p.rings {
		p.pos = r.pos
		return p.fail("unclosed ring bond %d", digit)
	}
	return nil
}

func bondSymbol(c byte) (BondOrder, byte) {
	switch c {
	case '=':
		return BondDouble, 0
	case '#':
		return BondTriple, 0
	case '$':
		return BondQuadruple, 0
	case ':':
		return BondAromatic, 0
	case '/', '\\':
		return BondSingle, c
	default:
		return BondSingle, 0
	}
}

// implicitOrder is the order of an unlabelled bond between a and b.
func (p *smilesParser) implicitOrder(a, b int) BondOrder {
	if p.mol.atoms[a].Aromatic && p.mol.atoms[b].Aromatic {
		return BondAromatic
	}
	return BondSingle
}

func (p *smilesParser) addAtom(a Atom) error {
	idx := p.mol.AddAtom(a)
	if p.prev >= 0 {
		order := p.order
		if !p.orderSet {
			order = p.implicitOrder(p.prev, idx)
		}
		if err := p.mol.AddBond(p.prev, idx, order); err != nil {
			return p.fail("%v", err)
		}
		p.mol.bonds[len(p.mol.bonds)-1].Stereo = p.stereo
	} else if p.orderSet {
		return p.fail("bond symbol before any atom")
	}
	p.prev = idx
	p.orderSet = false
	p.order, p.stereo = 0, 0
	return nil
}

func (p *smilesParser) organicAtom() error {
	rest := p.src[p.pos:]
	if strings.HasPrefix(rest, "Cl") || strings.HasPrefix(rest, "Br") {
		sym := rest[:2]
		e, _ := lookupElement(sym)
		p.pos += 2
		return p.addAtom(Atom{Element: sym, Number: e.Number})
	}
	c := rest[:1]
	if c == "*" {
		p.pos++
		return p.addAtom(Atom{Element: "*", Number: 0})
	}
	if organicSubset[c] {
		e, _ := lookupElement(c)
		p.pos++
		return p.addAtom(Atom{Element: c, Number: e.Number})
	}
	if organicAromatic[c] {
		sym := aromaticSymbols[c]
		e, _ := lookupElement(sym)
		p.pos++
		return p.addAtom(Atom{Element: sym, Number: e.Number, Aromatic: true})
	}
	return p.fail("unexpected character %q", c)
}

func (p *smilesParser) bracketAtom() error {
	start := p.pos
	end := strings.IndexByte(p.src[start:], ']')
	if end < 0 {
		return p.fail("unclosed bracket atom")
	}
	body := p.src[start+1 : start+end]
	p.pos++
	a := Atom{Bracket: true}

	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		a.Isotope = a.Isotope*10 + int(body[i]-'0')
		i++
	}

	switch {
	case i < len(body) && body[i] == '*':
		a.Element = "*"
		i++
	case i < len(body) && body[i] >= 'a' && body[i] <= 'z':
		sym := ""
		if i+1 < len(body) {
			if two := body[i : i+2]; aromaticSymbols[two] != "" {
				sym = two
			}
		}
		if sym == "" {
			sym = body[i : i+1]
		}
		el, ok := aromaticSymbols[sym]
		if !ok {
			p.pos = start + 1 + i
			return p.fail("unknown aromatic element %q", sym)
		}
		a.Element = el
		a.Aromatic = true
		i += len(sym)
	case i < len(body) && body[i] >= 'A' && body[i] <= 'Z':
		sym := body[i : i+1]
		if i+1 < len(body) && body[i+1] >= 'a' && body[i+1] <= 'z' {
			if _, ok := lookupElement(body[i : i+2]); ok {
				sym = body[i : i+2]
			}
		}
		if _, ok := lookupElement(sym); !ok {
			p.pos = start + 1 + i
			return p.fail("unknown element %q", sym)
		}
		a.Element = sym
		i += len(sym)
	default:
		p.pos = start + 1 + i
		return p.fail("missing element symbol in bracket atom")
	}
	e, _ := lookupElement(a.Element)
	a.Number = e.Number

	// chirality
	if i < len(body) && body[i] == '@' {
		j := i + 1
		switch {
		case j < len(body) && body[j] == '@':
			j++
		case j+1 < len(body) && chiralClasses[body[j:j+2]]:
			j += 2
			for j < len(body) && isDigit(body[j]) {
				j++
			}
		}
		a.Chirality = body[i:j]
		i = j
	}

	// hydrogen count
	if i < len(body) && body[i] == 'H' {
		i++
		n, digits := readInt(body[i:])
		if digits == 0 {
			n = 1
		}
		a.ExplicitH = n
		i += digits
	}

	// charge
	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		sym := body[i]
		i++
		n, digits := readInt(body[i:])
		if digits > 0 {
			i += digits
		} else {
			n = 1
			for i < len(body) && body[i] == sym {
				n++
				i++
			}
		}
		a.Charge = sign * n
	}

	// atom class
	if i < len(body) && body[i] == ':' {
		i++
		n, digits := readInt(body[i:])
		if digits == 0 {
			p.pos = start + 1 + i
			return p.fail("atom class without digits")
		}
		a.Class = n
		i += digits
	}

	if i != len(body) {
		p.pos = start + 1 + i
		return p.fail("unexpected %q in bracket atom", body[i:])
	}
	p.pos = start + end + 1
	return p.addAtom(a)
}

func readInt(s string) (int, int) {
	n, i := 0, 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, i
}

func (p *smilesParser) ringClosure() error {
	if p.prev < 0 {
		return p.fail("ring bond before any atom")
	}
	digitPos := p.pos
	var digit int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
			return p.fail("'%%' must be followed by two digits")
		}
		digit = int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
		p.pos += 3
	} else {
		digit = int(p.src[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[digit]
	if !ok {
		p.rings[digit] = &ringOpen{atom: p.prev, order: p.order, stereo: p.stereo, set: p.orderSet, pos: digitPos}
		p.orderSet = false
		p.order, p.stereo = 0, 0
		return nil
	}
	delete(p.rings, digit)

	order, stereo := p.order, p.stereo
	switch {
	case p.orderSet && open.set && open.order != p.order:
		p.pos = digitPos
		return p.fail("conflicting bond symbols for ring bond %d", digit)
	case !p.orderSet && open.set:
		order, stereo = open.order, open.stereo
	case !p.orderSet && !open.set:
		order = p.implicitOrder(open.atom, p.prev)
	}
	if err := p.mol.AddBond(open.atom, p.prev, order); err != nil {
		p.pos = digitPos
		return p.fail("ring bond %d: %v", digit, err)
	}
	p.mol.bonds[len(p.mol.bonds)-1].Stereo = stereo
	p.orderSet = false
	p.order, p.stereo = 0, 0
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

var chiralClasses = map[string]bool{"TH": true, "AL": true, "SP": true, "TB": true, "OH": true}

//Personal.AI order the ending
