package grammar

import (
	"fmt"
	"strings"
)

// EpsilonMarker is the reserved name that denotes the empty string in grammar
// literals and rule text. It is never stored as a symbol; a Production of
// length zero is epsilon.
const EpsilonMarker = "ε"

// SymbolKind tells whether a Symbol is a terminal or a nonterminal.
type SymbolKind int

const (
	Terminal SymbolKind = iota
	NonTerminal
)

func (k SymbolKind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case NonTerminal:
		return "nonterminal"
	default:
		return fmt.Sprintf("SymbolKind(%d)", int(k))
	}
}

// Symbol is a single grammar symbol. Its kind is decided once when the grammar
// is constructed and is never re-derived from the name.
type Symbol struct {
	Name string
	Kind SymbolKind
}

// Term returns a terminal Symbol with the given name.
func Term(name string) Symbol {
	return Symbol{Name: name, Kind: Terminal}
}

// NonTerm returns a nonterminal Symbol with the given name.
func NonTerm(name string) Symbol {
	return Symbol{Name: name, Kind: NonTerminal}
}

func (s Symbol) IsTerminal() bool {
	return s.Kind == Terminal
}

func (s Symbol) IsNonTerminal() bool {
	return s.Kind == NonTerminal
}

func (s Symbol) String() string {
	return s.Name
}

// Production is the right-hand side of a rule. A Production of length zero is
// the epsilon production.
type Production []Symbol

// Epsilon is the empty production.
var Epsilon = Production{}

// IsEpsilon returns whether p derives only the empty string by itself.
func (p Production) IsEpsilon() bool {
	return len(p) == 0
}

// IsUnit returns whether p is a single nonterminal.
func (p Production) IsUnit() bool {
	return len(p) == 1 && p[0].Kind == NonTerminal
}

// HasSymbol returns whether any symbol in p has the given name.
func (p Production) HasSymbol(name string) bool {
	for i := range p {
		if p[i].Name == name {
			return true
		}
	}
	return false
}

func (p Production) Copy() Production {
	p2 := make(Production, len(p))
	copy(p2, p)
	return p2
}

// Equal returns whether p is equal to o. o may be a Production or a pointer to
// one.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		otherPtr, ok := o.(*Production)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String shows the symbols of p separated by spaces, or ε if p is epsilon.
func (p Production) String() string {
	if p.IsEpsilon() {
		return EpsilonMarker
	}

	names := make([]string, len(p))
	for i := range p {
		names[i] = p[i].Name
	}
	return strings.Join(names, " ")
}

// Display shows the symbols of p concatenated with no separator, or ε if p is
// epsilon.
func (p Production) Display() string {
	if p.IsEpsilon() {
		return EpsilonMarker
	}

	var sb strings.Builder
	for i := range p {
		sb.WriteString(p[i].Name)
	}
	return sb.String()
}

// key is a string that uniquely identifies the sequence of symbols in p,
// including their kinds.
func (p Production) key() string {
	var sb strings.Builder
	for i := range p {
		if p[i].Kind == Terminal {
			sb.WriteByte('t')
		} else {
			sb.WriteByte('n')
		}
		sb.WriteString(p[i].Name)
		sb.WriteByte(0)
	}
	return sb.String()
}

// Rule is every production of a single nonterminal.
type Rule struct {
	NonTerminal string
	Productions []Production
}

func (r Rule) Copy() Rule {
	r2 := Rule{
		NonTerminal: r.NonTerminal,
		Productions: make([]Production, len(r.Productions)),
	}
	for i := range r.Productions {
		r2.Productions[i] = r.Productions[i].Copy()
	}
	return r2
}

// HasProduction returns whether r already has a production equal to p.
func (r Rule) HasProduction(p Production) bool {
	for i := range r.Productions {
		if r.Productions[i].Equal(p) {
			return true
		}
	}
	return false
}

// UnitProductions returns every production of r that is a single nonterminal.
func (r Rule) UnitProductions() []Production {
	var units []Production
	for _, p := range r.Productions {
		if p.IsUnit() {
			units = append(units, p)
		}
	}
	return units
}

// Equal returns whether r has the same nonterminal and the same productions in
// the same order as o. o may be a Rule or a pointer to one.
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		otherPtr, ok := o.(*Rule)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if r.NonTerminal != other.NonTerminal {
		return false
	}
	if len(r.Productions) != len(other.Productions) {
		return false
	}
	for i := range r.Productions {
		if !r.Productions[i].Equal(other.Productions[i]) {
			return false
		}
	}
	return true
}

// String shows r in the form "A -> x y | z".
func (r Rule) String() string {
	alts := make([]string, len(r.Productions))
	for i := range r.Productions {
		alts[i] = r.Productions[i].String()
	}
	return fmt.Sprintf("%s -> %s", r.NonTerminal, strings.Join(alts, " | "))
}

// Display shows r in the form "A → xy | z".
func (r Rule) Display() string {
	alts := make([]string, len(r.Productions))
	for i := range r.Productions {
		alts[i] = r.Productions[i].Display()
	}
	return fmt.Sprintf("%s → %s", r.NonTerminal, strings.Join(alts, " | "))
}

// productionSet accumulates productions in order with duplicates dropped.
type productionSet struct {
	prods []Production
	seen  map[string]bool
}

func newProductionSet() *productionSet {
	return &productionSet{seen: map[string]bool{}}
}

func (ps *productionSet) add(p Production) bool {
	k := p.key()
	if ps.seen[k] {
		return false
	}
	ps.seen[k] = true
	ps.prods = append(ps.prods, p)
	return true
}
