// Package grammar holds context-free grammars and the transformations that
// bring them into Chomsky Normal Form.
//
// A Grammar is built once from a literal with New (or from rule text with
// ParseRules) and is then rewritten in place by each transformation stage.
// The stages are, in the order they must be run:
//
//	RemoveEpsilons       drop ε-productions, keeping one on the start symbol if needed
//	RemoveUnitProductions replace A -> B chains with B's productions
//	RemoveUnreachable    drop symbols that cannot be reached from the start
//	RemoveUnproductive   drop nonterminals that cannot derive a terminal string
//	ToCNF                isolate terminals and binarize long productions
//
// Normalize runs all of them.
package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/chomsky/internal/util"
	"github.com/npillmayer/schuko/tracing"
)

var (
	// ErrInvalid is matched by every error returned when a grammar definition
	// is ill-formed.
	ErrInvalid = errors.New("grammar is not valid")

	// ErrNotCNF is returned by operations that require the grammar to be in
	// Chomsky Normal Form when it is not.
	ErrNotCNF = errors.New("grammar is not in Chomsky Normal Form")

	// ErrUnknownTerminal is returned when input given to a recognizer contains
	// something that is not a terminal of the grammar.
	ErrUnknownTerminal = errors.New("not a terminal of the grammar")
)

func tracer() tracing.Trace {
	return tracing.Select("chomsky.grammar")
}

// ValidationError lists every problem found with a grammar definition.
// errors.Is(err, ErrInvalid) is true for any ValidationError.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return ErrInvalid.Error() + ": " + e.Problems[0]
	}
	var sb strings.Builder
	sb.WriteString(ErrInvalid.Error())
	sb.WriteString(":")
	for _, p := range e.Problems {
		sb.WriteString("\n  ")
		sb.WriteString(p)
	}
	return sb.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Grammar is a context-free grammar. The zero value is not valid; use New or
// ParseRules to create one.
//
// Every symbol in every production is a declared terminal or nonterminal, the
// start symbol is a declared nonterminal, and no nonterminal has the same
// production listed twice.
type Grammar struct {
	rulesByName map[string]int
	rules       []Rule

	nonTerminals *util.OrderedSet[string]
	terminals    *util.OrderedSet[string]
	start        string

	// fresh is the counter behind freshNonTerminal. It only ever goes up.
	fresh int

	// used is every name this grammar has ever declared, including those since
	// removed.
	used util.StringSet

	// epsilonFree is set once RemoveEpsilons has run. From then on an epsilon
	// production sits only on the start symbol, and every right-hand side
	// occurrence of a nullable nonterminal already has its dropped variant.
	epsilonFree bool
}

// New creates a Grammar from a literal definition. productions maps each
// nonterminal to its alternatives, each a sequence of symbol names; an empty
// sequence or the single name EpsilonMarker is the epsilon production.
//
// Rules are ordered by the order of nonTerminals. Repeated alternatives for
// the same nonterminal are kept only once.
//
// If the definition is ill-formed, the returned error is a *ValidationError
// listing every problem.
func New(nonTerminals, terminals []string, productions map[string][][]string, start string) (*Grammar, error) {
	var problems []string

	ntSet := util.NewOrderedSet[string]()
	for _, nt := range nonTerminals {
		if nt == "" {
			problems = append(problems, "nonterminal names cannot be empty")
			continue
		}
		if nt == EpsilonMarker {
			problems = append(problems, fmt.Sprintf("%q is reserved for epsilon and cannot be a nonterminal", EpsilonMarker))
			continue
		}
		ntSet.Add(nt)
	}

	termSet := util.NewOrderedSet[string]()
	for _, t := range terminals {
		if t == "" {
			problems = append(problems, "terminal names cannot be empty")
			continue
		}
		if t == EpsilonMarker {
			problems = append(problems, fmt.Sprintf("%q is reserved for epsilon and cannot be a terminal", EpsilonMarker))
			continue
		}
		if ntSet.Has(t) {
			problems = append(problems, fmt.Sprintf("%q is declared as both a terminal and a nonterminal", t))
			continue
		}
		termSet.Add(t)
	}

	if start == "" {
		problems = append(problems, "start symbol is not set")
	} else if !ntSet.Has(start) {
		problems = append(problems, fmt.Sprintf("start symbol %q is not a declared nonterminal", start))
	}

	for _, lhs := range util.OrderedKeys(productions) {
		if !ntSet.Has(lhs) {
			problems = append(problems, fmt.Sprintf("rule for %q: left-hand side is not a declared nonterminal", lhs))
		}
	}

	g := &Grammar{
		rulesByName:  map[string]int{},
		nonTerminals: ntSet,
		terminals:    termSet,
		start:        start,
		used:         util.StringSetOf(ntSet.Elements()).Union(util.StringSetOf(termSet.Elements())),
	}

	for _, nt := range ntSet.Elements() {
		alts, ok := productions[nt]
		if !ok {
			continue
		}

		ps := newProductionSet()
		for altIdx, alt := range alts {
			p, altProblems := g.resolve(alt)
			for _, prob := range altProblems {
				problems = append(problems, fmt.Sprintf("rule for %q: alternative %d: %s", nt, altIdx+1, prob))
			}
			if len(altProblems) == 0 {
				ps.add(p)
			}
		}
		g.appendRule(Rule{NonTerminal: nt, Productions: ps.prods})
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	return g, nil
}

// MustNew is like New but panics if the definition is not valid.
func MustNew(nonTerminals, terminals []string, productions map[string][][]string, start string) *Grammar {
	g, err := New(nonTerminals, terminals, productions, start)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// resolve converts a sequence of names into a Production by looking up the
// kind of every name.
func (g *Grammar) resolve(names []string) (Production, []string) {
	if len(names) == 0 || (len(names) == 1 && names[0] == EpsilonMarker) {
		return Epsilon, nil
	}

	var problems []string
	p := make(Production, 0, len(names))
	for _, name := range names {
		switch {
		case name == EpsilonMarker:
			problems = append(problems, fmt.Sprintf("%q must be the only symbol of an alternative", EpsilonMarker))
		case g.nonTerminals.Has(name):
			p = append(p, NonTerm(name))
		case g.terminals.Has(name):
			p = append(p, Term(name))
		default:
			problems = append(problems, fmt.Sprintf("symbol %q is not declared", name))
		}
	}
	return p, problems
}

// Start returns the start symbol.
func (g *Grammar) Start() string {
	return g.start
}

// NonTerminals returns the declared nonterminals in declaration order.
// Nonterminals created by transformations come after the original ones.
func (g *Grammar) NonTerminals() []string {
	return g.nonTerminals.Elements()
}

// Terminals returns the declared terminals in declaration order.
func (g *Grammar) Terminals() []string {
	return g.terminals.Elements()
}

func (g *Grammar) IsNonTerminal(name string) bool {
	return g.nonTerminals.Has(name)
}

func (g *Grammar) IsTerminal(name string) bool {
	return g.terminals.Has(name)
}

// Rule returns a copy of the rule for the given nonterminal. If there is no
// rule for it, a Rule with no productions is returned.
func (g *Grammar) Rule(nt string) Rule {
	idx, ok := g.rulesByName[nt]
	if !ok {
		return Rule{NonTerminal: nt}
	}
	return g.rules[idx].Copy()
}

// HasRule returns whether there is a production entry for nt, even an empty
// one.
func (g *Grammar) HasRule(nt string) bool {
	_, ok := g.rulesByName[nt]
	return ok
}

// Rules returns a copy of every rule in order.
func (g *Grammar) Rules() []Rule {
	rules := make([]Rule, len(g.rules))
	for i := range g.rules {
		rules[i] = g.rules[i].Copy()
	}
	return rules
}

// ProductionCount returns the total number of productions across all rules.
func (g *Grammar) ProductionCount() int {
	var count int
	for i := range g.rules {
		count += len(g.rules[i].Productions)
	}
	return count
}

// Copy returns a deep copy of g. Transforming the copy has no effect on g.
func (g *Grammar) Copy() *Grammar {
	g2 := &Grammar{
		rulesByName:  make(map[string]int, len(g.rulesByName)),
		rules:        make([]Rule, len(g.rules)),
		nonTerminals: g.nonTerminals.Copy(),
		terminals:    g.terminals.Copy(),
		start:        g.start,
		fresh:        g.fresh,
		used:         g.used.Copy(),
		epsilonFree:  g.epsilonFree,
	}
	for i := range g.rules {
		g2.rules[i] = g.rules[i].Copy()
		g2.rulesByName[g.rules[i].NonTerminal] = i
	}
	return g2
}

// Equal returns whether g and o have the same start symbol, the same symbol
// declarations and the same rules in the same order. The fresh-name counter is
// not compared.
func (g *Grammar) Equal(o *Grammar) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.start != o.start {
		return false
	}
	if !util.StringSetOf(g.NonTerminals()).Equal(util.StringSetOf(o.NonTerminals())) {
		return false
	}
	if !util.StringSetOf(g.Terminals()).Equal(util.StringSetOf(o.Terminals())) {
		return false
	}
	if len(g.rules) != len(o.rules) {
		return false
	}
	for i := range g.rules {
		if !g.rules[i].Equal(o.rules[i]) {
			return false
		}
	}
	return true
}

// appendRule adds r after all existing rules. r.NonTerminal must not already
// have a rule.
func (g *Grammar) appendRule(r Rule) {
	g.rulesByName[r.NonTerminal] = len(g.rules)
	g.rules = append(g.rules, r)
}

// setRules replaces every rule of g with the given ones.
func (g *Grammar) setRules(rules []Rule) {
	g.rules = rules
	g.rulesByName = make(map[string]int, len(rules))
	for i := range g.rules {
		g.rulesByName[g.rules[i].NonTerminal] = i
	}
}

// productionsOf returns the productions of nt without copying them.
func (g *Grammar) productionsOf(nt string) []Production {
	idx, ok := g.rulesByName[nt]
	if !ok {
		return nil
	}
	return g.rules[idx].Productions
}

func (g *Grammar) declareNonTerminal(name string) {
	g.nonTerminals.Add(name)
	g.used.Add(name)
}
