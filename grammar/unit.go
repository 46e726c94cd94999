package grammar

import (
	"fmt"

	"github.com/dekarrin/chomsky/internal/util"
)

// UnitPair records that From derives To through one or more unit productions.
type UnitPair struct {
	From string
	To   string
}

func (up UnitPair) String() string {
	return fmt.Sprintf("(%s, %s)", up.From, up.To)
}

// unitClosure returns, for every nonterminal, the nonterminals it reaches
// through chains of unit productions in the order they are discovered. A
// nonterminal is never listed as reaching itself.
func (g *Grammar) unitClosure() map[string][]string {
	direct := map[string][]string{}
	for i := range g.rules {
		r := g.rules[i]
		for _, p := range r.UnitProductions() {
			direct[r.NonTerminal] = append(direct[r.NonTerminal], p[0].Name)
		}
	}

	closure := map[string][]string{}
	for _, a := range g.nonTerminals.Elements() {
		visited := util.NewOrderedSet[string]()
		queue := append([]string{}, direct[a]...)
		for len(queue) > 0 {
			b := queue[0]
			queue = queue[1:]
			if b == a || !visited.Add(b) {
				continue
			}
			queue = append(queue, direct[b]...)
		}
		if visited.Len() > 0 {
			closure[a] = visited.Elements()
		}
	}
	return closure
}

// UnitPairs returns the transitive closure of the unit-production relation.
// Pairs are grouped by From in declaration order. Reflexive pairs are not
// included.
func (g *Grammar) UnitPairs() []UnitPair {
	closure := g.unitClosure()
	var pairs []UnitPair
	for _, a := range g.nonTerminals.Elements() {
		for _, b := range closure[a] {
			pairs = append(pairs, UnitPair{From: a, To: b})
		}
	}
	return pairs
}

// RemoveUnitProductions rewrites g so that no production is a single
// nonterminal. Each nonterminal A ends up with its own non-unit productions
// followed by the non-unit productions of every B that A reaches through unit
// productions.
//
// Once RemoveEpsilons has run, the start symbol's epsilon production is not
// carried into any other nonterminal that reaches it; callers of that
// nonterminal already have the variant without it.
//
// Afterwards every declared nonterminal has a rule, though some may have no
// productions.
func (g *Grammar) RemoveUnitProductions() {
	closure := g.unitClosure()

	order := util.NewOrderedSet[string]()
	for i := range g.rules {
		order.Add(g.rules[i].NonTerminal)
	}
	for _, nt := range g.nonTerminals.Elements() {
		order.Add(nt)
	}

	var removed int
	newRules := make([]Rule, 0, order.Len())
	for _, a := range order.Elements() {
		ps := newProductionSet()
		for _, p := range g.productionsOf(a) {
			if p.IsUnit() {
				removed++
				continue
			}
			ps.add(p.Copy())
		}
		for _, b := range closure[a] {
			for _, p := range g.productionsOf(b) {
				if p.IsUnit() {
					continue
				}
				if p.IsEpsilon() && g.epsilonFree && a != g.start {
					continue
				}
				ps.add(p.Copy())
			}
		}
		newRules = append(newRules, Rule{NonTerminal: a, Productions: ps.prods})
	}

	g.setRules(newRules)
	tracer().Debugf("unit: removed %d unit productions", removed)
}
