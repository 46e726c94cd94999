package grammar

import (
	"github.com/dekarrin/chomsky/internal/util"
)

// nullable returns the set of nonterminals that can derive the empty string.
func (g *Grammar) nullable() util.StringSet {
	nullable := util.StringSet{}

	for updated := true; updated; {
		updated = false
		for i := range g.rules {
			r := g.rules[i]
			if nullable.Has(r.NonTerminal) {
				continue
			}
			for _, p := range r.Productions {
				if allNullable(p, nullable) {
					nullable.Add(r.NonTerminal)
					updated = true
					break
				}
			}
		}
	}

	return nullable
}

func allNullable(p Production, nullable util.StringSet) bool {
	for _, sym := range p {
		if sym.Kind != NonTerminal || !nullable.Has(sym.Name) {
			return false
		}
	}
	return true
}

// Nullable returns every nonterminal that can derive the empty string, in
// declaration order.
func (g *Grammar) Nullable() []string {
	return g.filterNonTerminals(g.nullable())
}

// RemoveEpsilons rewrites g so that no nonterminal other than the start symbol
// has an epsilon production. Every production containing nullable
// nonterminals is replaced by each variant that omits some subset of them.
// The start symbol keeps a single epsilon production if, and only if, it was
// nullable.
//
// A production with k nullable occurrences yields up to 2^k variants.
func (g *Grammar) RemoveEpsilons() {
	nullable := g.nullable()
	tracer().Debugf("epsilon: nullable set is %s", nullable.StringOrdered())

	var dropped int
	for i := range g.rules {
		r := &g.rules[i]
		ps := newProductionSet()
		for _, p := range r.Productions {
			for _, variant := range epsilonRewrites(p, nullable) {
				if variant.IsEpsilon() && r.NonTerminal != g.start {
					dropped++
					continue
				}
				ps.add(variant)
			}
		}
		r.Productions = ps.prods
	}
	g.epsilonFree = true

	tracer().Debugf("epsilon: dropped %d epsilon variants from non-start nonterminals", dropped)
}

// epsilonRewrites returns every way of writing p with some subset of its
// nullable occurrences left out, starting with p itself.
func epsilonRewrites(p Production, nullable util.StringSet) []Production {
	var nullIndexes []int
	for i, sym := range p {
		if sym.Kind == NonTerminal && nullable.Has(sym.Name) {
			nullIndexes = append(nullIndexes, i)
		}
	}
	if len(nullIndexes) == 0 {
		return []Production{p.Copy()}
	}

	numPerms := 1 << len(nullIndexes)
	rewrites := make([]Production, 0, numPerms)

	// bit j of keep set means nullIndexes[j] is kept
	for keep := numPerms - 1; keep >= 0; keep-- {
		var variant Production
		nextNull := 0
		for i, sym := range p {
			if nextNull < len(nullIndexes) && nullIndexes[nextNull] == i {
				bit := keep & (1 << nextNull)
				nextNull++
				if bit == 0 {
					continue
				}
			}
			variant = append(variant, sym)
		}
		if variant == nil {
			variant = Epsilon
		}
		rewrites = append(rewrites, variant)
	}

	return rewrites
}
