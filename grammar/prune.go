package grammar

import (
	"github.com/dekarrin/chomsky/internal/util"
)

// reachable returns every symbol, terminal or nonterminal, that appears in
// some sentential form derivable from the start symbol.
func (g *Grammar) reachable() util.StringSet {
	reached := util.StringSet{g.start: true}
	queue := []string{g.start}

	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]

		for _, p := range g.productionsOf(nt) {
			for _, sym := range p {
				if reached.Has(sym.Name) {
					continue
				}
				reached.Add(sym.Name)
				if sym.Kind == NonTerminal {
					queue = append(queue, sym.Name)
				}
			}
		}
	}

	return reached
}

// Reachable returns every nonterminal reachable from the start symbol, in
// declaration order.
func (g *Grammar) Reachable() []string {
	return g.filterNonTerminals(g.reachable())
}

// RemoveUnreachable drops every nonterminal and terminal that cannot be
// reached from the start symbol, along with the rules of the dropped
// nonterminals. Productions of the remaining rules are left untouched.
func (g *Grammar) RemoveUnreachable() {
	reached := g.reachable()

	before := g.nonTerminals.Len()
	g.nonTerminals.Retain(reached.Has)
	g.terminals.Retain(reached.Has)

	var kept []Rule
	for _, r := range g.rules {
		if reached.Has(r.NonTerminal) {
			kept = append(kept, r)
		}
	}
	g.setRules(kept)

	tracer().Debugf("unreachable: removed %d nonterminals", before-g.nonTerminals.Len())
}

// productive returns every nonterminal that can derive a string made only of
// terminals.
func (g *Grammar) productive() util.StringSet {
	productive := util.StringSet{}

	for updated := true; updated; {
		updated = false
		for i := range g.rules {
			r := g.rules[i]
			if productive.Has(r.NonTerminal) {
				continue
			}
			for _, p := range r.Productions {
				if allProductive(p, productive) {
					productive.Add(r.NonTerminal)
					updated = true
					break
				}
			}
		}
	}

	return productive
}

func allProductive(p Production, productive util.StringSet) bool {
	for _, sym := range p {
		if sym.Kind == NonTerminal && !productive.Has(sym.Name) {
			return false
		}
	}
	return true
}

// Productive returns every nonterminal that can derive a terminal string, in
// declaration order.
func (g *Grammar) Productive() []string {
	return g.filterNonTerminals(g.productive())
}

// RemoveUnproductive drops every nonterminal that cannot derive a string of
// terminals, and every production that mentions one.
//
// If the start symbol itself is unproductive the grammar generates nothing;
// the start symbol is kept, with no productions, so that the grammar remains
// well-formed.
func (g *Grammar) RemoveUnproductive() {
	productive := g.productive()
	keep := func(nt string) bool {
		return productive.Has(nt) || nt == g.start
	}

	before := g.nonTerminals.Len()
	g.nonTerminals.Retain(keep)

	var kept []Rule
	var droppedProds int
	for _, r := range g.rules {
		if !keep(r.NonTerminal) {
			droppedProds += len(r.Productions)
			continue
		}
		var prods []Production
		for _, p := range r.Productions {
			if allProductive(p, productive) {
				prods = append(prods, p)
			} else {
				droppedProds++
			}
		}
		kept = append(kept, Rule{NonTerminal: r.NonTerminal, Productions: prods})
	}
	g.setRules(kept)

	if !productive.Has(g.start) {
		tracer().Infof("unproductive: start symbol %q derives no terminal string", g.start)
	}
	tracer().Debugf("unproductive: removed %d nonterminals and %d productions", before-g.nonTerminals.Len(), droppedProds)
}

func (g *Grammar) filterNonTerminals(set util.StringSet) []string {
	var ordered []string
	for _, nt := range g.nonTerminals.Elements() {
		if set.Has(nt) {
			ordered = append(ordered, nt)
		}
	}
	return ordered
}
