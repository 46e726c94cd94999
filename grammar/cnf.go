package grammar

import (
	"fmt"
)

// ToCNF finishes conversion to Chomsky Normal Form. It must be run after
// epsilon and unit productions have been removed, at which point every
// production of length one is a single terminal.
//
// First, every terminal in a production of length two or more is replaced by
// a new nonterminal that derives only that terminal; one such nonterminal is
// created per distinct terminal. Then every production longer than two is
// split by repeatedly replacing its first two symbols with a new nonterminal
// deriving them.
//
// New nonterminals are named X1, X2, ... from the grammar's counter and their
// rules are added after the existing ones.
func (g *Grammar) ToCNF() {
	g.isolateTerminals()
	g.binarize()
}

func (g *Grammar) isolateTerminals() {
	termVars := map[string]string{}
	var termRules []Rule

	for i := range g.rules {
		r := &g.rules[i]
		for j, p := range r.Productions {
			if len(p) < 2 {
				continue
			}

			rewritten := p.Copy()
			for k, sym := range rewritten {
				if sym.Kind != Terminal {
					continue
				}
				nt, ok := termVars[sym.Name]
				if !ok {
					nt = g.freshNonTerminal()
					termVars[sym.Name] = nt
					termRules = append(termRules, Rule{NonTerminal: nt, Productions: []Production{{sym}}})
				}
				rewritten[k] = NonTerm(nt)
			}
			r.Productions[j] = rewritten
		}
	}

	for _, tr := range termRules {
		g.appendRule(tr)
	}
	tracer().Debugf("cnf: isolated %d terminals", len(termRules))
}

func (g *Grammar) binarize() {
	var chainRules []Rule

	for i := range g.rules {
		r := &g.rules[i]
		for j, p := range r.Productions {
			for len(p) > 2 {
				nt := g.freshNonTerminal()
				chainRules = append(chainRules, Rule{NonTerminal: nt, Productions: []Production{{p[0], p[1]}}})

				shortened := make(Production, 0, len(p)-1)
				shortened = append(shortened, NonTerm(nt))
				shortened = append(shortened, p[2:]...)
				p = shortened
			}
			r.Productions[j] = p
		}
	}

	for _, cr := range chainRules {
		g.appendRule(cr)
	}
	tracer().Debugf("cnf: added %d chain nonterminals", len(chainRules))
}

// CNFViolations returns a description of every production of g that is not
// allowed in Chomsky Normal Form. Allowed productions are A -> B C with B and C
// nonterminals, A -> a with a a terminal, and S -> ε for the start symbol S.
func (g *Grammar) CNFViolations() []string {
	var violations []string
	for _, r := range g.rules {
		for _, p := range r.Productions {
			switch len(p) {
			case 0:
				if r.NonTerminal != g.start {
					violations = append(violations, fmt.Sprintf("%s -> %s: epsilon on a nonterminal other than the start symbol", r.NonTerminal, p))
				}
			case 1:
				if p[0].Kind != Terminal {
					violations = append(violations, fmt.Sprintf("%s -> %s: unit production", r.NonTerminal, p))
				}
			case 2:
				if p[0].Kind != NonTerminal || p[1].Kind != NonTerminal {
					violations = append(violations, fmt.Sprintf("%s -> %s: production of length 2 must be two nonterminals", r.NonTerminal, p))
				}
			default:
				violations = append(violations, fmt.Sprintf("%s -> %s: production is longer than 2", r.NonTerminal, p))
			}
		}
	}
	return violations
}

// IsCNF returns whether every production of g is allowed in Chomsky Normal
// Form.
func (g *Grammar) IsCNF() bool {
	return len(g.CNFViolations()) == 0
}
