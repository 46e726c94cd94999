package grammar

// startOnRHS returns whether the start symbol appears in any production.
func (g *Grammar) startOnRHS() bool {
	for _, r := range g.rules {
		for _, p := range r.Productions {
			if p.HasSymbol(g.start) {
				return true
			}
		}
	}
	return false
}

// IsolateStart gives g a new start symbol S0 with the single production
// S0 -> S, where S is the old start symbol, if S appears in any production.
// It returns whether a new start symbol was added.
//
// Run before RemoveEpsilons, this keeps the only epsilon production of the
// final grammar on a symbol that appears in no production.
func (g *Grammar) IsolateStart() bool {
	if !g.startOnRHS() {
		return false
	}

	newStart := g.GenerateUniqueName(g.start)
	g.declareNonTerminal(newStart)

	rules := make([]Rule, 0, len(g.rules)+1)
	rules = append(rules, Rule{NonTerminal: newStart, Productions: []Production{{NonTerm(g.start)}}})
	rules = append(rules, g.rules...)
	g.setRules(rules)

	tracer().Debugf("start: %q replaced as start symbol by %q", g.start, newStart)
	g.start = newStart
	return true
}
