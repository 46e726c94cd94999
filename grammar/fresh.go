package grammar

import "fmt"

// freshNonTerminal declares and returns a new nonterminal named "X" followed by
// the next value of the grammar's counter. Candidates that collide with any
// name the grammar has ever used are skipped; the counter still advances.
func (g *Grammar) freshNonTerminal() string {
	for {
		g.fresh++
		candidate := fmt.Sprintf("X%d", g.fresh)
		if !g.nonTerminals.Has(candidate) && !g.used.Has(candidate) {
			g.declareNonTerminal(candidate)
			return candidate
		}
	}
}

// GenerateUniqueName returns a name based on original that is not any name
// the grammar has ever used. It does not declare the name.
func (g *Grammar) GenerateUniqueName(original string) string {
	for n := 0; ; n++ {
		candidate := fmt.Sprintf("%s%d", original, n)
		if !g.used.Has(candidate) && !g.nonTerminals.Has(candidate) && !g.terminals.Has(candidate) {
			return candidate
		}
	}
}
