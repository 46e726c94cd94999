package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// Display renders g one rule per line in the form "A → aB | b", with the
// symbols of each production written next to each other. Rules are shown in
// order; a nonterminal whose rule has no productions is shown with nothing
// after the arrow.
func (g *Grammar) Display() string {
	lines := make([]string, len(g.rules))
	for i := range g.rules {
		lines[i] = g.rules[i].Display()
	}
	return strings.Join(lines, "\n")
}

// String renders g one rule per line in the form "A -> a B | b", with the
// start symbol's rule first.
func (g *Grammar) String() string {
	var sb strings.Builder

	if idx, ok := g.rulesByName[g.start]; ok {
		sb.WriteString(g.rules[idx].String())
	}
	for i := range g.rules {
		if g.rules[i].NonTerminal == g.start {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(g.rules[i].String())
	}

	return sb.String()
}

// Table renders g as a text table with one row per rule, no wider than width
// columns.
func (g *Grammar) Table(width int) string {
	data := [][]string{{"Nonterminal", "#", "Productions"}}

	for _, r := range g.rules {
		name := r.NonTerminal
		if name == g.start {
			name += " (start)"
		}

		alts := make([]string, len(r.Productions))
		for i := range r.Productions {
			alts[i] = r.Productions[i].String()
		}

		data = append(data, []string{name, fmt.Sprintf("%d", len(r.Productions)), strings.Join(alts, " | ")})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			TableBorders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
