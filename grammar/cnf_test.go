package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_ToCNF(t *testing.T) {
	testCases := []struct {
		name   string
		rules  []string
		expect []string
	}{
		{
			name:   "already in normal form",
			rules:  []string{"S -> A B | a", "A -> a", "B -> b"},
			expect: []string{"S -> A B | a", "A -> a", "B -> b"},
		},
		{
			name:  "terminals shared between rules get one nonterminal",
			rules: []string{"S -> a A | b", "A -> a | b S"},
			expect: []string{
				"S -> X1 A | b",
				"A -> a | X2 S",
				"X1 -> a",
				"X2 -> b",
			},
		},
		{
			name:  "length five production",
			rules: []string{"A -> b C a C b", "C -> c"},
			expect: []string{
				"A -> X5 X1",
				"C -> c",
				"X1 -> b",
				"X2 -> a",
				"X3 -> X1 C",
				"X4 -> X3 X2",
				"X5 -> X4 C",
			},
		},
		{
			name:  "long production of nonterminals",
			rules: []string{"S -> A A A", "A -> a"},
			expect: []string{
				"S -> X1 A",
				"A -> a",
				"X1 -> A A",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("", tc.rules...)
			g.ToCNF()

			rules := g.Rules()
			if !assert.Len(rules, len(tc.expect)) {
				return
			}
			for i := range tc.expect {
				assert.Equal(tc.expect[i], rules[i].String(), "rules[%d]", i)
			}
			assert.True(g.IsCNF(), "violations: %v", g.CNFViolations())
		})
	}
}

func Test_Grammar_ToCNF_lengthFiveInlinesBack(t *testing.T) {
	assert := assert.New(t)

	g := MustParseRules("A", "A -> b C a C b", "C -> c")
	g.ToCNF()

	// the chain for A is every production made by binarization plus A itself
	var chainProds int
	for _, r := range g.Rules() {
		for _, p := range r.Productions {
			if r.NonTerminal == "A" || (len(p) == 2 && r.NonTerminal != "C") {
				assert.LessOrEqual(len(p), 2)
				chainProds++
			}
		}
	}
	assert.Equal(4, chainProds)

	expanded := inline(g, g.Rule("A").Productions[0], map[string]bool{"C": true})
	assert.Equal("b C a C b", expanded.String())
}

// inline replaces every nonterminal of p not in keep with its only production
// until only terminals and nonterminals in keep remain.
func inline(g *Grammar, p Production, keep map[string]bool) Production {
	var out Production
	for _, sym := range p {
		if sym.Kind == Terminal || keep[sym.Name] {
			out = append(out, sym)
			continue
		}
		out = append(out, inline(g, g.Rule(sym.Name).Productions[0], keep)...)
	}
	return out
}

func Test_Grammar_freshNonTerminal(t *testing.T) {
	testCases := []struct {
		name   string
		setup  func() *Grammar
		expect []string
	}{
		{
			name: "skips declared nonterminal",
			setup: func() *Grammar {
				return MustParseRules("S", "S -> a b", "X1 -> a")
			},
			expect: []string{"S -> X2 X3", "X1 -> a", "X2 -> a", "X3 -> b"},
		},
		{
			name: "skips terminal with the same name",
			setup: func() *Grammar {
				return MustParseRules("S", "S -> X1 b")
			},
			expect: []string{"S -> X2 X3", "X2 -> X1", "X3 -> b"},
		},
		{
			name: "skips names removed earlier",
			setup: func() *Grammar {
				g := MustParseRules("S", "S -> a b", "X1 -> c")
				g.RemoveUnreachable()
				return g
			},
			expect: []string{"S -> X2 X3", "X2 -> a", "X3 -> b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := tc.setup()
			g.ToCNF()

			rules := g.Rules()
			if !assert.Len(rules, len(tc.expect)) {
				return
			}
			for i := range tc.expect {
				assert.Equal(tc.expect[i], rules[i].String(), "rules[%d]", i)
			}

			seen := map[string]bool{}
			for _, nt := range g.NonTerminals() {
				assert.False(seen[nt], "nonterminal %q minted twice", nt)
				assert.False(g.IsTerminal(nt), "nonterminal %q is also a terminal", nt)
				seen[nt] = true
			}
		})
	}
}

func Test_Grammar_CNFViolations(t *testing.T) {
	testCases := []struct {
		name   string
		rules  []string
		expect int
	}{
		{name: "valid", rules: []string{"S -> A B | a | ε", "A -> a", "B -> b"}, expect: 0},
		{name: "unit", rules: []string{"S -> A", "A -> a"}, expect: 1},
		{name: "long", rules: []string{"S -> A A A", "A -> a"}, expect: 1},
		{name: "mixed pair", rules: []string{"S -> a A", "A -> a"}, expect: 1},
		{name: "epsilon off start", rules: []string{"S -> A A", "A -> a | ε"}, expect: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("S", tc.rules...)
			assert.Len(g.CNFViolations(), tc.expect)
		})
	}
}
