package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_UnitPairs(t *testing.T) {
	testCases := []struct {
		name   string
		rules  []string
		expect []UnitPair
	}{
		{
			name:   "no unit productions",
			rules:  []string{"S -> a B", "B -> b"},
			expect: nil,
		},
		{
			name:  "chain is closed transitively",
			rules: []string{"S -> A | a", "A -> B", "B -> C | b", "C -> c"},
			expect: []UnitPair{
				{"S", "A"}, {"S", "B"}, {"S", "C"},
				{"A", "B"}, {"A", "C"},
				{"B", "C"},
			},
		},
		{
			name:  "cycle does not produce reflexive pairs",
			rules: []string{"S -> A | a", "A -> S | b"},
			expect: []UnitPair{
				{"S", "A"},
				{"A", "S"},
			},
		},
		{
			name:   "self unit production",
			rules:  []string{"S -> S | a"},
			expect: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("S", tc.rules...)
			assert.Equal(tc.expect, g.UnitPairs())
		})
	}
}

func Test_Grammar_RemoveUnitProductions(t *testing.T) {
	testCases := []struct {
		name   string
		rules  []string
		expect []string
	}{
		{
			name: "chain",
			rules: []string{
				"S -> A | a",
				"A -> B",
				"B -> C | b",
				"C -> c",
			},
			expect: []string{
				"S -> a | b | c",
				"A -> b | c",
				"B -> b | c",
				"C -> c",
			},
		},
		{
			name: "cycle",
			rules: []string{
				"S -> A | a",
				"A -> S | b",
			},
			expect: []string{
				"S -> a | b",
				"A -> b | a",
			},
		},
		{
			name: "after epsilon removal of neso academy example",
			rules: []string{
				"S -> A S A | S A | A S | S | a B | a",
				"A -> B | S",
				"B -> b",
			},
			expect: []string{
				"S -> A S A | S A | A S | a B | a",
				"A -> b | A S A | S A | A S | a B | a",
				"B -> b",
			},
		},
		{
			name: "duplicates from several sources kept once",
			rules: []string{
				"S -> A | B | a",
				"A -> a | b",
				"B -> b",
			},
			expect: []string{
				"S -> a | b",
				"A -> a | b",
				"B -> b",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("S", tc.rules...)
			g.RemoveUnitProductions()

			rules := g.Rules()
			if !assert.Len(rules, len(tc.expect)) {
				return
			}
			for i := range tc.expect {
				assert.Equal(tc.expect[i], rules[i].String(), "rules[%d]", i)
			}
		})
	}
}

func Test_Grammar_RemoveUnitProductions_nullableStart(t *testing.T) {
	rules := []string{"S -> a A | ε", "A -> S"}

	t.Run("after epsilon removal epsilon stays on the start symbol", func(t *testing.T) {
		assert := assert.New(t)

		g := MustParseRules("S", rules...)
		g.RemoveEpsilons()
		g.RemoveUnitProductions()

		assert.Equal("S -> a A | a | ε\nA -> a A | a", g.String())
		for _, r := range g.Rules() {
			if r.NonTerminal == "S" {
				continue
			}
			for _, p := range r.Productions {
				assert.False(p.IsEpsilon(), "epsilon on %s", r.NonTerminal)
			}
		}
	})

	t.Run("without epsilon removal A stays nullable", func(t *testing.T) {
		assert := assert.New(t)

		g := MustParseRules("S", rules...)
		g.RemoveUnitProductions()

		assert.Equal("S -> a A | ε\nA -> a A | ε", g.String())
	})
}

func Test_Grammar_RemoveUnitProductions_idempotent(t *testing.T) {
	g := MustParseRules("S", "S -> A | a B", "A -> B | a", "B -> S | b")
	g.RemoveUnitProductions()
	once := g.Copy()
	g.RemoveUnitProductions()

	assertSameProductions(t, once, g)
}

func Test_Grammar_RemoveUnitProductions_givesEveryNonTerminalARule(t *testing.T) {
	assert := assert.New(t)

	g := MustNew(
		[]string{"S", "C"},
		[]string{"a"},
		map[string][][]string{"S": {{"a"}}},
		"S",
	)
	assert.False(g.HasRule("C"))

	g.RemoveUnitProductions()

	assert.True(g.HasRule("C"))
	assert.Empty(g.Rule("C").Productions)
}
