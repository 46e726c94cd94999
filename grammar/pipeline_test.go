package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// labGrammar is a grammar exercising every stage: C is nullable, B -> A C
// becomes a unit production once C is dropped, and E is unreachable.
var labGrammar = []string{
	"S -> b A C | B",
	"A -> a | a S | b C a C b",
	"B -> A C | b S | a A a",
	"C -> ε | A B",
	"E -> B A",
}

func Test_ParseStage(t *testing.T) {
	testCases := []struct {
		input     string
		expect    Stage
		expectErr bool
	}{
		{input: "epsilon", expect: StageEpsilon},
		{input: "EPS", expect: StageEpsilon},
		{input: "unit", expect: StageUnit},
		{input: " reach ", expect: StageUnreachable},
		{input: "productive", expect: StageUnproductive},
		{input: "CNF", expect: StageCNF},
		{input: "start", expect: StageIsolateStart},
		{input: "lalr", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseStage(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_ParseStages(t *testing.T) {
	assert := assert.New(t)

	stages, err := ParseStages("epsilon, unit,,cnf")
	assert.NoError(err)
	assert.Equal([]Stage{StageEpsilon, StageUnit, StageCNF}, stages)

	_, err = ParseStages("epsilon,bogus")
	assert.Error(err)
}

func Test_Options_Stages(t *testing.T) {
	testCases := []struct {
		name   string
		opts   Options
		expect []Stage
	}{
		{
			name:   "default",
			opts:   Options{},
			expect: DefaultPipeline,
		},
		{
			name:   "reprune",
			opts:   Options{Reprune: true},
			expect: []Stage{StageEpsilon, StageUnit, StageUnreachable, StageUnproductive, StageUnreachable, StageCNF},
		},
		{
			name:   "isolate start",
			opts:   Options{IsolateStart: true},
			expect: []Stage{StageIsolateStart, StageEpsilon, StageUnit, StageUnreachable, StageUnproductive, StageCNF},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, tc.opts.Stages())
		})
	}
}

func Test_Grammar_Normalize_scenarios(t *testing.T) {
	t.Run("right-linear grammar keeps its language", func(t *testing.T) {
		assert := assert.New(t)

		orig := MustParseRules("S", "S -> a A | b", "A -> a | b S")
		cnf := orig.Copy()
		cnf.Normalize(Options{})

		assert.True(cnf.IsCNF(), "violations: %v", cnf.CNFViolations())

		// S -> a A | b, A -> a | b S generates (ab)*(b | aa), so "ab" is out
		// and "aa" is in
		inLanguage := map[string]bool{
			"b":    true,
			"aa":   true,
			"abb":  true,
			"abaa": true,
			"ab":   false,
			"aab":  false,
			"":     false,
			"ba":   false,
		}
		for input, expect := range inLanguage {
			tokens, err := orig.Tokenize(input)
			if !assert.NoError(err) {
				continue
			}
			assert.Equal(expect, orig.Earley(tokens), "original on %q", input)

			actual, err := cnf.CYK(tokens)
			assert.NoError(err)
			assert.Equal(expect, actual, "normalized on %q", input)
		}
	})

	t.Run("nullable start used as a unit keeps epsilon on the start only", func(t *testing.T) {
		assert := assert.New(t)

		g := MustParseRules("S", "S -> a A | ε", "A -> S")
		g.Normalize(Options{})

		assert.True(g.IsCNF(), "violations: %v", g.CNFViolations())
		assert.Equal("S -> X1 A | a | ε\nA -> X1 A | a\nX1 -> a", g.String())

		for _, input := range [][]string{nil, {"a"}, {"a", "a"}, {"a", "a", "a"}} {
			actual, err := g.CYK(input)
			assert.NoError(err)
			assert.True(actual, "rejected %v", input)
		}
	})

	t.Run("nonterminal deriving only epsilon disappears", func(t *testing.T) {
		assert := assert.New(t)

		g := MustParseRules("S", "S -> a B | b", "B -> b", "C -> ε")
		g.Normalize(Options{})

		assert.NotContains(g.NonTerminals(), "C")
		assert.False(g.HasRule("C"))
	})

	t.Run("length five production becomes four", func(t *testing.T) {
		assert := assert.New(t)

		g := MustParseRules("A", "A -> b C a C b", "C -> c")
		g.Normalize(Options{})

		assert.True(g.IsCNF())
		expanded := inline(g, g.Rule("A").Productions[0], nil)
		assert.Equal("b c a c b", expanded.String())
	})
}

func Test_Grammar_Normalize_languageInvariance(t *testing.T) {
	testCases := []struct {
		name      string
		rules     []string
		terminals []string
		opts      Options
	}{
		{
			name:      "lab grammar",
			rules:     labGrammar,
			terminals: []string{"a", "b"},
		},
		{
			name:      "lab grammar with reprune",
			rules:     labGrammar,
			terminals: []string{"a", "b"},
			opts:      Options{Reprune: true},
		},
		{
			name:      "balanced parentheses with empty string",
			rules:     []string{"S -> l S r S | ε"},
			terminals: []string{"l", "r"},
		},
		{
			name:      "balanced parentheses with isolated start",
			rules:     []string{"S -> l S r S | ε"},
			terminals: []string{"l", "r"},
			opts:      Options{IsolateStart: true},
		},
		{
			name:      "unit production onto nullable start",
			rules:     []string{"S -> a A | ε", "A -> S"},
			terminals: []string{"a"},
		},
		{
			name:      "start reached through a unit production in a cycle",
			rules:     []string{"S -> A b | ε", "A -> S | a"},
			terminals: []string{"a", "b"},
		},
		{
			name:      "unit cycles and epsilons",
			rules:     []string{"S -> A | B a", "A -> B | a A b", "B -> A | ε | b"},
			terminals: []string{"a", "b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			orig := MustParseRules("S", tc.rules...)
			cnf := orig.Copy()
			cnf.Normalize(tc.opts)

			if !assert.True(cnf.IsCNF(), "violations: %v", cnf.CNFViolations()) {
				return
			}

			for _, input := range allStrings(tc.terminals, 6) {
				expect := orig.Earley(input)
				actual, err := cnf.CYK(input)
				if !assert.NoError(err) {
					return
				}
				assert.Equal(expect, actual, "disagreement on %v", input)
			}
		})
	}
}

func Test_Grammar_Normalize_reprune(t *testing.T) {
	rules := []string{"S -> A B | a", "A -> a", "B -> B b"}

	t.Run("single pass leaves stranded nonterminal", func(t *testing.T) {
		assert := assert.New(t)

		g := MustParseRules("S", rules...)
		g.Normalize(Options{})
		assert.Equal([]string{"S", "A"}, g.NonTerminals())
	})

	t.Run("second pass removes it", func(t *testing.T) {
		assert := assert.New(t)

		g := MustParseRules("S", rules...)
		g.Normalize(Options{Reprune: true})
		assert.Equal([]string{"S"}, g.NonTerminals())
	})
}

func Test_Grammar_Normalize_isolateStart(t *testing.T) {
	assert := assert.New(t)

	g := MustParseRules("S", "S -> a S | ε")
	g.Normalize(Options{IsolateStart: true})

	assert.Equal("S0", g.Start())
	assert.Equal("S0 -> ε | X1 S | a\nS -> X1 S | a\nX1 -> a", g.String())
	for _, r := range g.Rules() {
		for _, p := range r.Productions {
			assert.False(p.HasSymbol("S0"), "start symbol on right-hand side of %s", r)
		}
	}
}

func Test_Grammar_Run_stepResults(t *testing.T) {
	assert := assert.New(t)

	g := MustParseRules("S", labGrammar...)
	results := g.Run(StageEpsilon, StageUnreachable)

	if !assert.Len(results, 2) {
		return
	}
	assert.Equal(StageEpsilon, results[0].Stage)
	assert.Equal(5, results[0].NonTerminalsBefore)
	assert.Equal(results[0].NonTerminalsAfter, results[1].NonTerminalsBefore)
	assert.Equal(4, results[1].NonTerminalsAfter)
	assert.Less(results[1].ProductionsAfter, results[1].ProductionsBefore)
}

// allStrings returns every sequence of the given terminals with length up to
// maxLen, including the empty sequence.
func allStrings(terminals []string, maxLen int) [][]string {
	all := [][]string{{}}
	prev := [][]string{{}}
	for l := 1; l <= maxLen; l++ {
		var next [][]string
		for _, s := range prev {
			for _, t := range terminals {
				ext := make([]string, len(s)+1)
				copy(ext, s)
				ext[len(s)] = t
				next = append(next, ext)
			}
		}
		all = append(all, next...)
		prev = next
	}
	return all
}
