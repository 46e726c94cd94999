package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Tokenize(t *testing.T) {
	testCases := []struct {
		name      string
		rules     []string
		input     string
		expect    []string
		expectErr bool
	}{
		{
			name:   "single character terminals",
			rules:  []string{"S -> a S | b"},
			input:  "a ab",
			expect: []string{"a", "a", "b"},
		},
		{
			name:   "multi-character terminals",
			rules:  []string{"S -> num plus S | num"},
			input:  "num plus num",
			expect: []string{"num", "plus", "num"},
		},
		{
			name:      "unknown terminal",
			rules:     []string{"S -> a S | b"},
			input:     "abc",
			expectErr: true,
		},
		{
			name:   "empty input",
			rules:  []string{"S -> a S | b"},
			input:  "",
			expect: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("S", tc.rules...)
			actual, err := g.Tokenize(tc.input)
			if tc.expectErr {
				assert.ErrorIs(err, ErrUnknownTerminal)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Grammar_Earley(t *testing.T) {
	testCases := []struct {
		name   string
		rules  []string
		input  []string
		expect bool
	}{
		{
			name:   "accepts simple string",
			rules:  []string{"S -> a S b | ε"},
			input:  []string{"a", "a", "b", "b"},
			expect: true,
		},
		{
			name:   "accepts empty string through nullable start",
			rules:  []string{"S -> a S b | ε"},
			input:  nil,
			expect: true,
		},
		{
			name:   "rejects unbalanced",
			rules:  []string{"S -> a S b | ε"},
			input:  []string{"a", "b", "b"},
			expect: false,
		},
		{
			name:   "nullable nonterminal in the middle",
			rules:  []string{"S -> a N b", "N -> N N | ε"},
			input:  []string{"a", "b"},
			expect: true,
		},
		{
			name:   "left recursion",
			rules:  []string{"S -> S a | b"},
			input:  []string{"b", "a", "a"},
			expect: true,
		},
		{
			name:   "unit chain",
			rules:  []string{"S -> A", "A -> B", "B -> c"},
			input:  []string{"c"},
			expect: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("S", tc.rules...)
			assert.Equal(tc.expect, g.Earley(tc.input))
		})
	}
}

func Test_Grammar_CYK(t *testing.T) {
	testCases := []struct {
		name      string
		rules     []string
		input     []string
		expect    bool
		expectErr bool
	}{
		{
			name:   "accepts",
			rules:  []string{"S -> A B | A C", "C -> S B", "A -> a", "B -> b"},
			input:  []string{"a", "a", "b", "b"},
			expect: true,
		},
		{
			name:   "rejects",
			rules:  []string{"S -> A B | A C", "C -> S B", "A -> a", "B -> b"},
			input:  []string{"a", "b", "b"},
			expect: false,
		},
		{
			name:   "empty input with start epsilon",
			rules:  []string{"S -> A B | ε", "A -> a", "B -> b"},
			input:  nil,
			expect: true,
		},
		{
			name:   "empty input without start epsilon",
			rules:  []string{"S -> A B", "A -> a", "B -> b"},
			input:  nil,
			expect: false,
		},
		{
			name:      "not in normal form",
			rules:     []string{"S -> a S b | ε"},
			input:     []string{"a", "b"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("S", tc.rules...)
			actual, err := g.CYK(tc.input)
			if tc.expectErr {
				assert.ErrorIs(err, ErrNotCNF)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}
