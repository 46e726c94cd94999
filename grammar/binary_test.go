package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_MarshalBinary_roundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		setup func() *Grammar
	}{
		{
			name: "as parsed",
			setup: func() *Grammar {
				return MustParseRules("S", labGrammar...)
			},
		},
		{
			name: "with epsilon and rule-less nonterminal",
			setup: func() *Grammar {
				return MustNew(
					[]string{"S", "C"},
					[]string{"a"},
					map[string][][]string{"S": {{"a", "S"}, {}}},
					"S",
				)
			},
		},
		{
			name: "after normalizing",
			setup: func() *Grammar {
				g := MustParseRules("S", labGrammar...)
				g.Normalize(Options{IsolateStart: true})
				return g
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := tc.setup()
			data, err := g.MarshalBinary()
			if !assert.NoError(err) {
				return
			}

			var actual Grammar
			err = actual.UnmarshalBinary(data)
			if !assert.NoError(err) {
				return
			}

			assert.True(g.Equal(&actual), "expected:\n%s\nactual:\n%s", g, &actual)
			assert.Equal(g.NonTerminals(), actual.NonTerminals())
			assert.Equal(g.Terminals(), actual.Terminals())
			assert.Equal(g.fresh, actual.fresh)
			assert.Equal(g.epsilonFree, actual.epsilonFree)
			for _, r := range actual.Rules() {
				for _, p := range r.Productions {
					for _, sym := range p {
						assert.Equal(g.IsTerminal(sym.Name), sym.IsTerminal(), "kind of %q", sym.Name)
					}
				}
			}
		})
	}
}

func Test_Grammar_UnmarshalBinary_keepsFreshNames(t *testing.T) {
	assert := assert.New(t)

	g := MustParseRules("S", "S -> a b", "X1 -> c")
	g.RemoveUnreachable()

	data, err := g.MarshalBinary()
	if !assert.NoError(err) {
		return
	}
	var decoded Grammar
	if !assert.NoError(decoded.UnmarshalBinary(data)) {
		return
	}

	// X1 was removed but must still never be minted again
	decoded.ToCNF()
	assert.Equal([]string{"S", "X2", "X3"}, decoded.NonTerminals())
}

func Test_Grammar_UnmarshalBinary_badData(t *testing.T) {
	assert := assert.New(t)

	g := MustParseRules("S", "S -> a S | b")
	data, err := g.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded Grammar
	err = decoded.UnmarshalBinary(data[:len(data)/2])
	assert.Error(err)
}
