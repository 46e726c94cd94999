package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_IsolateStart(t *testing.T) {
	testCases := []struct {
		name        string
		rules       []string
		expectAdded bool
		expectStart string
		expect      []string
	}{
		{
			name:        "start not on right-hand side",
			rules:       []string{"S -> a A", "A -> b"},
			expectAdded: false,
			expectStart: "S",
			expect:      []string{"S -> a A", "A -> b"},
		},
		{
			name:        "start on right-hand side",
			rules:       []string{"S -> a S | b"},
			expectAdded: true,
			expectStart: "S0",
			expect:      []string{"S0 -> S", "S -> a S | b"},
		},
		{
			name:        "generated name skips existing",
			rules:       []string{"S -> a S0 | b", "S0 -> S"},
			expectAdded: true,
			expectStart: "S1",
			expect:      []string{"S1 -> S", "S -> a S0 | b", "S0 -> S"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := MustParseRules("S", tc.rules...)
			added := g.IsolateStart()

			assert.Equal(tc.expectAdded, added)
			assert.Equal(tc.expectStart, g.Start())

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
