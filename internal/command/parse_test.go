package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Command
		expectErr bool
	}{
		{name: "blank", input: "   ", expect: Command{}},
		{name: "show", input: "show", expect: Command{Verb: "SHOW"}},
		{name: "show alias", input: "ls", expect: Command{Verb: "SHOW"}},
		{name: "show original", input: "SHOW original", expect: Command{Verb: "SHOW", Arg: "ORIGINAL"}},
		{name: "show orig alias", input: "print orig", expect: Command{Verb: "SHOW", Arg: "ORIGINAL"}},
		{name: "show bad arg", input: "show everything", expectErr: true},
		{name: "step", input: "step epsilon", expect: Command{Verb: "STEP", Arg: "EPSILON"}},
		{name: "step without stage", input: "step", expectErr: true},
		{name: "step with two stages", input: "step unit cnf", expectErr: true},
		{name: "accepts keeps case", input: "test aB b", expect: Command{Verb: "ACCEPTS", Arg: "aB b"}},
		{name: "accepts empty string", input: "ACCEPTS", expect: Command{Verb: "ACCEPTS"}},
		{name: "help", input: "?", expect: Command{Verb: "HELP"}},
		{name: "help with alias topic", input: "help ls", expect: Command{Verb: "HELP", Arg: "SHOW"}},
		{name: "quit alias", input: "bye", expect: Command{Verb: "QUIT"}},
		{name: "quit with args", input: "quit now", expectErr: true},
		{name: "unknown", input: "frobnicate", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_ExpandAliases(t *testing.T) {
	testCases := []struct {
		name   string
		tokens []string
		limit  int
		expect []string
	}{
		{name: "no alias", tokens: []string{"SHOW"}, limit: 2, expect: []string{"SHOW"}},
		{name: "one word", tokens: []string{"LS"}, limit: 2, expect: []string{"SHOW"}},
		{name: "two words preferred", tokens: []string{"SHOW", "ORIG"}, limit: 2, expect: []string{"SHOW", "ORIGINAL"}},
		{name: "limit zero", tokens: []string{"LS"}, limit: 0, expect: []string{"LS"}},
		{name: "rest kept", tokens: []string{"TEST", "A", "B"}, limit: 2, expect: []string{"ACCEPTS", "A", "B"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tc.expect, ExpandAliases(tc.tokens, tc.limit))
		})
	}
}
