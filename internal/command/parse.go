package command

import (
	"strings"

	"github.com/dekarrin/chomsky/internal/chomerr"
)

var (
	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all uppercase.
	VerbAliases map[string]string = map[string]string{
		"PRINT":      "SHOW",
		"LS":         "SHOW",
		"ORIG":       "SHOW ORIGINAL",
		"TEST":       "ACCEPTS",
		"ACCEPT":     "ACCEPTS",
		"PARSE":      "ACCEPTS",
		"NULLABLES":  "NULLABLE",
		"UNIT":       "UNITS",
		"APPLY":      "STEP",
		"NORMALIZE":  "RUN",
		"VALIDATE":   "CHECK",
		"RESTART":    "RESET",
		"REVERT":     "RESET",
		"?":          "HELP",
		"/?":         "HELP",
		"/H":         "HELP",
		"-H":         "HELP",
		"H":          "HELP",
		"EXIT":       "QUIT",
		"BYE":        "QUIT",
		"Q":          "QUIT",
		"SHOW ORIG":  "SHOW ORIGINAL",
		"PRINT ORIG": "SHOW ORIGINAL",
	}
)

// Verbs is every canonical verb, in the order they are listed by HELP.
var Verbs = []string{
	"SHOW",
	"TABLE",
	"NULLABLE",
	"UNITS",
	"REACHABLE",
	"PRODUCTIVE",
	"STEP",
	"RUN",
	"RESET",
	"CHECK",
	"ACCEPTS",
	"HELP",
	"QUIT",
}

// Parse parses a command from the given text. If it cannot, a non-nil error is
// returned.
//
// If an empty string or a string composed only of whitespace is passed in, nil
// error is returned and a zero value for Command will be returned.
func Parse(toParse string) (Command, error) {
	var parsedCmd Command

	// make entire input upper case to make matching easy
	normalizedCase := strings.ToUpper(toParse)

	// now tokenize our string, collapsing all whitespace
	originalTokens := strings.Fields(normalizedCase)

	// expand verb aliases up to 2 words long
	tokens := ExpandAliases(originalTokens, 2)

	if len(tokens) < 1 {
		return parsedCmd, nil
	}

	parsedCmd.Verb = tokens[0]

	switch parsedCmd.Verb {
	case "HELP":
		// help takes an optional argument
		if len(tokens) > 1 {
			parsedCmd.Arg = ExpandAliases(tokens[1:], 1)[0]
		}
	case "SHOW":
		if len(tokens) > 1 {
			if len(tokens) > 2 || tokens[1] != "ORIGINAL" {
				return parsedCmd, chomerr.Commandf("SHOW only takes ORIGINAL, not %q", strings.Join(tokens[1:], " "))
			}
			parsedCmd.Arg = "ORIGINAL"
		}
	case "STEP":
		if len(tokens) < 2 {
			return parsedCmd, chomerr.Commandf("I don't know which stage you want to run; try STEP EPSILON")
		}
		if len(tokens) > 2 {
			return parsedCmd, chomerr.Commandf("STEP takes one stage at a time")
		}
		parsedCmd.Arg = tokens[1]
	case "ACCEPTS":
		// the input to test is case-sensitive, so take it from the original
		// text rather than the tokens
		casedTokens := strings.Fields(toParse)
		if len(casedTokens) > 1 {
			parsedCmd.Arg = strings.Join(casedTokens[1:], " ")
		}
	case "TABLE", "NULLABLE", "UNITS", "REACHABLE", "PRODUCTIVE", "RUN", "RESET", "CHECK", "QUIT":
		// these take no additional args, make sure this is true
		if len(tokens) > 1 {
			errMsg := "You can't %s *something*; type %s by itself"
			return parsedCmd, chomerr.Commandf(errMsg, originalTokens[0], originalTokens[0])
		}
	default:
		return parsedCmd, chomerr.Commandf("I don't know what you mean by %q", originalTokens[0])
	}

	return parsedCmd, nil
}

// ExpandAliases takes a slice of tokens of user input and runs alias expansion
// on it. It expects all strings in the given slice to be upper case; failure to
// ensure this may cause the expansion to not work properly. The returned slice
// contains the same tokens but with aliases expanded.
//
// The unexpanded tokens slice is not modified during this operation.
//
// Aliases up to aliasLimit words long are supported. If it is less than 1, the
// given tokens are returned unchanged. The longest matching alias wins, and
// expansion is never applied to the results of an expansion.
func ExpandAliases(tokens []string, aliasLimit int) []string {
	expandedTokens := append([]string{}, tokens...)
	if aliasLimit < 1 {
		return expandedTokens
	}

	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	for curLimit := aliasLimit; curLimit >= 1; curLimit-- {
		checkStr := strings.Join(tokens[:curLimit], " ")
		expansion, ok := VerbAliases[checkStr]
		if ok {
			replacementTokens := strings.Fields(expansion)
			return append(replacementTokens, tokens[curLimit:]...)
		}
	}

	return expandedTokens
}
