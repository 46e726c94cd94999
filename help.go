package chomsky

import (
	"fmt"
	"strings"

	"github.com/dekarrin/chomsky/internal/chomerr"
	"github.com/dekarrin/chomsky/internal/command"
)

var commandHelp = map[string]struct {
	usage string
	desc  string
}{
	"SHOW":       {"SHOW [ORIGINAL]", "Show the grammar as it is now, or as it was loaded."},
	"TABLE":      {"TABLE", "Show the grammar as a table with a row for each nonterminal."},
	"NULLABLE":   {"NULLABLE", "List the nonterminals that can derive the empty string."},
	"UNITS":      {"UNITS", "List every pair (A, B) where A derives B through unit productions alone."},
	"REACHABLE":  {"REACHABLE", "List the nonterminals reachable from the start symbol."},
	"PRODUCTIVE": {"PRODUCTIVE", "List the nonterminals that derive at least one string of terminals."},
	"STEP":       {"STEP STAGE", "Apply one stage: START, EPSILON, UNIT, UNREACHABLE, UNPRODUCTIVE, or CNF."},
	"RUN":        {"RUN", "Apply every stage of the pipeline in order."},
	"RESET":      {"RESET", "Throw away every applied stage and go back to the grammar as loaded."},
	"CHECK":      {"CHECK", "Check whether the grammar is in Chomsky Normal Form and list what is not."},
	"ACCEPTS":    {"ACCEPTS TEXT", "Test whether TEXT is in the language of the original and the current grammar."},
	"HELP":       {"HELP [COMMAND]", "Show this list, or the help for one command."},
	"QUIT":       {"QUIT", "Leave the interpreter."},
}

func helpText(verb string) (string, error) {
	if verb != "" {
		h, ok := commandHelp[verb]
		if !ok {
			return "", chomerr.Commandf("There is no command called %q", verb)
		}
		return fmt.Sprintf("%s\n    %s", h.usage, h.desc), nil
	}

	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, v := range command.Verbs {
		h := commandHelp[v]
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", h.usage, h.desc))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
