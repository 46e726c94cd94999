package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/chomsky/internal/util"
	"golang.org/x/text/unicode/norm"
)

var arrows = []string{"->", "→", "::="}

// ParseRule parses a rule of the form "A -> x y | z | ε" and returns its
// left-hand side and the symbol names of each alternative. Symbols are
// separated by whitespace; "→" and "::=" are accepted in place of "->". An
// alternative written as "ε" or "epsilon" is returned as an empty sequence.
//
// All names are normalized to Unicode NFC so that differently-composed
// spellings of the same name refer to the same symbol.
func ParseRule(r string) (string, [][]string, error) {
	var lhs, rhs string
	found := false
	for _, arrow := range arrows {
		if sides := strings.SplitN(r, arrow, 2); len(sides) == 2 {
			lhs, rhs = sides[0], sides[1]
			found = true
			break
		}
	}
	if !found {
		return "", nil, fmt.Errorf("not a rule of form 'NONTERM -> SYMBOL SYMBOL | SYMBOL ...': %q", r)
	}

	lhs = norm.NFC.String(strings.TrimSpace(lhs))
	if lhs == "" {
		return "", nil, fmt.Errorf("empty nonterminal name not allowed for production rule")
	}
	if len(strings.Fields(lhs)) != 1 {
		return "", nil, fmt.Errorf("left-hand side must be a single nonterminal: %q", lhs)
	}

	var alts [][]string
	for _, altStr := range strings.Split(rhs, "|") {
		symbols := strings.Fields(altStr)
		if len(symbols) == 0 {
			return "", nil, fmt.Errorf("rule for %q: empty alternative not allowed; use %s for epsilon", lhs, EpsilonMarker)
		}

		if len(symbols) == 1 && isEpsilonWord(symbols[0]) {
			alts = append(alts, []string{})
			continue
		}

		alt := make([]string, len(symbols))
		for i, sym := range symbols {
			if isEpsilonWord(sym) {
				return "", nil, fmt.Errorf("rule for %q: %s must be the only symbol of an alternative", lhs, EpsilonMarker)
			}
			alt[i] = norm.NFC.String(sym)
		}
		alts = append(alts, alt)
	}

	return lhs, alts, nil
}

func isEpsilonWord(s string) bool {
	return s == EpsilonMarker || strings.ToLower(s) == "epsilon"
}

// ParseRules creates a Grammar from rules in the form accepted by ParseRule.
// Every left-hand side is a nonterminal and every other symbol is a terminal.
// Several rules for the same nonterminal are merged. If start is empty, the
// left-hand side of the first rule is the start symbol.
func ParseRules(start string, rules ...string) (*Grammar, error) {
	return parseRules(nil, nil, start, rules)
}

// ParseDeclaredRules is like ParseRules but symbol kinds come from the given
// declarations rather than being inferred. Using an undeclared symbol is an
// error.
func ParseDeclaredRules(nonTerminals, terminals []string, start string, rules ...string) (*Grammar, error) {
	if nonTerminals == nil {
		nonTerminals = []string{}
	}
	if terminals == nil {
		terminals = []string{}
	}
	return parseRules(nonTerminals, terminals, start, rules)
}

// MustParseRules is like ParseRules but panics if there is an error.
func MustParseRules(start string, rules ...string) *Grammar {
	g, err := ParseRules(start, rules...)
	if err != nil {
		panic(err.Error())
	}
	return g
}

func parseRules(nonTerminals, terminals []string, start string, rules []string) (*Grammar, error) {
	lhsOrder := util.NewOrderedSet[string]()
	symOrder := util.NewOrderedSet[string]()
	prods := map[string][][]string{}

	for i, r := range rules {
		lhs, alts, err := ParseRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		lhsOrder.Add(lhs)
		for _, alt := range alts {
			for _, sym := range alt {
				symOrder.Add(sym)
			}
		}
		prods[lhs] = append(prods[lhs], alts...)
	}

	if start == "" && lhsOrder.Len() > 0 {
		start = lhsOrder.Elements()[0]
	}
	start = norm.NFC.String(start)

	if nonTerminals == nil {
		nonTerminals = lhsOrder.Elements()
	} else {
		nonTerminals = normalizeNames(nonTerminals)
	}
	if terminals == nil {
		for _, sym := range symOrder.Elements() {
			if !lhsOrder.Has(sym) {
				terminals = append(terminals, sym)
			}
		}
	} else {
		terminals = normalizeNames(terminals)
	}

	return New(nonTerminals, terminals, prods, start)
}

func normalizeNames(names []string) []string {
	normed := make([]string, len(names))
	for i := range names {
		normed[i] = norm.NFC.String(strings.TrimSpace(names[i]))
	}
	return normed
}
