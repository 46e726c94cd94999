package grammar

import (
	"fmt"

	"github.com/dekarrin/chomsky/internal/util"
	"github.com/dekarrin/rezi"
)

// MarshalBinary encodes g into a slice of bytes that can be decoded with
// UnmarshalBinary. Rule order, symbol kinds, the fresh-name counter, and
// whether epsilons have been removed are all preserved.
func (g Grammar) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(g.start)...)
	data = append(data, rezi.EncInt(g.fresh)...)
	data = append(data, encStrings(g.nonTerminals.Elements())...)
	data = append(data, encStrings(g.terminals.Elements())...)
	data = append(data, encStrings(g.used.Elements())...)
	data = append(data, rezi.EncBool(g.epsilonFree)...)

	data = append(data, rezi.EncInt(len(g.rules))...)
	for _, r := range g.rules {
		data = append(data, rezi.EncString(r.NonTerminal)...)
		data = append(data, rezi.EncInt(len(r.Productions))...)
		for _, p := range r.Productions {
			names := make([]string, len(p))
			for i := range p {
				names[i] = p[i].Name
			}
			data = append(data, encStrings(names)...)
		}
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into g.
// All of g's existing contents are replaced.
func (g *Grammar) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	var decoded Grammar

	decoded.start, n, err = rezi.DecString(data)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	data = data[n:]

	decoded.fresh, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("fresh counter: %w", err)
	}
	data = data[n:]

	nts, n, err := decStrings(data)
	if err != nil {
		return fmt.Errorf("nonterminals: %w", err)
	}
	data = data[n:]
	decoded.nonTerminals = util.NewOrderedSet(nts...)

	terms, n, err := decStrings(data)
	if err != nil {
		return fmt.Errorf("terminals: %w", err)
	}
	data = data[n:]
	decoded.terminals = util.NewOrderedSet(terms...)

	used, n, err := decStrings(data)
	if err != nil {
		return fmt.Errorf("used names: %w", err)
	}
	data = data[n:]
	decoded.used = util.StringSetOf(used)

	decoded.epsilonFree, n, err = rezi.DecBool(data)
	if err != nil {
		return fmt.Errorf("epsilon-free flag: %w", err)
	}
	data = data[n:]

	ruleCount, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("rule count: %w", err)
	}
	data = data[n:]

	rules := make([]Rule, ruleCount)
	for i := 0; i < ruleCount; i++ {
		rules[i].NonTerminal, n, err = rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("rule %d: nonterminal: %w", i, err)
		}
		data = data[n:]

		prodCount, n, err := rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("rule %d: production count: %w", i, err)
		}
		data = data[n:]

		rules[i].Productions = make([]Production, prodCount)
		for j := 0; j < prodCount; j++ {
			names, n, err := decStrings(data)
			if err != nil {
				return fmt.Errorf("rule %d: production %d: %w", i, j, err)
			}
			data = data[n:]

			p := make(Production, len(names))
			for k, name := range names {
				if decoded.nonTerminals.Has(name) {
					p[k] = NonTerm(name)
				} else if decoded.terminals.Has(name) {
					p[k] = Term(name)
				} else {
					return fmt.Errorf("rule %d: production %d: symbol %q is not declared", i, j, name)
				}
			}
			rules[i].Productions[j] = p
		}
	}
	decoded.setRules(rules)

	*g = decoded
	return nil
}

func encStrings(sl []string) []byte {
	data := rezi.EncInt(len(sl))
	for _, s := range sl {
		data = append(data, rezi.EncString(s)...)
	}
	return data
}

func decStrings(data []byte) ([]string, int, error) {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, err
	}
	total := n
	data = data[n:]

	sl := make([]string, count)
	for i := 0; i < count; i++ {
		sl[i], n, err = rezi.DecString(data)
		if err != nil {
			return nil, total, fmt.Errorf("element %d: %w", i, err)
		}
		total += n
		data = data[n:]
	}
	return sl, total, nil
}
