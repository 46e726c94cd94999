package grammar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dekarrin/chomsky/internal/util"
)

// Tokenize splits s into terminals of g. If every terminal of g is a single
// character, s is split into characters and whitespace is ignored; otherwise s
// is split on whitespace. It returns an error wrapping ErrUnknownTerminal if
// any token is not a terminal of g.
func (g *Grammar) Tokenize(s string) ([]string, error) {
	singleChars := true
	for _, t := range g.terminals.Elements() {
		if utf8.RuneCountInString(t) != 1 {
			singleChars = false
			break
		}
	}

	var tokens []string
	if singleChars {
		for _, ch := range s {
			if unicode.IsSpace(ch) {
				continue
			}
			tokens = append(tokens, string(ch))
		}
	} else {
		tokens = strings.Fields(s)
	}

	for i, tok := range tokens {
		if !g.terminals.Has(tok) {
			return nil, fmt.Errorf("token %d (%q): %w", i+1, tok, ErrUnknownTerminal)
		}
	}
	return tokens, nil
}

// CYK returns whether g derives the given sequence of terminals using the
// Cocke-Younger-Kasami algorithm. g must be in Chomsky Normal Form; if it is
// not, ErrNotCNF is returned. The empty input is accepted only if the start
// symbol has an epsilon production.
func (g *Grammar) CYK(input []string) (bool, error) {
	if !g.IsCNF() {
		return false, ErrNotCNF
	}

	n := len(input)
	if n == 0 {
		for _, p := range g.productionsOf(g.start) {
			if p.IsEpsilon() {
				return true, nil
			}
		}
		return false, nil
	}

	// table[length-1][i] holds every nonterminal that derives
	// input[i:i+length].
	table := make([][]util.StringSet, n)
	for l := range table {
		table[l] = make([]util.StringSet, n-l)
		for i := range table[l] {
			table[l][i] = util.StringSet{}
		}
	}

	for i, tok := range input {
		for _, r := range g.rules {
			for _, p := range r.Productions {
				if len(p) == 1 && p[0].Name == tok {
					table[0][i].Add(r.NonTerminal)
				}
			}
		}
	}

	for length := 2; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			cell := table[length-1][i]
			for split := 1; split < length; split++ {
				left := table[split-1][i]
				right := table[length-split-1][i+split]
				if left.Empty() || right.Empty() {
					continue
				}
				for _, r := range g.rules {
					if cell.Has(r.NonTerminal) {
						continue
					}
					for _, p := range r.Productions {
						if len(p) == 2 && left.Has(p[0].Name) && right.Has(p[1].Name) {
							cell.Add(r.NonTerminal)
							break
						}
					}
				}
			}
		}
	}

	return table[n-1][0].Has(g.start), nil
}

// earleyItem is a production with a position in it, started at origin.
type earleyItem struct {
	lhs    string
	prod   int
	dot    int
	origin int
}

// earleySet is an ordered set of items for one position in the input.
type earleySet struct {
	items []earleyItem
	seen  map[earleyItem]bool
}

func (es *earleySet) add(item earleyItem) {
	if es.seen[item] {
		return
	}
	es.seen[item] = true
	es.items = append(es.items, item)
}

// Earley returns whether g derives the given sequence of terminals. It works
// on any grammar, including ones with epsilon and unit productions, and so can
// check a grammar before it is normalized.
func (g *Grammar) Earley(input []string) bool {
	if !g.HasRule(g.start) {
		return false
	}

	nullable := g.nullable()
	n := len(input)
	chart := make([]*earleySet, n+1)
	for i := range chart {
		chart[i] = &earleySet{seen: map[earleyItem]bool{}}
	}

	for pi := range g.productionsOf(g.start) {
		chart[0].add(earleyItem{lhs: g.start, prod: pi})
	}

	for i := 0; i <= n; i++ {
		set := chart[i]
		// set.items grows while it is walked
		for j := 0; j < len(set.items); j++ {
			item := set.items[j]
			p := g.productionsOf(item.lhs)[item.prod]

			if item.dot == len(p) {
				// complete
				for _, waiting := range chart[item.origin].items {
					wp := g.productionsOf(waiting.lhs)[waiting.prod]
					if waiting.dot < len(wp) && wp[waiting.dot].Kind == NonTerminal && wp[waiting.dot].Name == item.lhs {
						set.add(earleyItem{lhs: waiting.lhs, prod: waiting.prod, dot: waiting.dot + 1, origin: waiting.origin})
					}
				}
				continue
			}

			next := p[item.dot]
			if next.Kind == Terminal {
				// scan
				if i < n && input[i] == next.Name {
					chart[i+1].add(earleyItem{lhs: item.lhs, prod: item.prod, dot: item.dot + 1, origin: item.origin})
				}
				continue
			}

			// predict
			for pi := range g.productionsOf(next.Name) {
				set.add(earleyItem{lhs: next.Name, prod: pi, origin: i})
			}
			if nullable.Has(next.Name) {
				set.add(earleyItem{lhs: item.lhs, prod: item.prod, dot: item.dot + 1, origin: item.origin})
			}
		}
	}

	for _, item := range chart[n].items {
		if item.lhs == g.start && item.origin == 0 && item.dot == len(g.productionsOf(item.lhs)[item.prod]) {
			return true
		}
	}
	return false
}
