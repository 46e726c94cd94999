package util

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet is a map[string]bool with set operations added to it. It has no
// ordering; use OrderedSet where iteration order matters.
type StringSet map[string]bool

// NewStringSet returns a StringSet that contains every key of every given map.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// StringSetOf returns a StringSet containing every element of sl.
func StringSetOf(sl []string) StringSet {
	s := StringSet{}
	for i := range sl {
		s.Add(sl[i])
	}
	return s
}

func (s StringSet) Copy() StringSet {
	newS := make(StringSet, len(s))
	for k := range s {
		newS[k] = true
	}
	return newS
}

func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

func (s StringSet) Add(value string) {
	s[value] = true
}

// AddAll adds every element of s2 to s.
func (s StringSet) AddAll(s2 StringSet) {
	for k := range s2 {
		s.Add(k)
	}
}

func (s StringSet) Remove(value string) {
	delete(s, value)
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) Empty() bool {
	return len(s) == 0
}

// Union returns a new StringSet that has the elements of both s and o.
func (s StringSet) Union(o StringSet) StringSet {
	newSet := s.Copy()
	newSet.AddAll(o)
	return newSet
}

// Intersection returns a new StringSet with only the elements in both s and o.
func (s StringSet) Intersection(o StringSet) StringSet {
	newSet := StringSet{}
	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// Difference returns a new StringSet with the elements of s that are not in o.
func (s StringSet) Difference(o StringSet) StringSet {
	newSet := StringSet{}
	for k := range s {
		if !o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// Equal returns whether s and o contain exactly the same elements.
func (s StringSet) Equal(o StringSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// Elements returns the elements of s, alphabetized.
func (s StringSet) Elements() []string {
	sl := make([]string, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	sort.Strings(sl)
	return sl
}

// StringOrdered shows the contents of the set. Items are guaranteed to be
// alphabetized.
func (s StringSet) StringOrdered() string {
	return "{" + strings.Join(s.Elements(), ", ") + "}"
}

func (s StringSet) String() string {
	return s.StringOrdered()
}

// OrderedSet is a set that remembers the order that its elements were first
// added in. The zero value is not ready for use; call NewOrderedSet.
type OrderedSet[E comparable] struct {
	order []E
	index map[E]int
}

// NewOrderedSet creates an OrderedSet that contains the given elements in the
// order given. Duplicates after the first occurrence are ignored.
func NewOrderedSet[E comparable](of ...E) *OrderedSet[E] {
	s := &OrderedSet[E]{index: map[E]int{}}
	for _, e := range of {
		s.Add(e)
	}
	return s
}

// Add adds the element to the end of the set. It returns whether the element
// was newly added.
func (s *OrderedSet[E]) Add(e E) bool {
	if _, ok := s.index[e]; ok {
		return false
	}
	s.index[e] = len(s.order)
	s.order = append(s.order, e)
	return true
}

func (s *OrderedSet[E]) Has(e E) bool {
	_, ok := s.index[e]
	return ok
}

// Remove removes the element from the set. Has no effect if it isn't there.
func (s *OrderedSet[E]) Remove(e E) {
	idx, ok := s.index[e]
	if !ok {
		return
	}
	s.order = append(s.order[:idx], s.order[idx+1:]...)
	delete(s.index, e)
	for i := idx; i < len(s.order); i++ {
		s.index[s.order[i]] = i
	}
}

// Retain removes every element for which keep returns false. Order of the
// remaining elements is preserved.
func (s *OrderedSet[E]) Retain(keep func(e E) bool) {
	kept := s.order[:0]
	for _, e := range s.order {
		if keep(e) {
			kept = append(kept, e)
		} else {
			delete(s.index, e)
		}
	}
	s.order = kept
	for i := range s.order {
		s.index[s.order[i]] = i
	}
}

func (s *OrderedSet[E]) Len() int {
	return len(s.order)
}

// Elements returns a copy of the elements in insertion order.
func (s *OrderedSet[E]) Elements() []E {
	sl := make([]E, len(s.order))
	copy(sl, s.order)
	return sl
}

func (s *OrderedSet[E]) Copy() *OrderedSet[E] {
	return NewOrderedSet(s.order...)
}

// String shows the contents of the set in insertion order.
func (s *OrderedSet[E]) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i := range s.order {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%v", s.order[i]))
	}
	sb.WriteRune('}')
	return sb.String()
}
