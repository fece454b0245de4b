// Package favorites tracks which products the visitor has starred.
package favorites

import "slices"

// Set is a membership set of product ids
type Set struct {
	ids map[string]struct{}
}

// New builds a set from persisted ids; repeated ids collapse
func New(ids []string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds productID if absent, removes it otherwise, and returns the new membership
func (s *Set) Toggle(productID string) bool {
	if _, ok := s.ids[productID]; ok {
		delete(s.ids, productID)
		return false
	}
	s.ids[productID] = struct{}{}
	return true
}

// Contains reports membership
func (s *Set) Contains(productID string) bool {
	_, ok := s.ids[productID]
	return ok
}

// IDs returns the members sorted, so persisted output is stable
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *Set) Len() int {
	return len(s.ids)
}
