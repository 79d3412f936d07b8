package rules

import "sync/atomic"

var emptySet = &Set{}

// Store owns the active rule Set. Readers always observe a complete Set;
// a reload swaps the whole value.
type Store struct {
	current atomic.Pointer[Set]
}

// NewStore returns a Store holding an empty Set.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(emptySet)
	return s
}

// Load returns the active Set. It is never nil.
func (s *Store) Load() *Set {
	if set := s.current.Load(); set != nil {
		return set
	}
	return emptySet
}

// Replace makes set the active Set. A nil set clears the store.
func (s *Store) Replace(set *Set) {
	if set == nil {
		set = emptySet
	}
	s.current.Store(set)
}

// Clear drops all rules.
func (s *Store) Clear() {
	s.current.Store(emptySet)
}
