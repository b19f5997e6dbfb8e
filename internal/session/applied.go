package session

import (
	"slices"
	"sync"
)

// AppliedSet records which suggestion ids the user has accepted
// It never influences scoring
type AppliedSet struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewAppliedSet() *AppliedSet {
	return &AppliedSet{ids: make(map[string]struct{})}
}

// Apply records id. It reports false if id was already applied
func (s *AppliedSet) Apply(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *AppliedSet) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the applied ids in sorted order
func (s *AppliedSet) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s *AppliedSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
