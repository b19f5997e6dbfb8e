package session

import (
	"fmt"
	"time"

	"resumeradar/internal/analysis"
	"resumeradar/internal/errors"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Session is the per-editor state kept between analysis runs
type Session struct {
	ID        string
	Persona   analysis.PersonaID
	CreatedAt time.Time
	Applied   *AppliedSet
	Latest    *Latest[analysis.Report]
}

// Apply records a suggestion id after checking it belongs to the latest report
func (s *Session) Apply(suggestionID string) (bool, error) {
	report, _, ok := s.Latest.Load()
	if !ok {
		return false, errors.NewValidationError(errors.ErrCodeUnknownSuggestion,
			"session has no analysis yet", nil).WithContext("session_id", s.ID)
	}
	for _, sg := range report.Suggestions {
		if sg.ID == suggestionID {
			return s.Applied.Apply(suggestionID), nil
		}
	}
	return false, errors.NewValidationError(errors.ErrCodeUnknownSuggestion,
		fmt.Sprintf("suggestion %q is not part of the latest report", suggestionID), nil).
		WithContext("session_id", s.ID)
}

// Store holds a bounded number of sessions, evicting the least recently used
type Store struct {
	cache *lru.Cache[string, *Session]
	now   func() time.Time
}

// NewStore creates a store holding at most size sessions
func NewStore(size int) (*Store, error) {
	cache, err := lru.New[string, *Session](size)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"invalid session store size", err).WithContext("size", size)
	}
	return &Store{cache: cache, now: time.Now}, nil
}

// Create starts a new session with a random id
func (st *Store) Create(persona analysis.PersonaID) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Persona:   persona,
		CreatedAt: st.now(),
		Applied:   NewAppliedSet(),
		Latest:    &Latest[analysis.Report]{},
	}
	st.cache.Add(s.ID, s)
	return s
}

// Get returns the session with id
func (st *Store) Get(id string) (*Session, error) {
	if s, ok := st.cache.Get(id); ok {
		return s, nil
	}
	return nil, errors.NewValidationError(errors.ErrCodeSessionNotFound,
		"session not found", nil).WithContext("session_id", id)
}

func (st *Store) Len() int {
	return st.cache.Len()
}
