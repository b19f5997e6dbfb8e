package session

import (
	"math"
	"sync"
)

// Generation tags one analysis run. Later runs have larger generations
type Generation uint64

// MaxGeneration is the largest generation a caller may supply. The space above it is
// left for Begin so the counter never wraps
const MaxGeneration Generation = math.MaxUint64 / 2

// Latest keeps the most recent result of a sequence of runs that may finish out of order
// A result is kept only if its generation is the newest one issued when it is committed
type Latest[T any] struct {
	mu        sync.Mutex
	issued    Generation
	committed Generation
	value     T
	has       bool
}

// Begin issues the next generation
func (l *Latest[T]) Begin() Generation {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.issued < math.MaxUint64 {
		l.issued++
	}
	return l.issued
}

// Observe raises the issued counter to gen when a caller supplies its own generation
// Lower or equal values leave the counter unchanged. It reports false, and ignores gen,
// when gen is zero or above MaxGeneration
func (l *Latest[T]) Observe(gen Generation) bool {
	if gen == 0 || gen > MaxGeneration {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen > l.issued {
		l.issued = gen
	}
	return true
}

// Commit stores value if gen is still the latest issued generation
// It reports false when the result was superseded and discarded
func (l *Latest[T]) Commit(gen Generation, value T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.issued || gen <= l.committed {
		return false
	}
	l.committed = gen
	l.value = value
	l.has = true
	return true
}

// Current reports whether gen is still the latest issued generation
func (l *Latest[T]) Current(gen Generation) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen == l.issued
}

// Load returns the last committed value and its generation
func (l *Latest[T]) Load() (T, Generation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.committed, l.has
}
