package store

import (
	"errors"
	"sync"
	"time"

	"github.com/RisaRezaei/temperature-timeseries/internal/extract"
)

var (
	// ErrNotFound is returned when no run matches a lookup.
	ErrNotFound = errors.New("no extraction run found")
)

// MemoryStore is a concurrency-safe in-memory implementation of the run
// store. Runs are kept newest-last with optional count and age retention.
type MemoryStore struct {
	mu sync.RWMutex

	runs []extract.Run
	byID map[string]int

	// retention configuration
	maxRuns int           // max number of retained runs (0 = unlimited)
	maxAge  time.Duration // max age of retained runs (0 = unlimited)
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxRuns is <= 0, it is treated as unlimited.
func NewMemoryStore(maxRuns int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]int),
		maxRuns: maxRuns,
		maxAge:  maxAge,
	}
}

// SaveRun inserts or updates a run and enforces retention. Updating an
// existing run (state transitions of an in-flight extraction) keeps its slot.
func (s *MemoryStore) SaveRun(run extract.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byID[run.ID]; ok {
		s.runs[i] = run
		return
	}

	s.runs = append(s.runs, run)
	s.byID[run.ID] = len(s.runs) - 1

	// Enforce retention by count.
	if s.maxRuns > 0 && len(s.runs) > s.maxRuns {
		s.trim(len(s.runs) - s.maxRuns)
	}

	// Enforce retention by age. In-flight runs are never evicted by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.runs); i++ {
			r := s.runs[i]
			if r.State == extract.RunRunning || !r.StartedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(s.runs) {
			s.trim(i)
		}
	}
}

// trim drops the oldest n runs. Caller holds the lock.
func (s *MemoryStore) trim(n int) {
	for _, r := range s.runs[:n] {
		delete(s.byID, r.ID)
	}
	s.runs = append([]extract.Run(nil), s.runs[n:]...)
	for i, r := range s.runs {
		s.byID[r.ID] = i
	}
}

// GetRun returns the run with the given ID.
func (s *MemoryStore) GetRun(id string) (extract.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return extract.Run{}, ErrNotFound
	}
	return s.runs[i], nil
}

// Latest returns the most recently started run.
func (s *MemoryStore) Latest() (extract.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return extract.Run{}, ErrNotFound
	}
	return s.runs[len(s.runs)-1], nil
}

// List returns up to limit runs, newest first. limit <= 0 returns all.
func (s *MemoryStore) List(limit int) []extract.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.runs)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]extract.Run, 0, n)
	for i := len(s.runs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.runs[i])
	}
	return out
}
