package store

import (
	"slices"
	"sync"

	"github.com/joescharf/issueboard/internal/models"
)

// MemoryStore implements Store over an in-memory slice.
type MemoryStore struct {
	mu     sync.RWMutex
	issues []*models.Issue
}

// NewMemoryStore creates a store holding copies of seed, in seed order.
func NewMemoryStore(seed []models.Issue) *MemoryStore {
	issues := make([]*models.Issue, len(seed))
	for i := range seed {
		issue := seed[i]
		issues[i] = &issue
	}
	return &MemoryStore{issues: issues}
}

// List returns the current collection. The slice is the caller's; the issues are shared.
func (s *MemoryStore) List() []*models.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.issues)
}

// Get returns the issue with the given id.
func (s *MemoryStore) Get(id string) (*models.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.issues[i], true
	}
	return nil, false
}

func (s *MemoryStore) SetStatus(id string, status models.Status) bool {
	if !status.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 || s.issues[i].Status == status {
		return false
	}
	updated := *s.issues[i]
	updated.Status = status
	s.replace(i, &updated)
	return true
}

func (s *MemoryStore) ApplyUpdate(id string, patch models.IssuePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false
	}
	updated, changed := patch.Apply(*s.issues[i])
	if !changed {
		return false
	}
	s.replace(i, &updated)
	return true
}

// replace swaps in a new collection with one element changed. Callers hold mu.
func (s *MemoryStore) replace(i int, issue *models.Issue) {
	next := slices.Clone(s.issues)
	next[i] = issue
	s.issues = next
}

// index returns the position of id, or -1. Callers hold mu.
func (s *MemoryStore) index(id string) int {
	return slices.IndexFunc(s.issues, func(issue *models.Issue) bool {
		return issue.ID == id
	})
}
