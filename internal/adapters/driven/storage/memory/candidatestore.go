package memory

import (
	"context"
	"sync"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Ensure CandidateStore implements the interface.
var _ driven.CandidateStore = (*CandidateStore)(nil)

// CandidateStore is an in-memory implementation of
// driven.CandidateStore. List preserves insertion order, matching the
// ordering contract of the SQLite store.
type CandidateStore struct {
	mu         sync.RWMutex
	candidates map[string]domain.Candidate
	order      []string
}

// NewCandidateStore creates a new in-memory candidate store.
func NewCandidateStore() *CandidateStore {
	return &CandidateStore{
		candidates: make(map[string]domain.Candidate),
	}
}

// Save stores or updates a candidate.
func (s *CandidateStore) Save(_ context.Context, candidate *domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(*candidate)
	return nil
}

// SaveBatch stores or updates many candidates at once.
func (s *CandidateStore) SaveBatch(_ context.Context, candidates []domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, candidate := range candidates {
		s.saveLocked(candidate)
	}
	return nil
}

func (s *CandidateStore) saveLocked(candidate domain.Candidate) {
	if _, exists := s.candidates[candidate.ID]; !exists {
		s.order = append(s.order, candidate.ID)
	}
	s.candidates[candidate.ID] = candidate
}

// Get retrieves a candidate by ID.
func (s *CandidateStore) Get(_ context.Context, id string) (*domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	candidate, ok := s.candidates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &candidate, nil
}

// List returns every candidate in insertion order.
func (s *CandidateStore) List(_ context.Context) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Candidate, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.candidates[id])
	}
	return out, nil
}

// Count returns the number of stored candidates.
func (s *CandidateStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.candidates), nil
}

// Delete removes a candidate.
func (s *CandidateStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.candidates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.candidates, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReplaceAll swaps the whole corpus for a new one.
func (s *CandidateStore) ReplaceAll(_ context.Context, candidates []domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = make(map[string]domain.Candidate, len(candidates))
	s.order = s.order[:0]
	for _, candidate := range candidates {
		s.saveLocked(candidate)
	}
	return nil
}
