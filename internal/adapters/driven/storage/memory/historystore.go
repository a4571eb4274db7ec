package memory

import (
	"context"
	"sync"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Listings return newest first, matching the SQLite store.
type HistoryStore struct {
	mu       sync.RWMutex
	searches map[string][]domain.SearchRecord   // userID -> append order (oldest first)
	saved    map[string][]domain.SavedCandidate // userID -> append order (oldest first)
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		searches: make(map[string][]domain.SearchRecord),
		saved:    make(map[string][]domain.SavedCandidate),
	}
}

// LogSearch appends a search record.
func (s *HistoryStore) LogSearch(_ context.Context, record *domain.SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches[record.UserID] = append(s.searches[record.UserID], *record)
	return nil
}

// RecentQueries returns the user's most recent query strings, newest
// first.
func (s *HistoryStore) RecentQueries(_ context.Context, userID string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.searches[userID]
	if limit <= 0 || len(records) == 0 {
		return nil, nil
	}

	queries := make([]string, 0, limit)
	for i := len(records) - 1; i >= 0 && len(queries) < limit; i-- {
		queries = append(queries, records[i].Query)
	}
	return queries, nil
}

// ListSearches returns one page of search records, newest first, plus
// the total count.
func (s *HistoryStore) ListSearches(_ context.Context, userID string, offset, limit int) ([]domain.SearchRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.searches[userID]
	total := len(records)
	if offset < 0 {
		offset = 0
	}
	if offset >= total || limit <= 0 {
		return nil, total, nil
	}

	page := make([]domain.SearchRecord, 0, limit)
	for i := total - 1 - offset; i >= 0 && len(page) < limit; i-- {
		page = append(page, records[i])
	}
	return page, total, nil
}

// AllSearches returns every search record for the user, newest first.
func (s *HistoryStore) AllSearches(_ context.Context, userID string) ([]domain.SearchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.searches[userID]
	out := make([]domain.SearchRecord, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

// DeleteSearch removes a single search record.
func (s *HistoryStore) DeleteSearch(_ context.Context, userID, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.searches[userID]
	for i, record := range records {
		if record.ID == recordID {
			s.searches[userID] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ClearSearches removes all of the user's search records.
func (s *HistoryStore) ClearSearches(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.searches[userID])
	delete(s.searches, userID)
	return removed, nil
}

// SaveCandidate marks a candidate as saved for the user.
func (s *HistoryStore) SaveCandidate(_ context.Context, saved *domain.SavedCandidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.saved[saved.UserID]
	for i, entry := range entries {
		if entry.CandidateID == saved.CandidateID {
			entries[i] = *saved
			return nil
		}
	}
	s.saved[saved.UserID] = append(entries, *saved)
	return nil
}

// UnsaveCandidate removes a saved-candidate mark.
func (s *HistoryStore) UnsaveCandidate(_ context.Context, userID, candidateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.saved[userID]
	for i, entry := range entries {
		if entry.CandidateID == candidateID {
			s.saved[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// SavedCandidates returns the user's saved candidates, newest first.
func (s *HistoryStore) SavedCandidates(_ context.Context, userID string) ([]domain.SavedCandidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.saved[userID]
	out := make([]domain.SavedCandidate, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// IsSaved reports whether the user has saved the candidate.
func (s *HistoryStore) IsSaved(_ context.Context, userID, candidateID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.saved[userID] {
		if entry.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}
