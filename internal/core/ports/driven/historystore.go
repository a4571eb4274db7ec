package driven

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// HistoryStore persists search history and saved candidates.
// Backed by SQLite for durable storage, or in-memory for tests.
type HistoryStore interface {
	// LogSearch appends a search record.
	LogSearch(ctx context.Context, record *domain.SearchRecord) error

	// RecentQueries returns the user's most recent query strings,
	// newest first, at most limit entries.
	RecentQueries(ctx context.Context, userID string, limit int) ([]string, error)

	// ListSearches returns one page of the user's search records,
	// newest first, plus the total record count.
	ListSearches(ctx context.Context, userID string, offset, limit int) ([]domain.SearchRecord, int, error)

	// AllSearches returns every search record for the user, newest
	// first. Used for analytics aggregation.
	AllSearches(ctx context.Context, userID string) ([]domain.SearchRecord, error)

	// DeleteSearch removes a single search record.
	// Returns domain.ErrNotFound if the record does not exist.
	DeleteSearch(ctx context.Context, userID, recordID string) error

	// ClearSearches removes all of the user's search records and
	// returns how many were removed.
	ClearSearches(ctx context.Context, userID string) (int, error)

	// SaveCandidate marks a candidate as saved for the user.
	// Saving an already-saved candidate updates notes and tags.
	SaveCandidate(ctx context.Context, saved *domain.SavedCandidate) error

	// UnsaveCandidate removes a saved-candidate mark.
	// Returns domain.ErrNotFound if the candidate was not saved.
	UnsaveCandidate(ctx context.Context, userID, candidateID string) error

	// SavedCandidates returns the user's saved candidates, newest
	// first.
	SavedCandidates(ctx context.Context, userID string) ([]domain.SavedCandidate, error)

	// IsSaved reports whether the user has saved the candidate.
	IsSaved(ctx context.Context, userID, candidateID string) (bool, error)
}
