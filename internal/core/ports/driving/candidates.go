package driving

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// SavedView is a saved candidate joined with its full record.
type SavedView struct {
	// Candidate is the full candidate record.
	Candidate domain.Candidate

	// Saved carries the user's notes, tags and save time.
	Saved domain.SavedCandidate
}

// CandidateService manages the candidate corpus and saved candidates.
type CandidateService interface {
	// Get retrieves a candidate by ID.
	Get(ctx context.Context, id string) (*domain.Candidate, error)

	// Count returns the corpus size.
	Count(ctx context.Context) (int, error)

	// Save marks a candidate as saved for the user.
	Save(ctx context.Context, userID, candidateID, notes string, tags []string) error

	// Unsave removes a saved-candidate mark.
	Unsave(ctx context.Context, userID, candidateID string) error

	// Saved returns the user's saved candidates with full records,
	// newest first.
	Saved(ctx context.Context, userID string) ([]SavedView, error)

	// LoadCorpus replaces the corpus from a JSON file, embeds every
	// candidate and rebuilds the indexes. Returns how many candidates
	// were loaded.
	LoadCorpus(ctx context.Context, path string) (int, error)

	// Reindex rebuilds the indexes from the stored corpus without
	// reloading it.
	Reindex(ctx context.Context) error
}
