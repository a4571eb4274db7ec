package driven

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// CandidateStore persists candidate records.
// Backed by SQLite for durable storage, or in-memory for tests.
type CandidateStore interface {
	// Save stores or updates a candidate.
	Save(ctx context.Context, candidate *domain.Candidate) error

	// SaveBatch stores or updates many candidates in one transaction.
	SaveBatch(ctx context.Context, candidates []domain.Candidate) error

	// Get retrieves a candidate by ID.
	// Returns domain.ErrNotFound if the candidate does not exist.
	Get(ctx context.Context, id string) (*domain.Candidate, error)

	// List returns every candidate, in insertion order.
	List(ctx context.Context) ([]domain.Candidate, error)

	// Count returns the number of stored candidates.
	Count(ctx context.Context) (int, error)

	// Delete removes a candidate.
	Delete(ctx context.Context, id string) error

	// ReplaceAll atomically swaps the whole corpus for a new one.
	// Used by corpus reloads so readers never see a half-loaded set.
	ReplaceAll(ctx context.Context, candidates []domain.Candidate) error
}
