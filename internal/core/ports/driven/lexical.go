package driven

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// LexicalIndex ranks candidates by keyword relevance.
// Backed by an in-memory BM25 index built over candidate profiles.
// Implementations are immutable once built; corpus changes produce a
// fresh index rather than mutating a live one.
type LexicalIndex interface {
	// Search ranks candidates against the query terms and returns the
	// best matches, highest score first. Candidates failing the
	// filters are dropped before the limit is applied, and candidates
	// with zero overlap never appear.
	Search(ctx context.Context, terms []string, limit int, filters domain.Filters) ([]LexicalHit, error)

	// Size returns the number of indexed candidates.
	Size() int
}

// LexicalHit represents one keyword ranking result.
type LexicalHit struct {
	// CandidateID is the matched candidate.
	CandidateID string

	// Score is the BM25 relevance score.
	Score float64
}
