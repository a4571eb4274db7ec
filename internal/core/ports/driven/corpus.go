package driven

import (
	"context"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

// CorpusSnapshot bundles the immutable index handles over one corpus
// generation. A retrieval takes a snapshot once and uses both handles
// from it, so the lexical and semantic legs always rank the same
// corpus even if a reload lands mid-search.
type CorpusSnapshot struct {
	// Lexical is the keyword index over this generation.
	Lexical LexicalIndex

	// Vector is the similarity index over this generation.
	Vector VectorIndex

	// Candidates maps candidate ID to full record for this
	// generation. Shared by both legs for hydrating hits.
	Candidates map[string]*domain.Candidate

	// Count is the number of candidates in this generation.
	Count int
}

// Candidate returns the candidate for an ID, or nil if the ID is not
// part of this generation.
func (s CorpusSnapshot) Candidate(id string) *domain.Candidate {
	return s.Candidates[id]
}

// CorpusProvider yields the current corpus snapshot. Implementations
// swap the whole snapshot atomically when the corpus changes; handed-out
// snapshots stay valid and keep answering from their own generation.
type CorpusProvider interface {
	// Snapshot returns the current immutable snapshot.
	Snapshot() CorpusSnapshot

	// Refresh rebuilds the snapshot from the candidate store.
	Refresh(ctx context.Context) error
}
