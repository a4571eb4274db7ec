package domain

// ExpandedQuery is a raw query after normalisation and synonym
// expansion. Expansion appends alternate terms after the originals so
// the literal query is never lost.
type ExpandedQuery struct {
	// Original is the query exactly as the caller typed it.
	Original string

	// Normalized is the lowercased, punctuation-stripped form.
	Normalized string

	// Expanded is the normalised form with synonyms appended.
	Expanded string

	// Terms are the unique tokens of Expanded, in first-seen order.
	Terms []string
}

// SearchOptions configures a search request.
type SearchOptions struct {
	// UserID identifies the searching user for history logging.
	// Empty means the default local user.
	UserID string

	// Filters are explicit constraints that override anything
	// extracted from the query text, field by field.
	Filters Filters

	// Strategy selects the retrieval strategy. Zero value means
	// StrategyHybrid.
	Strategy RetrievalStrategy

	// TopK is the size of the ranked candidate pool fetched before
	// pagination. Defaults to 50.
	TopK int

	// Page is the 1-based page number. Defaults to 1.
	Page int

	// Limit is the page size. Defaults to 20.
	Limit int
}

// SearchResult is a single ranked match.
type SearchResult struct {
	// Candidate is the matched person.
	Candidate Candidate

	// LexicalRank is the 1-based position in the keyword ranking,
	// or 0 if the keyword retriever did not return this candidate.
	LexicalRank int

	// SemanticRank is the 1-based position in the embedding ranking,
	// or 0 if the semantic retriever did not return this candidate.
	SemanticRank int

	// Score is the fused reciprocal-rank score.
	Score float64

	// Rank is the 1-based position in the final fused order.
	Rank int

	// Reasons explains the match in priority order, at most five.
	Reasons []string

	// Label is the quality band derived from Score.
	Label MatchLabel
}

// SearchResponse is the full answer to a search request.
type SearchResponse struct {
	// Query is the original query text.
	Query string

	// ExpandedQuery is the synonym-expanded query text used for
	// retrieval.
	ExpandedQuery string

	// Filters are the merged (extracted + explicit) constraints that
	// were applied.
	Filters Filters

	// ExtractedFilters are the constraints recovered from the query
	// text alone, before explicit overrides.
	ExtractedFilters Filters

	// Results is the requested page of the fused ranking.
	Results []SearchResult

	// Count is the number of results on this page.
	Count int

	// TotalCount is the size of the whole fused, filtered pool.
	TotalCount int

	// Page is the 1-based page number returned.
	Page int

	// Limit is the page size used.
	Limit int

	// TotalPages is the number of pages in the pool.
	TotalPages int

	// Strategy is the retrieval strategy that produced the ranking.
	Strategy RetrievalStrategy

	// TookMS is the server-side retrieval time in milliseconds.
	TookMS float64
}
