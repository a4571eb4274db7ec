package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchFailed indicates a search request failed as a whole.
	// A request never degrades to a single retrieval signal: a fused
	// label over one signal would misrepresent match quality, so any
	// retriever failure fails the request.
	ErrSearchFailed = errors.New("search failed")

	// ErrIndexUnavailable indicates the lexical index is not built.
	// Keyword retrieval is impossible without it.
	ErrIndexUnavailable = errors.New("lexical index unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// configured. Semantic similarity retrieval is impossible.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Query vectors cannot be produced without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrHistoryUnavailable indicates the interaction history store is
	// not configured. Recommendations and logging are disabled.
	ErrHistoryUnavailable = errors.New("history store unavailable")

	// ErrInvalidSetting indicates a settings value failed validation.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrConfigNotFound indicates a configuration key has no value.
	ErrConfigNotFound = errors.New("config key not found")

	// ErrRateLimited indicates an upstream API rate limit was hit.
	ErrRateLimited = errors.New("rate limited")
)
