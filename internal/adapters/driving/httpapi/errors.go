package httpapi

import "errors"

// Sentinel errors for the HTTP API adapter.
var (
	// ErrMissingSearchService is returned when the search service port is not set.
	ErrMissingSearchService = errors.New("httpapi: search service is required")

	// ErrMissingCandidateService is returned when the candidate service port is not set.
	ErrMissingCandidateService = errors.New("httpapi: candidate service is required")

	// ErrMissingHistoryService is returned when the history service port is not set.
	ErrMissingHistoryService = errors.New("httpapi: history service is required")

	// ErrMissingRecommendService is returned when the recommendation service port is not set.
	ErrMissingRecommendService = errors.New("httpapi: recommendation service is required")
)
