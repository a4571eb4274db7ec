package domain

import "time"

// DefaultUserID is the user attributed to activity when no user is
// named. The CLI always runs as this user.
const DefaultUserID = "default"

// SearchRecord is one logged search. Records back the behavior
// snapshot's query window and the activity statistics.
type SearchRecord struct {
	// ID uniquely identifies the record.
	ID string

	// UserID is the user who searched.
	UserID string

	// Query is the raw query text.
	Query string

	// Filters are the merged constraints the search ran with.
	Filters Filters

	// Strategy is the retrieval strategy used.
	Strategy RetrievalStrategy

	// ResultCount is the size of the fused, filtered pool.
	ResultCount int

	// TopResultIDs are the best-ranked candidate ids, at most ten.
	TopResultIDs []string

	// CreatedAt is when the search ran.
	CreatedAt time.Time
}

// SavedCandidate is a bookmark linking a user to a candidate.
type SavedCandidate struct {
	// UserID is the user who saved the candidate.
	UserID string

	// CandidateID is the saved candidate.
	CandidateID string

	// Notes is free-form text attached by the user.
	Notes string

	// Tags are user labels attached to the bookmark.
	Tags []string

	// SavedAt is when the bookmark was created.
	SavedAt time.Time
}

// SearchHistoryPage is one page of a user's search history.
type SearchHistoryPage struct {
	// Records are the page's history rows, newest first.
	Records []SearchRecord

	// Count is the number of rows on this page.
	Count int

	// TotalCount is the user's total history size.
	TotalCount int

	// Page is the 1-based page number.
	Page int

	// Limit is the page size.
	Limit int

	// TotalPages is the number of pages available.
	TotalPages int
}

// DayActivity is one day's search count.
type DayActivity struct {
	// Date is the day in YYYY-MM-DD form.
	Date string

	// Count is the number of searches that day.
	Count int
}

// SearchStats summarises a user's recent search activity. Computed on
// demand over the newest records; rendering belongs to external
// dashboards.
type SearchStats struct {
	// TotalSearches is the user's all-time search count.
	TotalSearches int

	// SearchesLast30Days counts searches in the last thirty days.
	SearchesLast30Days int

	// SearchesLast7Days counts searches in the last seven days.
	SearchesLast7Days int

	// SavedCandidates is the current number of bookmarks.
	SavedCandidates int

	// HighQualitySearches counts searches that returned five or more
	// results.
	HighQualitySearches int

	// AvgResultsPerSearch is the mean pool size, one decimal.
	AvgResultsPerSearch float64

	// MostActiveDay is the weekday with the most searches, or "N/A".
	MostActiveDay string

	// MostSearchedRole is the role keyword seen most in queries,
	// or "N/A".
	MostSearchedRole string

	// MostMentionedTool is the tool keyword seen most in queries,
	// or "N/A".
	MostMentionedTool string

	// ActivityByDay is the per-day search count, ascending by date.
	ActivityByDay []DayActivity
}
