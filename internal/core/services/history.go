package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driving"
	"github.com/talentbase-labs/scout-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryPageSize is the history page size when none is given.
const defaultHistoryPageSize = 20

// statsWindow is how many of the newest records feed the aggregated
// statistics. Totals and day-range counts still cover everything.
const statsWindow = 100

// highQualityThreshold is the result count from which a search counts
// as high quality.
const highQualityThreshold = 5

// statsRoleVocabulary are the role keywords the analytics scan queries
// for, most specific first.
var statsRoleVocabulary = []string{
	"product manager", "designer", "developer", "engineer", "manager",
	"analyst", "researcher", "marketer", "sales", "recruiter",
}

// statsToolVocabulary are the tool keywords the analytics scan queries
// for.
var statsToolVocabulary = []string{
	"figma", "sketch", "adobe", "notion", "jira", "slack",
	"trello", "asana", "miro", "invision",
}

// HistoryService manages search history and usage analytics.
type HistoryService struct {
	history driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(history driven.HistoryStore) *HistoryService {
	return &HistoryService{history: history}
}

// List returns one page of the user's search records, newest first.
func (s *HistoryService) List(
	ctx context.Context, userID string, page, limit int,
) (*domain.SearchHistoryPage, error) {
	if userID == "" {
		userID = domain.DefaultUserID
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}

	offset := (page - 1) * limit
	records, total, err := s.history.ListSearches(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	if records == nil {
		records = []domain.SearchRecord{}
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &domain.SearchHistoryPage{
		Records:    records,
		Count:      len(records),
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Delete removes a single search record.
func (s *HistoryService) Delete(ctx context.Context, userID, recordID string) error {
	if userID == "" {
		userID = domain.DefaultUserID
	}
	if err := s.history.DeleteSearch(ctx, userID, recordID); err != nil {
		return fmt.Errorf("delete search: %w", err)
	}
	logger.Debug("Deleted search record %s", recordID)
	return nil
}

// Clear removes all of the user's search records and returns how many
// were removed.
func (s *HistoryService) Clear(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		userID = domain.DefaultUserID
	}
	removed, err := s.history.ClearSearches(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("clear searches: %w", err)
	}
	logger.Info("Cleared %d search records for %s", removed, userID)
	return removed, nil
}

// Stats aggregates the user's search activity. Heavier aggregations
// run over the newest statsWindow records only.
func (s *HistoryService) Stats(ctx context.Context, userID string) (*domain.SearchStats, error) {
	if userID == "" {
		userID = domain.DefaultUserID
	}

	all, err := s.history.AllSearches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load searches: %w", err)
	}
	saved, err := s.history.SavedCandidates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load saved candidates: %w", err)
	}

	stats := &domain.SearchStats{
		TotalSearches:     len(all),
		SavedCandidates:   len(saved),
		MostActiveDay:     "N/A",
		MostSearchedRole:  "N/A",
		MostMentionedTool: "N/A",
	}

	now := time.Now().UTC()
	cutoff30 := now.AddDate(0, 0, -30)
	cutoff7 := now.AddDate(0, 0, -7)
	for i := range all {
		if all[i].CreatedAt.After(cutoff30) {
			stats.SearchesLast30Days++
		}
		if all[i].CreatedAt.After(cutoff7) {
			stats.SearchesLast7Days++
		}
	}

	window := all
	if len(window) > statsWindow {
		window = window[:statsWindow]
	}
	if len(window) == 0 {
		stats.ActivityByDay = []domain.DayActivity{}
		return stats, nil
	}

	totalResults := 0
	dayCounts := make(map[string]int)
	var weekdayCounts [7]int
	for i := range window {
		rec := &window[i]
		if rec.ResultCount >= highQualityThreshold {
			stats.HighQualitySearches++
		}
		totalResults += rec.ResultCount
		when := rec.CreatedAt.UTC()
		dayCounts[when.Format("2006-01-02")]++
		weekdayCounts[when.Weekday()]++
	}

	stats.AvgResultsPerSearch = math.Round(float64(totalResults)/float64(len(window))*10) / 10

	// Strict maximum, so ties go to the earliest weekday.
	maxCount := 0
	for day := time.Sunday; day <= time.Saturday; day++ {
		if weekdayCounts[day] > maxCount {
			maxCount = weekdayCounts[day]
			stats.MostActiveDay = day.String()
		}
	}

	dates := make([]string, 0, len(dayCounts))
	for date := range dayCounts {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	stats.ActivityByDay = make([]domain.DayActivity, len(dates))
	for i, date := range dates {
		stats.ActivityByDay[i] = domain.DayActivity{Date: date, Count: dayCounts[date]}
	}

	if keyword := topKeyword(window, statsRoleVocabulary); keyword != "" {
		stats.MostSearchedRole = titleWords(keyword)
	}
	if keyword := topKeyword(window, statsToolVocabulary); keyword != "" {
		stats.MostMentionedTool = titleWords(keyword)
	}

	return stats, nil
}

// topKeyword returns the vocabulary keyword contained in the most
// queries, or empty when none appears. Ties keep vocabulary order.
func topKeyword(records []domain.SearchRecord, vocabulary []string) string {
	best := ""
	bestCount := 0
	for _, keyword := range vocabulary {
		count := 0
		for i := range records {
			if strings.Contains(strings.ToLower(records[i].Query), keyword) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = keyword
		}
	}
	return best
}

// titleWords uppercases the first letter of every word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
