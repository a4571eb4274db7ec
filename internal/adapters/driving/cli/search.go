package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

var (
	searchLimit    int
	searchPage     int
	searchTopK     int
	searchStrategy string
	searchUser     string
	searchJSON     bool
	searchRemote   bool
	searchRole     string
	searchTools    []string
	searchMinExp   int
	searchMaxExp   int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the candidate corpus",
	Long: `Runs a recruiter query against the candidate corpus.

The query is interpreted for structured filters first (role, remote,
tools, experience), then run through keyword (BM25) and semantic
retrieval; the hybrid strategy fuses both rankings. Explicit flags
override anything extracted from the query text.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "results per page (default from settings)")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "1-based page number")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "ranked pool size before pagination")
	searchCmd.Flags().StringVarP(&searchStrategy, "strategy", "s", "", "retrieval strategy: hybrid, lexical or semantic")
	searchCmd.Flags().StringVar(&searchUser, "user", "", "user id for history logging")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchRemote, "remote", false, "only remote candidates")
	searchCmd.Flags().StringVar(&searchRole, "role", "", "required role")
	searchCmd.Flags().StringSliceVar(&searchTools, "tool", nil, "required tool (repeatable)")
	searchCmd.Flags().IntVar(&searchMinExp, "min-exp", 0, "minimum years of experience")
	searchCmd.Flags().IntVar(&searchMaxExp, "max-exp", 0, "maximum years of experience")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		UserID:   searchUser,
		Strategy: domain.RetrievalStrategy(searchStrategy),
		TopK:     searchTopK,
		Page:     searchPage,
		Limit:    searchLimit,
		Filters:  searchFilterFlags(cmd),
	}

	response, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, response)
	}

	return outputSearchTable(cmd, response)
}

// searchFilterFlags collects the explicit filter flags. A flag left at
// its default stays unset, so "--remote absent" means no preference
// rather than "on-site only".
func searchFilterFlags(cmd *cobra.Command) domain.Filters {
	filters := domain.Filters{
		Role:  searchRole,
		Tools: searchTools,
	}
	if cmd.Flags().Changed("remote") {
		remote := searchRemote
		filters.Remote = &remote
	}
	if cmd.Flags().Changed("min-exp") {
		minExp := searchMinExp
		filters.MinExperienceYears = &minExp
	}
	if cmd.Flags().Changed("max-exp") {
		maxExp := searchMaxExp
		filters.MaxExperienceYears = &maxExp
	}
	return filters
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, response *domain.SearchResponse) error {
	if response.TotalCount == 0 {
		cmd.Println("No candidates found.")
		return nil
	}

	cmd.Printf("Results for %q (%s):\n\n", response.Query, response.Strategy)
	for i := range response.Results {
		r := &response.Results[i]

		headline := r.Candidate.Name
		if r.Candidate.Role != "" {
			headline += " - " + r.Candidate.Role
		}
		if r.Candidate.CompanyName != "" {
			headline += ", " + r.Candidate.CompanyName
		}

		cmd.Printf("  [%d] %s\n", r.Rank, headline)
		cmd.Printf("      Match: %s (%.4f)\n", r.Label, r.Score)
		for _, reason := range r.Reasons {
			cmd.Printf("      - %s\n", reason)
		}
		cmd.Println()
	}

	cmd.Printf("Page %d/%d (%d of %d candidates)\n",
		response.Page, response.TotalPages, response.Count, response.TotalCount)

	if !response.Filters.IsZero() {
		cmd.Printf("Filters: %s\n", describeFilters(response.Filters))
	}

	return nil
}

// describeFilters renders the applied constraints on one line.
func describeFilters(f domain.Filters) string {
	var parts []string
	if f.Role != "" {
		parts = append(parts, "role="+f.Role)
	}
	if f.Remote != nil {
		if *f.Remote {
			parts = append(parts, "remote")
		} else {
			parts = append(parts, "on-site")
		}
	}
	if len(f.Tools) > 0 {
		parts = append(parts, "tools="+strings.Join(f.Tools, ","))
	}
	if f.MinExperienceYears != nil {
		parts = append(parts, fmt.Sprintf("min-exp=%d", *f.MinExperienceYears))
	}
	if f.MaxExperienceYears != nil {
		parts = append(parts, fmt.Sprintf("max-exp=%d", *f.MaxExperienceYears))
	}
	if f.MinTeamSize != nil {
		parts = append(parts, fmt.Sprintf("min-team=%d", *f.MinTeamSize))
	}
	if f.MaxTeamSize != nil {
		parts = append(parts, fmt.Sprintf("max-team=%d", *f.MaxTeamSize))
	}
	if len(f.CompanySizes) > 0 {
		parts = append(parts, "company-size="+strings.Join(f.CompanySizes, ","))
	}
	return strings.Join(parts, " ")
}
