package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	historyPage  int
	historyLimit int
	historyUser  string
	historyJSON  bool
	historyYes   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage search history",
	Long:  `List, delete or clear past searches.`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past searches",
	RunE:  runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [record-id]",
	Short: "Delete a single search record",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all search history",
	RunE:  runHistoryClear,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show search activity analytics",
	Long: `Summarises your recent search activity: volume, saved candidates,
most active weekday and the roles and tools you search for most.`,
	RunE: runStats,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyUser, "user", "", "user id")
	historyCmd.Flags().IntVar(&historyPage, "page", 1, "1-based page number")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "records per page")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyListCmd.Flags().IntVar(&historyPage, "page", 1, "1-based page number")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "records per page")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)

	statsCmd.Flags().StringVar(&historyUser, "user", "", "user id")
	statsCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	page, err := historyService.List(cmd.Context(), historyUser, historyPage, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, page)
	}

	if page.TotalCount == 0 {
		cmd.Println("No search history.")
		return nil
	}

	cmd.Println("Search history:")
	cmd.Println()
	for i := range page.Records {
		rec := &page.Records[i]
		cmd.Printf("  %s  %q\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.Query)
		cmd.Printf("      id %s, %s, %d results\n", rec.ID, rec.Strategy, rec.ResultCount)
	}
	cmd.Println()
	cmd.Printf("Page %d/%d (%d searches total)\n", page.Page, page.TotalPages, page.TotalCount)

	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	recordID := args[0]
	if err := historyService.Delete(cmd.Context(), historyUser, recordID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	cmd.Printf("Deleted search record %s.\n", recordID)
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if !historyYes {
		cmd.Print("Delete ALL search history? [y/N]: ")
		var answer string
		fmt.Fscanln(cmd.InOrStdin(), &answer) //nolint:errcheck // empty answer means no
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	removed, err := historyService.Clear(cmd.Context(), historyUser)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	cmd.Printf("Removed %d search records.\n", removed)
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	stats, err := historyService.Stats(cmd.Context(), historyUser)
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, stats)
	}

	cmd.Println("Search Activity")
	cmd.Println("===============")
	cmd.Println()
	cmd.Printf("  Total searches:       %d\n", stats.TotalSearches)
	cmd.Printf("  Last 30 days:         %d\n", stats.SearchesLast30Days)
	cmd.Printf("  Last 7 days:          %d\n", stats.SearchesLast7Days)
	cmd.Printf("  Saved candidates:     %d\n", stats.SavedCandidates)
	cmd.Printf("  High-quality (>=5):   %d\n", stats.HighQualitySearches)
	cmd.Printf("  Avg results/search:   %.1f\n", stats.AvgResultsPerSearch)
	cmd.Printf("  Most active day:      %s\n", stats.MostActiveDay)
	cmd.Printf("  Most searched role:   %s\n", stats.MostSearchedRole)
	cmd.Printf("  Most mentioned tool:  %s\n", stats.MostMentionedTool)

	if len(stats.ActivityByDay) > 0 {
		cmd.Println()
		cmd.Println("  Activity by day:")
		for _, day := range stats.ActivityByDay {
			cmd.Printf("    %s  %s\n", day.Date, strings.Repeat("#", day.Count))
		}
	}

	return nil
}
