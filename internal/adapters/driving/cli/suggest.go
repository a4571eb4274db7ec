package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	suggestLimit int
	suggestUser  string
	suggestJSON  bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest queries from your recent activity",
	Long: `Suggests ready-to-run queries based on recent searches and saved
candidates. New users with little history get a generic starter set.`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "number of suggestions (default from settings)")
	suggestCmd.Flags().StringVar(&suggestUser, "user", "", "user id")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output suggestions as JSON")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	if recommendService == nil {
		return errors.New("recommendation service not configured")
	}

	suggestions, err := recommendService.Suggest(cmd.Context(), suggestUser, suggestLimit)
	if err != nil {
		return fmt.Errorf("suggest failed: %w", err)
	}

	if suggestJSON {
		return outputJSON(cmd, suggestions)
	}

	if suggestions.Personalized {
		cmd.Printf("Suggestions (from %d searches, %d saved):\n\n",
			suggestions.BasedOn.Searches, suggestions.BasedOn.Saved)
	} else {
		cmd.Println("Suggestions to get you started:")
		cmd.Println()
	}

	for i, s := range suggestions.Suggestions {
		cmd.Printf("  %d. %s\n", i+1, s)
	}
	cmd.Println()
	cmd.Println(`Run one with: scout search "<suggestion>"`)

	return nil
}
