package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the candidate corpus",
	Long:  `Load candidates from a JSON file and maintain the search indexes.`,
}

var corpusLoadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Load candidates from a JSON file",
	Long: `Replaces the corpus with the candidates in the given JSON file.

Candidates that arrive without an embedding vector are embedded with
the configured provider, then both search indexes are rebuilt.`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusLoad,
}

var corpusReindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search indexes",
	Long:  `Rebuilds the keyword and vector indexes from the stored corpus.`,
	RunE:  runCorpusReindex,
}

var corpusCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the corpus size",
	RunE:  runCorpusCount,
}

func init() {
	corpusCmd.AddCommand(corpusLoadCmd)
	corpusCmd.AddCommand(corpusReindexCmd)
	corpusCmd.AddCommand(corpusCountCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusLoad(cmd *cobra.Command, args []string) error {
	if candidateService == nil {
		return errors.New("candidate service not configured")
	}

	path := args[0]
	cmd.Printf("Loading corpus from %s...\n", path)

	count, err := candidateService.LoadCorpus(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("corpus load failed: %w", err)
	}

	cmd.Printf("Loaded %d candidates and rebuilt indexes.\n", count)
	return nil
}

func runCorpusReindex(cmd *cobra.Command, _ []string) error {
	if candidateService == nil {
		return errors.New("candidate service not configured")
	}

	cmd.Println("Rebuilding indexes...")

	if err := candidateService.Reindex(cmd.Context()); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	cmd.Println("Indexes rebuilt.")
	return nil
}

func runCorpusCount(cmd *cobra.Command, _ []string) error {
	if candidateService == nil {
		return errors.New("candidate service not configured")
	}

	count, err := candidateService.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count candidates: %w", err)
	}

	cmd.Printf("%d candidates in corpus.\n", count)
	return nil
}
