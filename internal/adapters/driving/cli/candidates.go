package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
)

var (
	saveNotes string
	saveTags  []string
	savedUser string
	savedJSON bool
)

var saveCmd = &cobra.Command{
	Use:   "save [candidate-id]",
	Short: "Save a candidate",
	Long: `Bookmarks a candidate. Saved candidates feed query suggestions and
can carry notes and tags. Saving again updates the notes.`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

var unsaveCmd = &cobra.Command{
	Use:   "unsave [candidate-id]",
	Short: "Remove a saved candidate",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnsave,
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List saved candidates",
	RunE:  runSaved,
}

var candidateCmd = &cobra.Command{
	Use:   "candidate [candidate-id]",
	Short: "Show a candidate's full record",
	Args:  cobra.ExactArgs(1),
	RunE:  runCandidateShow,
}

func init() {
	saveCmd.Flags().StringVar(&saveNotes, "notes", "", "notes to store with the candidate")
	saveCmd.Flags().StringSliceVar(&saveTags, "tag", nil, "tag (repeatable)")
	saveCmd.Flags().StringVar(&savedUser, "user", "", "user id")
	unsaveCmd.Flags().StringVar(&savedUser, "user", "", "user id")
	savedCmd.Flags().StringVar(&savedUser, "user", "", "user id")
	savedCmd.Flags().BoolVar(&savedJSON, "json", false, "output as JSON")
	candidateCmd.Flags().BoolVar(&savedJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(unsaveCmd)
	rootCmd.AddCommand(savedCmd)
	rootCmd.AddCommand(candidateCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	if candidateService == nil {
		return errors.New("candidate service not configured")
	}

	candidateID := args[0]
	if err := candidateService.Save(cmd.Context(), savedUser, candidateID, saveNotes, saveTags); err != nil {
		return fmt.Errorf("failed to save candidate: %w", err)
	}

	cmd.Printf("Saved candidate %s.\n", candidateID)
	return nil
}

func runUnsave(cmd *cobra.Command, args []string) error {
	if candidateService == nil {
		return errors.New("candidate service not configured")
	}

	candidateID := args[0]
	if err := candidateService.Unsave(cmd.Context(), savedUser, candidateID); err != nil {
		return fmt.Errorf("failed to unsave candidate: %w", err)
	}

	cmd.Printf("Removed candidate %s from saved.\n", candidateID)
	return nil
}

func runSaved(cmd *cobra.Command, _ []string) error {
	if candidateService == nil {
		return errors.New("candidate service not configured")
	}

	views, err := candidateService.Saved(cmd.Context(), savedUser)
	if err != nil {
		return fmt.Errorf("failed to list saved candidates: %w", err)
	}

	if savedJSON {
		return outputJSON(cmd, views)
	}

	if len(views) == 0 {
		cmd.Println("No saved candidates.")
		return nil
	}

	cmd.Println("Saved candidates:")
	cmd.Println()
	for i := range views {
		v := &views[i]
		cmd.Printf("  %s - %s", v.Candidate.Name, v.Candidate.Role)
		if v.Candidate.CompanyName != "" {
			cmd.Printf(", %s", v.Candidate.CompanyName)
		}
		cmd.Println()
		cmd.Printf("      id %s, saved %s\n", v.Candidate.ID, v.Saved.SavedAt.Format("2006-01-02"))
		if v.Saved.Notes != "" {
			cmd.Printf("      Notes: %s\n", v.Saved.Notes)
		}
		if len(v.Saved.Tags) > 0 {
			cmd.Printf("      Tags: %s\n", strings.Join(v.Saved.Tags, ", "))
		}
	}
	cmd.Println()
	cmd.Printf("Total: %d saved\n", len(views))

	return nil
}

func runCandidateShow(cmd *cobra.Command, args []string) error {
	if candidateService == nil {
		return errors.New("candidate service not configured")
	}

	candidate, err := candidateService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get candidate: %w", err)
	}

	if savedJSON {
		return outputJSON(cmd, candidate)
	}

	printCandidate(cmd, candidate)
	return nil
}

func printCandidate(cmd *cobra.Command, c *domain.Candidate) {
	cmd.Printf("Candidate: %s\n\n", c.ID)
	cmd.Printf("  Name:        %s\n", c.Name)
	cmd.Printf("  Role:        %s\n", c.Role)
	if c.CompanyName != "" {
		cmd.Printf("  Company:     %s (%s)\n", c.CompanyName, c.CompanySize)
	}
	if c.Industry != "" {
		cmd.Printf("  Industry:    %s\n", c.Industry)
	}
	if c.Location != "" {
		cmd.Printf("  Location:    %s\n", c.Location)
	}
	cmd.Printf("  Remote:      %v\n", c.Remote)
	if c.ExperienceYears > 0 {
		cmd.Printf("  Experience:  %d years\n", c.ExperienceYears)
	}
	if c.TeamSize > 0 {
		cmd.Printf("  Team size:   %d\n", c.TeamSize)
	}
	if len(c.Tools) > 0 {
		cmd.Printf("  Tools:       %s\n", strings.Join(c.Tools, ", "))
	}
	if len(c.Skills) > 0 {
		cmd.Printf("  Skills:      %s\n", strings.Join(c.Skills, ", "))
	}
	if c.Description != "" {
		cmd.Printf("\n  %s\n", c.Description)
	}
}
