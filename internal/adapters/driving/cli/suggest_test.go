package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCmd_Use(t *testing.T) {
	assert.Equal(t, "suggest", suggestCmd.Use)
}

func TestSuggestCmd_Short(t *testing.T) {
	assert.Equal(t, "Suggest queries from your recent activity", suggestCmd.Short)
}

func TestSuggestCmd_HasLimitFlag(t *testing.T) {
	flag := suggestCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestSuggestCmd_ColdStart(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"suggest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	// A fresh history means generic starter suggestions.
	assert.Contains(t, buf.String(), "Suggestions to get you started:")
	assert.Contains(t, buf.String(), "1.")
	assert.Contains(t, buf.String(), `Run one with: scout search "<suggestion>"`)
}

func TestSuggestCmd_PersonalizedAfterSearches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	// Build up enough history for personalised suggestions.
	for _, query := range []string{
		"product manager", "product manager with jira",
		"remote product manager",
	} {
		rootCmd.SetArgs([]string{"search", query})
		require.NoError(t, rootCmd.Execute())
	}

	buf.Reset()
	rootCmd.SetArgs([]string{"suggest"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Suggestions (from 3 searches,")
}

func TestSuggestCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"suggest", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		suggestJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Suggestions\"")
	assert.Contains(t, buf.String(), "\"Personalized\"")
}

func TestSuggestCmd_ServiceNotConfigured(t *testing.T) {
	oldService := recommendService
	recommendService = nil
	defer func() {
		recommendService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"suggest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "recommendation service not configured")
}
