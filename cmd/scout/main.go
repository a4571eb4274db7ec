package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/talentbase-labs/scout-cli/internal/adapters/driving/cli"
)

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
