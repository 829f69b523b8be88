// Package main provides the entry point for the GitCompass HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gitcompass",
	Short: "GitCompass HTTP API server",
	Long:  "GitCompass recommends open-source repositories matching a user's skills and generates step-by-step contribution guides via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
