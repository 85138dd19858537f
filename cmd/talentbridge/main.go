// Package main provides the entry point for the TalentBridge server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentbridge",
	Short: "TalentBridge ATS scoring service",
	Long:  "TalentBridge scores resumes for ATS compatibility, optionally against a job description, and serves the job-board REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
