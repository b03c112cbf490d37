// Package main provides the entry point for the resume analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "LLM-backed resume analyzer",
	Long:  "Resume Analyzer extracts structured candidate profiles from resumes via a local Ollama runtime, then generates interview questions and career roadmaps from them.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
