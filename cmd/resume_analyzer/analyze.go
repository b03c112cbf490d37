package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Analyze one resume file and print the result as JSON",
	Long:  "Runs the full extraction pipeline against a single resume file (pdf, docx or txt) and writes the analysis to stdout. Optionally generates interview questions alongside.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeOllamaURL  string
	analyzeModel      string
	analyzeQuestions  bool
	analyzeTechnical  int
	analyzeBehavioral int
	analyzeDifficulty string
	analyzeRoadmap    bool
	analyzeVerbose    bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCommand.Flags().StringVar(&analyzeOllamaURL, "ollama-url", "", "Ollama base URL (defaults to OLLAMA_URL env var)")
	analyzeCommand.Flags().StringVarP(&analyzeModel, "model", "m", "", "Default model name (defaults to OLLAMA_MODEL env var)")
	analyzeCommand.Flags().BoolVarP(&analyzeQuestions, "questions", "q", false, "Also generate interview questions")
	analyzeCommand.Flags().IntVar(&analyzeTechnical, "technical", 5, "Technical question count (with --questions)")
	analyzeCommand.Flags().IntVar(&analyzeBehavioral, "behavioral", 3, "Behavioral question count (with --questions)")
	analyzeCommand.Flags().StringVar(&analyzeDifficulty, "difficulty", "Mixed", "Question difficulty: Beginner, Intermediate, Advanced or Mixed")
	analyzeCommand.Flags().BoolVarP(&analyzeRoadmap, "roadmap", "r", false, "Also generate a career roadmap")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(analyzeConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("ollama-url") {
		cfg.OllamaURL = analyzeOllamaURL
	}
	if cmd.Flags().Changed("model") {
		cfg.DefaultModel = analyzeModel
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	comp, err := buildComponents(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = comp.log.Sync() }()

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	doc, err := ingestion.ExtractText(path, data)
	if err != nil {
		return err
	}

	ctx := context.Background()
	analysis, err := comp.analyzer.AnalyzeResume(ctx, doc.Text, path)
	if err != nil {
		return err
	}

	output := map[string]any{"analysis": analysis}

	if analyzeQuestions {
		questions, err := comp.questions.Generate(ctx, analysis, types.QuestionConfig{
			TechnicalCount:  analyzeTechnical,
			BehavioralCount: analyzeBehavioral,
			Difficulty:      analyzeDifficulty,
		})
		if err != nil {
			return err
		}
		output["questions"] = questions
	}

	if analyzeRoadmap {
		roadmap, err := comp.roadmaps.Generate(ctx, analysis)
		if err != nil {
			return err
		}
		output["roadmap"] = roadmap
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
