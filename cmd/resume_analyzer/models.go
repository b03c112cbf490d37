package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
)

var modelsCommand = &cobra.Command{
	Use:   "models",
	Short: "List models available on the Ollama runtime",
	RunE:  runModelsCmd,
}

var pullCommand = &cobra.Command{
	Use:   "pull <model>",
	Short: "Pull a model onto the Ollama runtime",
	Args:  cobra.ExactArgs(1),
	RunE:  runPullCmd,
}

var (
	modelsConfigPath string
	modelsOllamaURL  string
)

func init() {
	for _, cmd := range []*cobra.Command{modelsCommand, pullCommand} {
		cmd.Flags().StringVar(&modelsConfigPath, "config", "", "Path to config.json file")
		cmd.Flags().StringVar(&modelsOllamaURL, "ollama-url", "", "Ollama base URL (defaults to OLLAMA_URL env var)")
		rootCmd.AddCommand(cmd)
	}
}

func modelComponents(cmd *cobra.Command) (*components, error) {
	cfg, err := config.Load(modelsConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("ollama-url") {
		cfg.OllamaURL = modelsOllamaURL
	}
	return buildComponents(cfg)
}

func runModelsCmd(cmd *cobra.Command, _ []string) error {
	comp, err := modelComponents(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = comp.log.Sync() }()

	if !comp.client.CheckAvailability(context.Background()) {
		return fmt.Errorf("ollama runtime is not reachable at %s", comp.cfg.OllamaURL)
	}

	models := comp.client.Models()
	if len(models) == 0 {
		fmt.Println("No models installed.")
		return nil
	}
	for _, m := range models {
		fmt.Println(m)
	}
	return nil
}

func runPullCmd(cmd *cobra.Command, args []string) error {
	comp, err := modelComponents(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = comp.log.Sync() }()

	name := args[0]
	if err := comp.client.Pull(context.Background(), name); err != nil {
		return fmt.Errorf("failed to pull %s: %w", name, err)
	}
	fmt.Printf("Pulled %s\n", name)
	return nil
}
