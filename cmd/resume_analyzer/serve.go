package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/server"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the resume analyzer HTTP API",
	Long: `Starts the REST API: POST /analyze accepts a resume upload, POST /questions and POST /roadmap consume a returned analysis, GET /health reports runtime connectivity.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
	RunE: runServeCmd,
}

var (
	serveConfigPath string
	servePort       int
	serveOllamaURL  string
	serveModel      string
	serveUploadDir  string
	serveVerbose    bool
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port")
	serveCommand.Flags().StringVar(&serveOllamaURL, "ollama-url", "", "Ollama base URL (defaults to OLLAMA_URL env var)")
	serveCommand.Flags().StringVarP(&serveModel, "model", "m", "", "Default model name (defaults to OLLAMA_MODEL env var)")
	serveCommand.Flags().StringVar(&serveUploadDir, "upload-dir", "", "Directory for staging uploaded resumes")
	serveCommand.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(serveCommand)
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("ollama-url") {
		cfg.OllamaURL = serveOllamaURL
	}
	if cmd.Flags().Changed("model") {
		cfg.DefaultModel = serveModel
	}
	if cmd.Flags().Changed("upload-dir") {
		cfg.UploadDir = serveUploadDir
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = serveVerbose
	}

	comp, err := buildComponents(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = comp.log.Sync() }()

	srv := server.New(server.Config{
		Port:      comp.cfg.Port,
		UploadDir: comp.cfg.UploadDir,
		Retention: comp.cfg.Retention(),
		Timeout:   comp.cfg.Timeout(),
	}, comp.analyzer, comp.questions, comp.roadmaps, comp.client, comp.log)

	return srv.Start()
}
