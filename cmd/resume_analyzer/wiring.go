package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/analyze"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/decode"
	"github.com/jonathan/resume-analyzer/internal/interview"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/ollama"
	"github.com/jonathan/resume-analyzer/internal/roadmap"
)

// components holds the wired object graph shared by the serve and
// analyze commands
type components struct {
	cfg       config.Config
	log       *zap.Logger
	client    *ollama.Client
	analyzer  *analyze.Analyzer
	questions *interview.Generator
	roadmaps  *roadmap.Generator
}

// buildComponents loads configuration and constructs the analyzer
// stack. Flag overrides were already applied to cfg by the caller.
func buildComponents(cfg *config.Config) (*components, error) {
	cfg.FromEnv()
	merged := cfg.MergeWithDefaults()
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(true, merged.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	client := ollama.New(merged.OllamaURL, merged.Timeout(), log)
	dec := decode.New(client, merged.MaxRetries, merged.RetryDelay())

	return &components{
		cfg:       merged,
		log:       log,
		client:    client,
		analyzer:  analyze.New(dec, merged.ModelFor(config.PurposeAnalysis), log),
		questions: interview.New(dec, merged.ModelFor(config.PurposeQuestion), log),
		roadmaps:  roadmap.New(dec, merged.ModelFor(config.PurposeGuidance), log),
	}, nil
}
