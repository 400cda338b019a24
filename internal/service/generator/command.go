package generator

import (
	"context"
	"fmt"
	"os"

	"github.com/superyngo/wenget-bucket/internal/config"
	"github.com/superyngo/wenget-bucket/internal/github"
	"github.com/superyngo/wenget-bucket/internal/logger"
)

// Options contains inputs for the generator entry point.
type Options struct {
	// SourcesPath is the package source list (one repository URL per line).
	SourcesPath string
	// ScriptsPath is the script source list (gist or raw URLs). The file is
	// optional; a missing one simply yields no scripts.
	ScriptsPath string
	// OutputPath is where the manifest document is written.
	OutputPath string
	// ConfigPath optionally overrides generator settings from a YAML file.
	ConfigPath string
	// Token is the hosting-API credential; falls back to the environment.
	Token string
}

// Run executes the generation workflow.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "bucket-generator")

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	// A missing package source list is fatal before any network I/O.
	if _, err := os.Stat(opts.SourcesPath); err != nil {
		return fmt.Errorf("source file %q: %w", opts.SourcesPath, err)
	}

	token := opts.Token
	if token == "" {
		token = os.Getenv(config.TokenEnvVariable)
	}

	if token == "" {
		logger.Warn(ctx, "No API token configured, running with the anonymous request quota")
	}

	service := NewService(cfg, github.NewClient(cfg, token))

	if err := service.Generate(ctx, opts.SourcesPath, opts.ScriptsPath, opts.OutputPath); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	return nil
}

// loadConfig reads settings from the given path, or returns defaults when no
// path is provided.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return cfg, nil
}
