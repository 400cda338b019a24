package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/superyngo/wenget-bucket/internal/config"
	"github.com/superyngo/wenget-bucket/internal/logger"
	"github.com/superyngo/wenget-bucket/internal/service/generator"
	"github.com/superyngo/wenget-bucket/internal/version"
)

var (
	// scriptsPath is the script source list.
	scriptsPath string
	// outputPath is the manifest destination.
	outputPath string
	// token is the hosting-API credential override.
	token string
	// configPath optionally points at a YAML settings file.
	configPath string
	// logLevel is the zap level name.
	logLevel string

	// rootCmd represents the base command that generates the bucket manifest.
	rootCmd = &cobra.Command{
		Use:   "bucket-generator [sources-file]",
		Short: "Generate the bucket manifest from repository and script source lists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			sourcesPath := config.DefaultSourcesFilename
			if len(args) > 0 {
				sourcesPath = args[0]
			}

			options := &generator.Options{
				SourcesPath: sourcesPath,
				ScriptsPath: scriptsPath,
				OutputPath:  outputPath,
				ConfigPath:  configPath,
				Token:       token,
			}

			return generator.Run(ctx, options)
		},
	}
)

// Execute runs the bucket-generator CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&scriptsPath, "scripts", "s", config.DefaultScriptsFilename, "source file containing gist or raw script URLs")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultOutputFilename, "output manifest file")
	rootCmd.Flags().StringVarP(&token, "token", "t", "", "API token (or use "+config.TokenEnvVariable+" environment variable)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to generator settings file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "logging level: debug, info, warn, error or fatal")
}
