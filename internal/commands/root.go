package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mercury-tools/mercury-export/internal/buildinfo"
	"github.com/mercury-tools/mercury-export/internal/config"
	"github.com/mercury-tools/mercury-export/internal/logging"
)

// apiKeyEnv is the environment variable checked before prompting.
const apiKeyEnv = "MERCURY_API_KEY"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "mercury-export",
		Short:   "Fetch Mercury bank transactions and export them to CSV",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "mercury.yaml", "path to mercury.yaml (defaults apply when missing)")

	rootCmd.AddCommand(newAccountsCommand(&configPath))
	rootCmd.AddCommand(newExportCommand(&configPath))

	return rootCmd
}

// setup loads configuration and constructs the logger. The returned close
// function flushes the log file and must be deferred by the caller.
func setup(configPath string) (*config.Config, *zap.Logger, func(), error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

// resolveAPIKey returns the Mercury API key from a .env file, the
// environment, or an interactive prompt, in that order.
func resolveAPIKey(p *Prompter, logger *zap.Logger) (string, error) {
	_ = godotenv.Load()

	if key := os.Getenv(apiKeyEnv); key != "" {
		return key, nil
	}

	logger.Info("api key not found in environment, requesting user input")
	return p.Ask("Enter your Mercury API key: ")
}
