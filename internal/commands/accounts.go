package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mercury-tools/mercury-export/internal/mercury"
)

func newAccountsCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts visible to the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer closeLog()

			prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			apiKey, err := resolveAPIKey(prompter, logger)
			if err != nil {
				return err
			}

			client := mercury.NewClient(cfg.API.BaseURL, apiKey, logger,
				mercury.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second))

			accounts, err := client.GetAccounts(cmd.Context())
			if err != nil {
				logger.Error("listing accounts failed", zap.Error(err))
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d accounts\n", len(accounts))
			for i, account := range accounts {
				fmt.Fprintf(out, "%d. %s (ID: %s)\n", i+1, account.Name, account.ID)
			}
			return nil
		},
	}
}
