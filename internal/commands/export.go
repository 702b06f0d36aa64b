package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mercury-tools/mercury-export/internal/config"
	"github.com/mercury-tools/mercury-export/internal/export"
	"github.com/mercury-tools/mercury-export/internal/mercury"
	"github.com/mercury-tools/mercury-export/internal/model"
)

type exportOptions struct {
	accountID string
	startDate string
	endDate   string
	output    string
	noInput   bool
}

func newExportCommand(configPath *string) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch an account's transactions and export them to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, closeLog, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer closeLog()

			logger.Info("starting transaction export")
			if err := runExport(cmd, cfg, logger, opts); err != nil {
				logger.Error("export failed", zap.Error(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.accountID, "account", "", "account ID (skips the account prompt)")
	cmd.Flags().StringVar(&opts.startDate, "start", "", "start date YYYY-MM-DD (default: 30 days ago)")
	cmd.Flags().StringVar(&opts.endDate, "end", "", "end date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&opts.output, "output", "", "CSV output path (skips the save prompt)")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "never prompt; use flags and defaults")

	return cmd
}

func runExport(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger, opts exportOptions) error {
	out := cmd.OutOrStdout()
	prompter := NewPrompter(cmd.InOrStdin(), out)

	apiKey, err := resolveAPIKey(prompter, logger)
	if err != nil {
		return err
	}

	client := mercury.NewClient(cfg.API.BaseURL, apiKey, logger,
		mercury.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second),
		mercury.WithPageSize(cfg.API.PageSize))

	accountID := opts.accountID
	if accountID == "" && !opts.noInput {
		accountID, err = selectAccount(cmd, client, prompter)
		if err != nil {
			return err
		}
	}

	startDate, endDate, err := resolveDates(prompter, opts)
	if err != nil {
		return err
	}

	logger.Info("fetching transactions for date range",
		zap.String("startDate", startDate),
		zap.String("endDate", endDate))
	fmt.Fprintf(out, "\nFetching transactions from %s to %s...\n", startDate, endDate)

	txns, err := client.FetchAll(cmd.Context(), accountID, startDate, endDate)
	if err != nil {
		return err
	}

	export.Summarize(txns).Print(out)

	return saveTransactions(out, prompter, cfg, logger, opts, txns)
}

// selectAccount lists accounts and asks for a 1-based index. A blank or
// out-of-range answer selects nothing; the fetch then fails validation.
func selectAccount(cmd *cobra.Command, client *mercury.Client, prompter *Prompter) (string, error) {
	accounts, err := client.GetAccounts(cmd.Context())
	if err != nil {
		return "", err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found %d accounts\n", len(accounts))
	for i, account := range accounts {
		fmt.Fprintf(out, "%d. %s (ID: %s)\n", i+1, account.Name, account.ID)
	}

	answer, err := prompter.Ask("\nEnter account number to fetch transactions for: ")
	if err != nil {
		return "", err
	}

	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(accounts) {
		return "", nil
	}

	fmt.Fprintf(out, "Selected account: %s\n", accounts[idx-1].Name)
	return accounts[idx-1].ID, nil
}

// resolveDates fills the date range from flags, prompts, or the defaults of
// last 30 days through today.
func resolveDates(prompter *Prompter, opts exportOptions) (string, string, error) {
	defaultStart := time.Now().AddDate(0, 0, -30).Format(dateLayout)
	defaultEnd := time.Now().Format(dateLayout)

	startDate := opts.startDate
	endDate := opts.endDate

	if startDate == "" {
		startDate = defaultStart
		if !opts.noInput {
			var err error
			startDate, err = prompter.AskDefault(
				fmt.Sprintf("\nEnter start date (YYYY-MM-DD) or press Enter for default (%s): ", defaultStart),
				defaultStart)
			if err != nil {
				return "", "", err
			}
		}
	}
	if endDate == "" {
		endDate = defaultEnd
		if !opts.noInput {
			var err error
			endDate, err = prompter.AskDefault("Enter end date (YYYY-MM-DD) or press Enter for today: ", defaultEnd)
			if err != nil {
				return "", "", err
			}
		}
	}

	if err := validDate(startDate); err != nil {
		return "", "", err
	}
	if err := validDate(endDate); err != nil {
		return "", "", err
	}
	return startDate, endDate, nil
}

// saveTransactions writes the CSV when asked to, either via --output or the
// interactive opt-in.
func saveTransactions(out io.Writer, prompter *Prompter, cfg *config.Config, logger *zap.Logger, opts exportOptions, txns []model.Transaction) error {
	if len(txns) == 0 {
		logger.Warn("no transactions to save")
		return nil
	}

	filename := opts.output
	if filename == "" {
		if opts.noInput {
			return nil
		}
		save, err := prompter.Confirm("\nDo you want to save transactions to CSV? (y/n): ")
		if err != nil {
			return err
		}
		if !save {
			return nil
		}
		filename, err = prompter.AskDefault(
			fmt.Sprintf("Enter filename (default: %s): ", cfg.Export.DefaultFilename),
			cfg.Export.DefaultFilename)
		if err != nil {
			return err
		}
	}

	logger.Info("saving transactions to csv",
		zap.Int("count", len(txns)),
		zap.String("filename", filename))

	if err := export.WriteFile(filename, txns); err != nil {
		return err
	}

	fmt.Fprintf(out, "Saved %d transactions to %s\n", len(txns), filename)
	return nil
}
