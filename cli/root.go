// Package cli wires the carouselgen commands: prompt enumeration, batch
// generation and ledger status.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"carouselgen/core"
	"carouselgen/logging"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	EnvFile string
	Ledger  string
}

// NewRootCommand creates the carouselgen root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "carouselgen",
		Short: "Batch generation of reference carousel strips",
		Long: `carouselgen enumerates industry/pack/style prompt combinations into a
work ledger, drives batch image generation against an OpenAI-compatible
API with resume and retry, and post-processes results into fixed-size
horizontal strips.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine; the environment may already be set.
			if opts.EnvFile != "" {
				_ = godotenv.Load(opts.EnvFile)
			} else {
				_ = godotenv.Load()
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", "", "path to .env file (default: ./.env)")
	cmd.PersistentFlags().StringVar(&opts.Ledger, "ledger", "", "path to the work ledger (default: "+core.DefaultLedgerPath+")")

	cmd.AddCommand(NewPromptsCommand(opts))
	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

// setup loads configuration and builds the logger. Shared by all commands.
func setup(opts *RootOptions) (*core.Config, *logging.Logger, error) {
	cfg := core.LoadConfig()
	if opts.Ledger != "" {
		cfg.LedgerPath = opts.Ledger
	}

	logger, err := logging.NewLogger(opts.Verbose, cfg.LogFilePath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
