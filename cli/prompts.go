package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carouselgen/ledger"
	"carouselgen/prompt"
)

// PromptsOptions holds flags for the prompts command.
type PromptsOptions struct {
	*RootOptions
	Catalog string
	Force   bool
}

// NewPromptsCommand creates the prompts command. It enumerates the catalog
// into a fresh work ledger. No API credential is needed.
func NewPromptsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PromptsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prompts",
		Short: "Enumerate the catalog into a work ledger",
		Long: `Enumerate every industry x pack x style combination from the catalog
into a JSON work ledger with stable ids and filenames.

An existing ledger is never overwritten without --force, because it may
hold generation progress.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompts(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "path to the catalog YAML (default from config)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing ledger")

	return cmd
}

func runPrompts(cmd *cobra.Command, opts *PromptsOptions) error {
	cfg, logger, err := setup(opts.RootOptions)
	if err != nil {
		return err
	}
	defer logger.Sync()

	catalogPath := cfg.CatalogPath
	if opts.Catalog != "" {
		catalogPath = opts.Catalog
	}

	catalog, err := prompt.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	store := ledger.NewStore(cfg.LedgerPath)
	if store.Exists() && !opts.Force {
		return fmt.Errorf("ledger %s already exists; use --force to overwrite", cfg.LedgerPath)
	}

	led := prompt.Enumerate(catalog)
	if err := store.Save(led); err != nil {
		return err
	}

	logger.Info("ledger written",
		zap.String("path", cfg.LedgerPath),
		zap.Int("prompts", led.TotalPrompts),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d prompts to %s\n", led.TotalPrompts, cfg.LedgerPath)
	return nil
}
