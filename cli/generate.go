package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carouselgen/batch"
	"carouselgen/db"
	"carouselgen/imagegen"
	"carouselgen/ledger"
	"carouselgen/logging"
	"carouselgen/postprocess"
	"carouselgen/prompt"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	StartID       int
	BatchSize     int
	Resume        bool
	RetryFailed   bool
	StatusOnly    bool
	Delay         float64 // seconds; negative means use the configured default
	OutputDir     string
	NoPostprocess bool
	NoHistory     bool
}

// NewGenerateCommand creates the generate command: the batch driver over
// the work ledger.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run batch generation over the work ledger",
		Long: `Process work ledger items against the image API. The ledger is saved
after every item, so an interrupted run can be resumed with --resume.
Failed and exception items can be re-driven with --retry-failed.

Examples:
  carouselgen generate --batch 10
  carouselgen generate --resume
  carouselgen generate --retry-failed --delay 5
  carouselgen generate --start 40 --batch 20
  carouselgen generate --status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.StartID, "start", 0, "first item id to process")
	cmd.Flags().IntVar(&opts.BatchSize, "batch", 0, "max items to process this run (0 = all)")
	cmd.Flags().BoolVar(&opts.Resume, "resume", false, "skip items already generated")
	cmd.Flags().BoolVar(&opts.RetryFailed, "retry-failed", false, "process only failed and exception items")
	cmd.Flags().BoolVar(&opts.StatusOnly, "status", false, "show ledger status and exit")
	cmd.Flags().Float64Var(&opts.Delay, "delay", -1, "seconds to wait between items (default from config)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "artifact output directory (default from config)")
	cmd.Flags().BoolVar(&opts.NoPostprocess, "no-postprocess", false, "keep raw API output, skip crop/resize")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "skip the SQLite attempt history")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cfg, logger, err := setup(opts.RootOptions)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store := ledger.NewStore(cfg.LedgerPath)

	// Status display is read-only: no credential check, no writes, no
	// network.
	if opts.StatusOnly {
		led, err := store.Load()
		if err != nil {
			return err
		}
		batch.PrintSummary(cmd.OutOrStdout(), led.Summarize())
		return nil
	}

	// Credentials are validated before any ledger access so a
	// misconfigured run never touches the ledger file.
	if err := cfg.ValidateCredentials(); err != nil {
		return err
	}

	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	provider := imagegen.NewOpenAIProvider(
		cfg.OpenAIAPIKey,
		cfg.ImageAPIURL,
		cfg.GetHTTPClient(cfg.AITimeout),
		logger,
		imagegen.WithModel(cfg.ImageModel),
	)

	var post batch.Processor
	if !opts.NoPostprocess {
		post, err = postprocess.NewStripProcessor(cfg.StripWidth, cfg.StripHeight)
		if err != nil {
			return err
		}
	}

	// Attempt history is an audit trail; losing it must not stop a run.
	var history *db.History
	if !opts.NoHistory {
		history, err = db.OpenHistory(cfg.HistoryDBPath)
		if err != nil {
			logger.Warn("attempt history unavailable", zap.Error(err))
			history = nil
		} else {
			defer history.Close()
		}
	}

	driver, err := batch.NewDriver(batch.DriverConfig{
		Store:    store,
		Builder:  prompt.NewStripBuilder(""),
		Provider: provider,
		Post:     post,
		History:  history,
		Logger:   logger,
		Policy: batch.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			Backoff:     cfg.RetryBackoff,
		},
		ItemDelay: cfg.ItemDelay,
		OutputDir: cfg.OutputDir,
		URLPrefix: cfg.URLPrefix,
		Model:     cfg.ImageModel,
		Output:    cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	_, err = driver.Run(ctx, batch.Options{
		StartID:     opts.StartID,
		BatchSize:   opts.BatchSize,
		Resume:      opts.Resume,
		RetryFailed: opts.RetryFailed,
		Delay:       delayOption(opts.Delay),
	})
	return err
}

// delayOption maps the --delay flag onto the driver's delay override.
func delayOption(seconds float64) time.Duration {
	switch {
	case seconds < 0:
		return 0 // use configured default
	case seconds == 0:
		return batch.NoDelay
	default:
		return time.Duration(seconds * float64(time.Second))
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM so the
// driver can stop at the next item boundary.
func signalContext(parent context.Context, logger *logging.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Infof("received %s, finishing current item", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
