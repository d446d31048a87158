package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"carouselgen/batch"
	"carouselgen/core"
	"carouselgen/db"
	"carouselgen/ledger"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	ShowFailed bool
	Attempts   int
}

// NewStatusCommand creates the status command. It reads the ledger and
// prints aggregate counts; it never writes anything or touches the network.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show work ledger progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ShowFailed, "failed", false, "list failed and exception items")
	cmd.Flags().IntVar(&opts.Attempts, "attempts", 0, "show the N most recent generation attempts from the history database")

	return cmd
}

func runStatus(cmd *cobra.Command, opts *StatusOptions) error {
	cfg, logger, err := setup(opts.RootOptions)
	if err != nil {
		return err
	}
	defer logger.Sync()

	led, err := ledger.NewStore(cfg.LedgerPath).Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	batch.PrintSummary(out, led.Summarize())

	if opts.ShowFailed {
		failed := led.Failed()
		if len(failed) > 0 {
			fmt.Fprintln(out)
			for _, it := range failed {
				glyph := color.RedString("✗")
				if it.Status() == ledger.StatusException {
					glyph = color.YellowString("!")
				}
				errText := ""
				if it.GenerationStatus != nil {
					errText = it.GenerationStatus.Error
				}
				fmt.Fprintf(out, "%s %03d %s  %s\n", glyph, it.ID, it.Filename, errText)
			}
		}
	}

	if opts.Attempts > 0 {
		if err := printAttempts(cmd.Context(), out, cfg, opts.Attempts); err != nil {
			return err
		}
	}
	return nil
}

// printAttempts lists the most recent rows from the attempt-history
// database. The database is opened read-style: a missing file is reported,
// not created.
func printAttempts(ctx context.Context, out io.Writer, cfg *core.Config, limit int) error {
	if _, err := os.Stat(cfg.HistoryDBPath); err != nil {
		fmt.Fprintf(out, "\nNo attempt history at %s\n", cfg.HistoryDBPath)
		return nil
	}

	// The database already exists and was migrated by the run that created
	// it, so open it without the migration step: status stays read-only.
	conn, err := db.NewSQLiteConnectionWithDefaults(cfg.HistoryDBPath)
	if err != nil {
		return err
	}
	history := db.NewHistory(conn)
	defer history.Close()

	attempts, err := history.RecentAttempts(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nRecent attempts (%d):\n", len(attempts))
	for _, a := range attempts {
		line := fmt.Sprintf("  %s  item %03d attempt %d  %-9s %6dms  %s",
			a.CreatedAt.Format("2006-01-02 15:04:05"), a.ItemID, a.Attempt, a.Status, a.DurationMS, a.ErrorMessage)
		switch a.Status {
		case string(ledger.StatusSuccess):
			color.New(color.FgGreen).Fprintln(out, line)
		case "transport":
			color.New(color.FgYellow).Fprintln(out, line)
		default:
			color.New(color.FgRed).Fprintln(out, line)
		}
	}
	return nil
}
