// Package batch drives generation runs over the work ledger: item selection,
// per-item retry, artifact writing, post-processing and checkpointing.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carouselgen/db"
	"carouselgen/imagegen"
	"carouselgen/ledger"
	"carouselgen/logging"
	"carouselgen/prompt"
)

// PayloadBuilder turns a work item into a provider request payload.
type PayloadBuilder interface {
	Build(item *ledger.Item) prompt.Payload
}

// Processor converts a raw generated image into the final artifact format.
type Processor interface {
	Process(data []byte) ([]byte, error)
}

// RetryPolicy controls per-item retry behavior. MaxAttempts is the total
// number of calls allowed per item, including the first one.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Options selects which ledger items a run processes.
type Options struct {
	// StartID skips items with a lower id. Zero means start from the
	// beginning.
	StartID int

	// BatchSize caps how many items this run processes. Zero means no cap.
	BatchSize int

	// Resume makes the default skip-completed selection explicit. Success
	// items are never selected in any mode, so this flag only exists for
	// script compatibility.
	Resume bool

	// RetryFailed selects only failed and exception items.
	RetryFailed bool

	// Delay overrides the configured wait between items when non-zero.
	// Use NoDelay for an explicit zero wait.
	Delay time.Duration
}

// NoDelay disables the wait between items when set as Options.Delay.
const NoDelay = time.Duration(-1)

// Report summarizes one run: how many items were touched and the resulting
// whole-ledger counts.
type Report struct {
	Processed int
	Succeeded int
	Failed    int
	Summary   ledger.Summary
}

// Driver executes generation runs. All collaborators are injected so tests
// can substitute fakes for the provider, clock and sleep.
type Driver struct {
	store    *ledger.Store
	builder  PayloadBuilder
	provider imagegen.Provider
	post     Processor   // nil disables post-processing
	history  *db.History // nil disables attempt history
	log      *logging.Logger
	progress *progressPrinter

	policy    RetryPolicy
	itemDelay time.Duration
	outputDir string
	urlPrefix string
	model     string

	sleep func(time.Duration)
	now   func() time.Time
}

// DriverConfig carries the dependencies and settings for NewDriver.
type DriverConfig struct {
	Store    *ledger.Store
	Builder  PayloadBuilder
	Provider imagegen.Provider
	Post     Processor
	History  *db.History
	Logger   *logging.Logger

	Policy    RetryPolicy
	ItemDelay time.Duration
	OutputDir string
	URLPrefix string
	Model     string

	// Output receives human-facing progress lines. Defaults to os.Stdout.
	Output io.Writer
}

// NewDriver wires a Driver from its dependencies.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("batch: ledger store is required")
	}
	if cfg.Builder == nil {
		return nil, fmt.Errorf("batch: payload builder is required")
	}
	if cfg.Provider == nil {
		return nil, fmt.Errorf("batch: provider is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Policy.MaxAttempts < 1 {
		cfg.Policy.MaxAttempts = 1
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	return &Driver{
		store:     cfg.Store,
		builder:   cfg.Builder,
		provider:  cfg.Provider,
		post:      cfg.Post,
		history:   cfg.History,
		log:       cfg.Logger.Named("batch"),
		progress:  newProgressPrinter(cfg.Output),
		policy:    cfg.Policy,
		itemDelay: cfg.ItemDelay,
		outputDir: cfg.OutputDir,
		urlPrefix: cfg.URLPrefix,
		model:     cfg.Model,
		sleep:     time.Sleep,
		now:       time.Now,
	}, nil
}

// Run loads the ledger, processes the selected items and returns a report.
// The ledger is checkpointed after every item, so an interrupted run loses
// at most the in-flight item.
func (d *Driver) Run(ctx context.Context, opts Options) (*Report, error) {
	led, err := d.store.Load()
	if err != nil {
		return nil, err
	}

	selected := selectItems(led, opts)
	runID := uuid.NewString()
	runLog := d.log.With(zap.String("run_id", runID))

	runLog.Info("batch run starting",
		zap.Int("selected", len(selected)),
		zap.Int("total", len(led.Prompts)),
		zap.Int("max_attempts", d.policy.MaxAttempts),
	)
	d.progress.runHeader(len(selected), led.Summarize())

	report := &Report{}
	for i, item := range selected {
		if err := ctx.Err(); err != nil {
			runLog.Warn("batch run interrupted", zap.Int("processed", report.Processed))
			break
		}

		d.processItem(ctx, runID, item, runLog)
		report.Processed++
		if item.Status() == ledger.StatusSuccess {
			report.Succeeded++
		} else {
			report.Failed++
		}

		// Checkpoint after every item so progress survives a crash.
		if err := d.store.Save(led); err != nil {
			return nil, fmt.Errorf("batch: checkpointing ledger: %w", err)
		}

		if i < len(selected)-1 {
			delay := d.itemDelay
			if opts.Delay != 0 {
				delay = opts.Delay
			}
			if delay > 0 {
				d.sleep(delay)
			}
		}
	}

	report.Summary = led.Summarize()
	runLog.Info("batch run complete",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	d.progress.runFooter(report)
	return report, nil
}

// selectItems applies the run options to the ledger, preserving creation
// order. Items already marked success are never selected in any mode:
// re-running a completed ledger must cost zero API calls.
func selectItems(led *ledger.Ledger, opts Options) []*ledger.Item {
	var out []*ledger.Item
	for _, it := range led.Prompts {
		if opts.StartID > 0 && it.ID < opts.StartID {
			continue
		}
		if opts.RetryFailed {
			if s := it.Status(); s != ledger.StatusFailed && s != ledger.StatusException {
				continue
			}
		} else if it.Status() == ledger.StatusSuccess {
			continue
		}
		out = append(out, it)
		if opts.BatchSize > 0 && len(out) == opts.BatchSize {
			break
		}
	}
	return out
}

// processItem runs the retry loop for one item and records the terminal
// outcome on the item itself.
func (d *Driver) processItem(ctx context.Context, runID string, item *ledger.Item, runLog *logging.Logger) {
	itemLog := runLog.With(
		zap.Int("item_id", item.ID),
		zap.String("filename", item.Filename),
	)
	payload := d.builder.Build(item)
	req := imagegen.Request{Prompt: payload.Prompt, Resolution: payload.Resolution}

	var lastErr *imagegen.GenerationError
	for attempt := 1; attempt <= d.policy.MaxAttempts; attempt++ {
		started := d.now()
		result, err := d.provider.Generate(ctx, req)
		elapsed := d.now().Sub(started)

		if err == nil {
			if saveErr := d.saveArtifact(item, result); saveErr != nil {
				// A local write failure is not the API's fault; do not
				// burn retries on it.
				itemLog.Error("saving artifact failed", zap.Error(saveErr))
				item.MarkException(saveErr.Error(), d.now())
				d.recordAttempt(ctx, runID, item, attempt, string(ledger.StatusException), saveErr.Error(), elapsed)
				d.progress.item(item)
				return
			}
			item.MarkSuccess(item.Filename, d.urlPrefix+item.Filename, d.now())
			d.recordAttempt(ctx, runID, item, attempt, string(ledger.StatusSuccess), "", elapsed)
			itemLog.Info("item generated", zap.Int("attempt", attempt), zap.Duration("elapsed", elapsed))
			d.progress.item(item)
			return
		}

		lastErr = imagegen.Classify(err)
		d.recordAttempt(ctx, runID, item, attempt, lastErr.Kind.String(), lastErr.Message, elapsed)
		itemLog.Warn("attempt failed",
			zap.Int("attempt", attempt),
			zap.String("kind", lastErr.Kind.String()),
			zap.Error(err),
		)

		if !lastErr.Retryable() || attempt == d.policy.MaxAttempts {
			break
		}
		d.sleep(d.policy.Backoff)
	}

	at := d.now()
	if lastErr.Kind == imagegen.ErrorTransport {
		item.MarkException(lastErr.Message, at)
	} else {
		item.MarkFailed(lastErr.Message, at)
	}
	d.progress.item(item)
}

// saveArtifact writes the first artifact of a result to the output
// directory, post-processing it when a processor is configured. A
// post-processing failure keeps the raw artifact: a worse image beats no
// image.
func (d *Driver) saveArtifact(item *ledger.Item, result *imagegen.Result) error {
	if result == nil || len(result.Artifacts) == 0 {
		return fmt.Errorf("provider returned no image data")
	}
	data := result.Artifacts[0].Data

	if d.post != nil {
		processed, err := d.post.Process(data)
		if err != nil {
			d.log.Warn("post-processing failed, keeping raw artifact",
				zap.Int("item_id", item.ID),
				zap.Error(err),
			)
		} else {
			data = processed
		}
	}

	if d.outputDir != "" {
		if err := os.MkdirAll(d.outputDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	path := filepath.Join(d.outputDir, item.Filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// recordAttempt writes one row of attempt history. Best effort: history
// failures are logged and ignored so they never affect item state.
func (d *Driver) recordAttempt(ctx context.Context, runID string, item *ledger.Item, attempt int, status, errText string, elapsed time.Duration) {
	if d.history == nil {
		return
	}
	_, err := d.history.RecordAttempt(ctx, db.AttemptRecord{
		CorrelationID: runID,
		ItemID:        item.ID,
		Filename:      item.Filename,
		Attempt:       attempt,
		Status:        status,
		ModelName:     d.model,
		ErrorMessage:  errText,
		DurationMS:    int(elapsed.Milliseconds()),
	})
	if err != nil {
		d.log.Warn("recording attempt history failed", zap.Error(err))
	}
}
