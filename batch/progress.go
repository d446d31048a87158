package batch

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"carouselgen/ledger"
)

// progressPrinter renders one-line run progress to the console. Log output
// goes through the structured logger; this is the human-facing view.
type progressPrinter struct {
	w io.Writer

	ok   *color.Color
	bad  *color.Color
	warn *color.Color
	dim  *color.Color
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{
		w:    w,
		ok:   color.New(color.FgGreen),
		bad:  color.New(color.FgRed),
		warn: color.New(color.FgYellow),
		dim:  color.New(color.Faint),
	}
}

func (p *progressPrinter) runHeader(selected int, s ledger.Summary) {
	fmt.Fprintf(p.w, "Processing %d of %d items (%d done, %d failed, %d pending)\n",
		selected, s.Total, s.Success, s.Failed, s.Pending)
}

func (p *progressPrinter) item(it *ledger.Item) {
	switch it.Status() {
	case ledger.StatusSuccess:
		p.ok.Fprintf(p.w, "  ✓ %03d %s\n", it.ID, it.Filename)
	case ledger.StatusException:
		p.warn.Fprintf(p.w, "  ! %03d %s  %s\n", it.ID, it.Filename, errText(it))
	default:
		p.bad.Fprintf(p.w, "  ✗ %03d %s  %s\n", it.ID, it.Filename, errText(it))
	}
}

func (p *progressPrinter) runFooter(r *Report) {
	fmt.Fprintf(p.w, "Done: %d processed, %d succeeded, %d failed\n",
		r.Processed, r.Succeeded, r.Failed)
	p.dim.Fprintf(p.w, "Ledger: %d/%d success (%.1f%%)\n",
		r.Summary.Success, r.Summary.Total, r.Summary.SuccessPc)
}

// PrintSummary renders the whole-ledger summary used by the status command.
func PrintSummary(w io.Writer, s ledger.Summary) {
	fmt.Fprintf(w, "Total:    %d\n", s.Total)
	color.New(color.FgGreen).Fprintf(w, "Success:  %d (%.1f%%)\n", s.Success, s.SuccessPc)
	color.New(color.FgRed).Fprintf(w, "Failed:   %d\n", s.Failed)
	color.New(color.FgYellow).Fprintf(w, "Pending:  %d\n", s.Pending)
}

func errText(it *ledger.Item) string {
	if it.GenerationStatus == nil {
		return ""
	}
	return it.GenerationStatus.Error
}
