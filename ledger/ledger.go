// Package ledger implements the persisted work ledger that tracks every
// prompt combination and its generation outcome.
//
// The ledger is a JSON document with a small header and an ordered array of
// work items. It is the single source of truth between batch runs: items are
// created once by enumeration and only their generation status mutates
// afterwards.
package ledger

import (
	"time"
	"unicode/utf8"
)

// Status is the generation state of a work item.
type Status string

const (
	// StatusPending means the item has not been successfully generated yet.
	StatusPending Status = "pending"

	// StatusSuccess means an artifact was generated and saved.
	StatusSuccess Status = "success"

	// StatusFailed means the API reported an error and retries were exhausted
	// or the error was not retryable.
	StatusFailed Status = "failed"

	// StatusException means a transport-level fault (connection, protocol)
	// occurred rather than an API-reported error. Kept distinct so operators
	// can tell network flakiness from rejected requests.
	StatusException Status = "exception"
)

// maxErrorLen bounds the error text persisted in the ledger.
const maxErrorLen = 200

// GenerationStatus records the outcome of the most recent generation attempt
// for an item. For successes it carries the artifact location; for failures
// the truncated error text.
type GenerationStatus struct {
	Status      Status `json:"status"`
	Filename    string `json:"filename,omitempty"`
	URL         string `json:"url,omitempty"`
	Error       string `json:"error,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty"`
	AttemptedAt string `json:"attempted_at,omitempty"`
}

// Item is one unit of generation work. The id and descriptor fields are
// assigned at enumeration time and never change; only GenerationStatus
// mutates afterwards.
type Item struct {
	ID           int    `json:"id"`
	IndustryID   string `json:"industry_id"`
	IndustryName string `json:"industry_name"`
	Sector       string `json:"sector"`
	PackID       string `json:"pack_id"`
	PackName     string `json:"pack_name"`
	StyleName    string `json:"style_name"`
	StyleTier    string `json:"style_tier"`
	HookPattern  string `json:"hook_pattern"`
	Prompt       string `json:"prompt,omitempty"`
	Filename     string `json:"filename"`

	GenerationStatus *GenerationStatus `json:"generation_status,omitempty"`
}

// Status returns the item's current status. An item without a recorded
// generation status is pending.
func (it *Item) Status() Status {
	if it.GenerationStatus == nil || it.GenerationStatus.Status == "" {
		return StatusPending
	}
	return it.GenerationStatus.Status
}

// MarkSuccess records a successful generation with the artifact location.
func (it *Item) MarkSuccess(filename, url string, at time.Time) {
	it.GenerationStatus = &GenerationStatus{
		Status:      StatusSuccess,
		Filename:    filename,
		URL:         url,
		GeneratedAt: at.Format(time.RFC3339),
	}
}

// MarkFailed records an API-reported failure with truncated error text.
func (it *Item) MarkFailed(errText string, at time.Time) {
	it.GenerationStatus = &GenerationStatus{
		Status:      StatusFailed,
		Filename:    it.Filename,
		Error:       truncate(errText, maxErrorLen),
		AttemptedAt: at.Format(time.RFC3339),
	}
}

// MarkException records a transport-level failure with truncated error text.
func (it *Item) MarkException(errText string, at time.Time) {
	it.GenerationStatus = &GenerationStatus{
		Status:      StatusException,
		Filename:    it.Filename,
		Error:       truncate(errText, maxErrorLen),
		AttemptedAt: at.Format(time.RFC3339),
	}
}

// Ledger is the persisted ordered collection of work items plus header.
type Ledger struct {
	Version      string  `json:"version"`
	Description  string  `json:"description"`
	TotalPrompts int     `json:"total_prompts"`
	Prompts      []*Item `json:"prompts"`
}

// Pending returns, in creation order, every item whose status is not success.
// Failed and exception items count as pending: they still need work.
func (l *Ledger) Pending() []*Item {
	var out []*Item
	for _, it := range l.Prompts {
		if it.Status() != StatusSuccess {
			out = append(out, it)
		}
	}
	return out
}

// Failed returns, in creation order, every item whose status is failed or
// exception.
func (l *Ledger) Failed() []*Item {
	var out []*Item
	for _, it := range l.Prompts {
		switch it.Status() {
		case StatusFailed, StatusException:
			out = append(out, it)
		}
	}
	return out
}

// ItemByID returns the item with the given id, or nil if absent.
func (l *Ledger) ItemByID(id int) *Item {
	for _, it := range l.Prompts {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Summary holds aggregate counts derived from the ledger. No separate
// bookkeeping exists; this is always recomputed from item statuses.
type Summary struct {
	Total     int
	Success   int
	Failed    int // failed + exception
	Pending   int // not success and not failed/exception
	SuccessPc float64
}

// Summarize computes aggregate counts over the full ledger.
func (l *Ledger) Summarize() Summary {
	s := Summary{Total: len(l.Prompts)}
	for _, it := range l.Prompts {
		switch it.Status() {
		case StatusSuccess:
			s.Success++
		case StatusFailed, StatusException:
			s.Failed++
		default:
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.SuccessPc = 100 * float64(s.Success) / float64(s.Total)
	}
	return s
}

// truncate bounds a string to max bytes without splitting a multi-byte
// rune, so the persisted text stays valid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
