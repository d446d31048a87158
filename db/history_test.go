package db

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory() error = %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestOpenHistoryMigratesSchema(t *testing.T) {
	h := openTestHistory(t)

	// Fresh database should answer queries against the migrated table.
	records, err := h.AttemptsForItem(context.Background(), 1)
	if err != nil {
		t.Fatalf("AttemptsForItem() on empty table error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("fresh table has %d records, want 0", len(records))
	}
}

func TestOpenHistoryIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	first, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("first OpenHistory() error = %v", err)
	}
	first.Close()

	// Re-opening must not fail on an already-migrated schema.
	second, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("second OpenHistory() error = %v", err)
	}
	second.Close()
}

func TestRecordAndQueryAttempts(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	attempts := []AttemptRecord{
		{CorrelationID: "run-1", ItemID: 7, Filename: "007_x.png", Attempt: 1, Status: "failed", ModelName: "dall-e-3", ErrorMessage: "status code: 500", DurationMS: 1200},
		{CorrelationID: "run-1", ItemID: 7, Filename: "007_x.png", Attempt: 2, Status: "success", ModelName: "dall-e-3", DurationMS: 9800},
		{CorrelationID: "run-1", ItemID: 8, Filename: "008_y.png", Attempt: 1, Status: "success", ModelName: "dall-e-3", DurationMS: 8700},
	}
	for _, a := range attempts {
		if _, err := h.RecordAttempt(ctx, a); err != nil {
			t.Fatalf("RecordAttempt() error = %v", err)
		}
	}

	got, err := h.AttemptsForItem(ctx, 7)
	if err != nil {
		t.Fatalf("AttemptsForItem() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("AttemptsForItem(7) = %d records, want 2", len(got))
	}
	if got[0].Attempt != 1 || got[1].Attempt != 2 {
		t.Error("attempts not returned oldest first")
	}
	if got[0].Status != "failed" || got[0].ErrorMessage != "status code: 500" {
		t.Errorf("first attempt = %+v, want failed with error text", got[0])
	}
	if got[1].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestRecentAttemptsOrderAndLimit(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := h.RecordAttempt(ctx, AttemptRecord{
			CorrelationID: "run-2",
			ItemID:        i,
			Attempt:       1,
			Status:        "success",
		}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := h.RecentAttempts(ctx, 3)
	if err != nil {
		t.Fatalf("RecentAttempts() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("RecentAttempts(3) = %d records, want 3", len(got))
	}
	if got[0].ItemID != 5 {
		t.Errorf("newest record item = %d, want 5", got[0].ItemID)
	}
}

func TestHistoryNilSafety(t *testing.T) {
	var h *History
	if err := h.Close(); err != nil {
		t.Errorf("nil History Close() error = %v", err)
	}
	if _, err := h.RecordAttempt(context.Background(), AttemptRecord{}); err == nil {
		t.Error("nil History RecordAttempt() should error")
	}
}
