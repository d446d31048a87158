package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AttemptRecord is one generation attempt against the remote API.
type AttemptRecord struct {
	ID            int64
	CorrelationID string // Ties all attempts of one driver run together
	ItemID        int    // Work item id from the ledger
	Filename      string
	Attempt       int // 1-based attempt number within the item
	Status        string
	ModelName     string
	ErrorMessage  string
	DurationMS    int
	CreatedAt     time.Time
}

// History records generation attempts in SQLite. All writes are best-effort
// from the caller's point of view: the driver logs and continues when a
// history write fails, because attempt history must never affect item state.
type History struct {
	db *sql.DB
}

// OpenHistory migrates the schema at dbPath and opens a connection for
// attempt writes.
func OpenHistory(dbPath string) (*History, error) {
	if err := MigrateUpFromPath(dbPath); err != nil {
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}

	conn, err := NewSQLiteConnectionWithDefaults(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	return &History{db: conn}, nil
}

// NewHistory wraps an existing connection. The schema must already be
// migrated.
func NewHistory(conn *sql.DB) *History {
	return &History{db: conn}
}

// Close releases the underlying connection.
func (h *History) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}

// RecordAttempt inserts one attempt row and returns its id.
func (h *History) RecordAttempt(ctx context.Context, record AttemptRecord) (int64, error) {
	if h == nil || h.db == nil {
		return 0, fmt.Errorf("history database is nil")
	}

	query := `
		INSERT INTO generation_attempts (
			correlation_id, item_id, filename, attempt,
			status, model_name, error_message, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.db.ExecContext(ctx, query,
		record.CorrelationID,
		record.ItemID,
		record.Filename,
		record.Attempt,
		record.Status,
		record.ModelName,
		record.ErrorMessage,
		record.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert attempt record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted record ID: %w", err)
	}
	return id, nil
}

// AttemptsForItem returns all recorded attempts for one work item, oldest
// first.
func (h *History) AttemptsForItem(ctx context.Context, itemID int) ([]AttemptRecord, error) {
	if h == nil || h.db == nil {
		return nil, fmt.Errorf("history database is nil")
	}

	query := `
		SELECT id, correlation_id, item_id, filename, attempt,
		       status, model_name, error_message, duration_ms, created_at
		FROM generation_attempts
		WHERE item_id = ?
		ORDER BY id ASC`

	rows, err := h.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

// RecentAttempts returns the most recent attempt rows across all items,
// newest first, capped at limit.
func (h *History) RecentAttempts(ctx context.Context, limit int) ([]AttemptRecord, error) {
	if h == nil || h.db == nil {
		return nil, fmt.Errorf("history database is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, correlation_id, item_id, filename, attempt,
		       status, model_name, error_message, duration_ms, created_at
		FROM generation_attempts
		ORDER BY id DESC
		LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	return scanAttempts(rows)
}

func scanAttempts(rows *sql.Rows) ([]AttemptRecord, error) {
	var records []AttemptRecord
	for rows.Next() {
		var r AttemptRecord
		if err := rows.Scan(
			&r.ID,
			&r.CorrelationID,
			&r.ItemID,
			&r.Filename,
			&r.Attempt,
			&r.Status,
			&r.ModelName,
			&r.ErrorMessage,
			&r.DurationMS,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempt records: %w", err)
	}
	return records, nil
}
