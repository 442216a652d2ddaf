package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

// RequestLogRepository implements [models.Repository] for [models.RequestLog] persistence.
//
// It also satisfies services.Recorder so the dispatcher can journal every call.
type RequestLogRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.RequestLog] = (*RequestLogRepository)(nil)

// NewRequestLogRepository creates a new [RequestLogRepository] with the given database connection
func NewRequestLogRepository(db *sql.DB) *RequestLogRepository {
	return &RequestLogRepository{db: db}
}

const requestLogColumns = `id, method, url, status_code, ok, duration_ms, response_bytes, error, created_at, updated_at`

// Create inserts a new entry with a generated ID
func (r *RequestLogRepository) Create(entry *models.RequestLog) error {
	return r.create(context.Background(), entry)
}

// Record journals one dispatched call.
func (r *RequestLogRepository) Record(ctx context.Context, entry *models.RequestLog) error {
	return r.create(ctx, entry)
}

func (r *RequestLogRepository) create(ctx context.Context, entry *models.RequestLog) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO request_logs (` + requestLogColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		entry.Method(),
		entry.URL(),
		entry.StatusCode(),
		entry.OK(),
		entry.Duration().Milliseconds(),
		entry.ResponseBytes(),
		entry.ErrorText(),
		entry.CreatedAt().UTC(),
		entry.UpdatedAt().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}

	entry.SetID(id)
	return nil
}

// Get retrieves an entry by ID
func (r *RequestLogRepository) Get(id string) (*models.RequestLog, error) {
	query := `SELECT ` + requestLogColumns + ` FROM request_logs WHERE id = ?`

	entry, err := scanRequestLog(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: request log %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query request log: %w", err)
	}
	return entry, nil
}

// Update rewrites the outcome of an existing entry
func (r *RequestLogRepository) Update(entry *models.RequestLog) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE request_logs
		SET method = ?, url = ?, status_code = ?, ok = ?, duration_ms = ?, response_bytes = ?, error = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query,
		entry.Method(),
		entry.URL(),
		entry.StatusCode(),
		entry.OK(),
		entry.Duration().Milliseconds(),
		entry.ResponseBytes(),
		entry.ErrorText(),
		now,
		entry.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update request log: %w", err)
	}

	return expectAffected(result, entry.ID())
}

// Delete removes an entry by ID
func (r *RequestLogRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM request_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete request log: %w", err)
	}

	return expectAffected(result, id)
}

// List retrieves entries newest first.
//
// Supported criteria: "method" (string), "ok" (bool), "since" (time.Time) and "limit" (int).
func (r *RequestLogRepository) List(criteria map[string]any) ([]*models.RequestLog, error) {
	query := `SELECT ` + requestLogColumns + ` FROM request_logs WHERE 1 = 1`
	args := []any{}

	if method, ok := criteria["method"].(string); ok && method != "" {
		query += " AND method = ?"
		args = append(args, method)
	}
	if ok, set := criteria["ok"].(bool); set {
		query += " AND ok = ?"
		args = append(args, ok)
	}
	if since, ok := criteria["since"].(time.Time); ok && !since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, since.UTC())
	}

	query += " ORDER BY created_at DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query request logs: %w", err)
	}
	defer rows.Close()

	var entries []*models.RequestLog
	for rows.Next() {
		entry, err := scanRequestLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request log: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Prune deletes entries created before the cutoff and reports how many were removed.
func (r *RequestLogRepository) Prune(before time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM request_logs WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune request logs: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequestLog(row rowScanner) (*models.RequestLog, error) {
	var (
		id            string
		method        string
		url           string
		statusCode    int
		ok            bool
		durationMs    int64
		responseBytes int
		errText       string
		createdAt     time.Time
		updatedAt     time.Time
	)

	err := row.Scan(&id, &method, &url, &statusCode, &ok, &durationMs, &responseBytes, &errText, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	return models.HydrateRequestLog(
		id, method, url, statusCode, ok,
		time.Duration(durationMs)*time.Millisecond,
		responseBytes, errText, createdAt, updatedAt,
	), nil
}

// RequestLogStats summarizes the journal.
type RequestLogStats struct {
	Total         int     `json:"total"`
	Failed        int     `json:"failed"`
	AvgDurationMs float64 `json:"avg_duration_ms"`
}

// Stats aggregates every stored entry.
func (r *RequestLogRepository) Stats() (RequestLogStats, error) {
	var stats RequestLogStats
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN ok = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(duration_ms), 0)
		FROM request_logs
	`
	if err := r.db.QueryRow(query).Scan(&stats.Total, &stats.Failed, &stats.AvgDurationMs); err != nil {
		return stats, fmt.Errorf("failed to aggregate request logs: %w", err)
	}
	return stats, nil
}
