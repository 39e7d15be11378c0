package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"captioner/internal/config"
	"captioner/internal/services"
)

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 20

// timeLayout keeps fractional seconds fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or connects to the history database under the state directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the database at an explicit location.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a run, assigning an ID and timestamp when unset.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Status == "" {
		run.Status = StatusSucceeded
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            id, created_at, source, output, format, shape,
            span_count, cue_count, removed_count, duration_seconds, status, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.Source,
		nullableString(run.Output),
		run.Format,
		run.Shape,
		run.SpanCount,
		run.CueCount,
		run.RemovedCount,
		nullableFloat(run.DurationSeconds),
		string(run.Status),
		nullableString(run.ErrorMessage),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

const selectColumns = `id, created_at, source, output, format, shape,
    span_count, cue_count, removed_count, duration_seconds, status, error_message`

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID or an ID prefix unique to one run.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, services.Wrap(services.ErrNotFound, "history", "get", "empty run id", nil)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+selectColumns+" FROM runs WHERE id LIKE ? ORDER BY created_at DESC LIMIT 2", id+"%")
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return Run{}, services.Wrap(services.ErrNotFound, "history", "get", fmt.Sprintf("no run with id %q", id), nil)
	case 1:
		return matches[0], nil
	default:
		return Run{}, services.Wrap(services.ErrNotFound, "history", "get", fmt.Sprintf("run id %q is ambiguous", id), nil)
	}
}

// Clear deletes every recorded run and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return count, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run       Run
		createdAt string
		output    sql.NullString
		duration  sql.NullFloat64
		status    string
		errMsg    sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&createdAt,
		&run.Source,
		&output,
		&run.Format,
		&run.Shape,
		&run.SpanCount,
		&run.CueCount,
		&run.RemovedCount,
		&duration,
		&status,
		&errMsg,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, services.Wrap(services.ErrNotFound, "history", "scan", "run not found", err)
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = parsed
	run.Output = output.String
	if duration.Valid {
		value := duration.Float64
		run.DurationSeconds = &value
	}
	run.Status = Status(status)
	run.ErrorMessage = errMsg.String
	return run, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
