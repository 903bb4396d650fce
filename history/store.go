// Package history keeps a local SQLite log of export runs so earlier
// decisions can be reviewed and drops recalled.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/zenibako/autocue/cue"
	"github.com/zenibako/autocue/export"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes. Older databases
// must be deleted.
const schemaVersion = 1

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var (
	// ErrSchemaMismatch indicates the database was written by another
	// schema version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrRunNotFound is returned by Records for an unknown run ID.
	ErrRunNotFound = errors.New("run not found")
)

// Run is one recorded export.
type Run struct {
	ID        string
	CreatedAt time.Time
	Complete  bool
	Artifact  string
	Summary   export.Summary
}

// Store is the history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
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

// Path returns the database file path.
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

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Record stores a report and the path of the file it was written to. An
// empty artifact marks a dry run.
func (s *Store) Record(ctx context.Context, report export.Report, artifact string) error {
	summary := report.Summary()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, complete, artifact, exported, invalidated, skipped, cues, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.SessionID,
		report.CreatedAt.UTC().Format(timeLayout),
		boolToInt(report.Complete),
		artifact,
		summary.Exported,
		summary.Invalidated,
		summary.Skipped,
		summary.Cues,
		summary.Warnings,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", report.SessionID, err)
	}

	for i, rec := range report.Records {
		cues, err := json.Marshal(nonNilCues(rec.Cues))
		if err != nil {
			return fmt.Errorf("encode cues for track %s: %w", rec.TrackID, err)
		}
		warnings, err := json.Marshal(nonNilStrings(rec.Warnings))
		if err != nil {
			return fmt.Errorf("encode warnings for track %s: %w", rec.TrackID, err)
		}

		var drop sql.NullFloat64
		if rec.Drop != nil {
			drop = sql.NullFloat64{Float64: *rec.Drop, Valid: true}
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO records (run_id, position, track_id, track, status, reason, drop_time, cues, warnings)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.SessionID, i, rec.TrackID, rec.Track, string(rec.Status), rec.Reason, drop, string(cues), string(warnings),
		)
		if err != nil {
			return fmt.Errorf("insert record for track %s: %w", rec.TrackID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", report.SessionID, err)
	}
	log.Debug("Recorded run in history", "run", report.SessionID, "records", len(report.Records))
	return nil
}

// Recent lists up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, created_at, complete, artifact, exported, invalidated, skipped, cues, warnings
		FROM runs ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run       Run
			createdAt string
			complete  int
		)
		if err := rows.Scan(&run.ID, &createdAt, &complete, &run.Artifact,
			&run.Summary.Exported, &run.Summary.Invalidated, &run.Summary.Skipped,
			&run.Summary.Cues, &run.Summary.Warnings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for run %s: %w", run.ID, err)
		}
		run.Complete = complete != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Records returns a run's per-track records in their original order.
func (s *Store) Records(ctx context.Context, runID string) ([]export.Record, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs WHERE id = ?", runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check run %s: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT track_id, track, status, reason, drop_time, cues, warnings
		 FROM records WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []export.Record
	for rows.Next() {
		var (
			rec      export.Record
			status   string
			drop     sql.NullFloat64
			cues     string
			warnings string
		)
		if err := rows.Scan(&rec.TrackID, &rec.Track, &status, &rec.Reason, &drop, &cues, &warnings); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.Status = export.Status(status)
		if drop.Valid {
			d := drop.Float64
			rec.Drop = &d
		}
		if err := json.Unmarshal([]byte(cues), &rec.Cues); err != nil {
			return nil, fmt.Errorf("decode cues for track %s: %w", rec.TrackID, err)
		}
		if err := json.Unmarshal([]byte(warnings), &rec.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings for track %s: %w", rec.TrackID, err)
		}
		if len(rec.Warnings) == 0 {
			rec.Warnings = nil
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LastDrop returns the most recent exported drop for a track.
func (s *Store) LastDrop(ctx context.Context, trackID string) (float64, bool, error) {
	var drop sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT r.drop_time FROM records r JOIN runs ON runs.id = r.run_id
		 WHERE r.track_id = ? AND r.status = ? AND r.drop_time IS NOT NULL
		 ORDER BY runs.created_at DESC LIMIT 1`,
		trackID, string(export.StatusExported),
	).Scan(&drop)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query last drop for track %s: %w", trackID, err)
	}
	return drop.Float64, drop.Valid, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNilCues(points []cue.Point) []cue.Point {
	if points == nil {
		return []cue.Point{}
	}
	return points
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
