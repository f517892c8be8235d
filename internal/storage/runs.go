// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound  = errors.New("bench run not found")
	ErrAmbiguous = errors.New("bench run id prefix is ambiguous")
	ErrClosed    = errors.New("bench store is closed")
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// =============================================================================
// RUN
// =============================================================================

// Run is one tier measured by one bench invocation.
type Run struct {
	ID        string
	Batch     string
	CreatedAt time.Time

	Tier          string
	Width, Height float64
	Scale         float64
	Frames        int
	Particles     int

	MeanTick  time.Duration
	P95Tick   time.Duration
	MaxTick   time.Duration
	MeanLinks float64

	Surface  string
	Cores    int
	MemoryGB float64
	Version  string
}

// ShortID returns the first eight characters of the id.
func (r *Run) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

// =============================================================================
// RUN STORE
// =============================================================================

// RunStore is the bench run database.
type RunStore struct {
	db     *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
}

// Open opens (and creates if needed) the database at path.
func Open(path string) (*RunStore, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, and an in-memory database
	// exists per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=5000",
	}
	if path != MemoryPath {
		pragmas = append([]string{"PRAGMA journal_mode=WAL"}, pragmas...)
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &RunStore{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *RunStore) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec(InitMetadata)
	return err
}

// Path returns the database path.
func (s *RunStore) Path() string { return s.path }

// Close closes the database. It is safe to call more than once.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Save inserts a run. A missing id and timestamp are filled in.
func (s *RunStore) Save(ctx context.Context, run *Run) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Batch == "" {
		run.Batch = run.ID
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, batch, created_at, tier, width, height, scale, frames, particles,
			mean_tick_ns, p95_tick_ns, max_tick_ns, mean_links, surface, cores, memory_gb, version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Batch, run.CreatedAt.UnixNano(), run.Tier, run.Width, run.Height, run.Scale,
		run.Frames, run.Particles, int64(run.MeanTick), int64(run.P95Tick), int64(run.MaxTick),
		run.MeanLinks, run.Surface, run.Cores, run.MemoryGB, run.Version)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

const selectRun = `
	SELECT id, batch, created_at, tier, width, height, scale, frames, particles,
		mean_tick_ns, p95_tick_ns, max_tick_ns, mean_links, surface, cores, memory_gb, version
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r                  Run
		created            int64
		mean, p95, maxTick int64
	)
	err := row.Scan(&r.ID, &r.Batch, &created, &r.Tier, &r.Width, &r.Height, &r.Scale,
		&r.Frames, &r.Particles, &mean, &p95, &maxTick, &r.MeanLinks, &r.Surface,
		&r.Cores, &r.MemoryGB, &r.Version)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(0, created)
	r.MeanTick = time.Duration(mean)
	r.P95Tick = time.Duration(p95)
	r.MaxTick = time.Duration(maxTick)
	return r, nil
}

// Get returns the run with the given id or unique id prefix.
func (s *RunStore) Get(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, selectRun+` WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id = ? DESC LIMIT 2`,
		id, escapeLike(id)+"%", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	defer rows.Close()

	var found []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case found[0].ID == id || len(found) == 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// ListOptions filter List.
type ListOptions struct {
	// Tier restricts the result to one tier. Empty means all.
	Tier string
	// Batch restricts the result to one invocation. Empty means all.
	Batch string
	// Limit caps the result. Zero or negative means no cap.
	Limit int
}

// List returns runs newest first.
func (s *RunStore) List(ctx context.Context, opts ListOptions) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	query := selectRun
	var (
		where []string
		args  []any
	)
	if opts.Tier != "" {
		where = append(where, "tier = ?")
		args = append(args, opts.Tier)
	}
	if opts.Batch != "" {
		where = append(where, "batch = ?")
		args = append(args, opts.Batch)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Count returns the number of stored runs.
func (s *RunStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}

// Delete removes a run by exact id.
func (s *RunStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Prune deletes every run older than before and returns how many went.
func (s *RunStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE created_at < ?", before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
