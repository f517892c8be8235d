// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema creates the bench database.
const Schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- One row per tier per bench invocation
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    batch TEXT NOT NULL,           -- shared by the runs of one invocation
    created_at INTEGER NOT NULL,   -- Unix nanoseconds
    tier TEXT NOT NULL,
    width REAL NOT NULL,           -- logical viewport
    height REAL NOT NULL,
    scale REAL NOT NULL,           -- device pixel ratio
    frames INTEGER NOT NULL,       -- executed ticks
    particles INTEGER NOT NULL,
    mean_tick_ns INTEGER NOT NULL,
    p95_tick_ns INTEGER NOT NULL,
    max_tick_ns INTEGER NOT NULL,
    mean_links REAL NOT NULL,
    surface TEXT NOT NULL,         -- raster | recorder
    cores INTEGER NOT NULL,
    memory_gb REAL NOT NULL,
    version TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_tier ON runs(tier);
CREATE INDEX IF NOT EXISTS idx_runs_batch ON runs(batch);
`

// InitMetadata seeds the metadata table.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
