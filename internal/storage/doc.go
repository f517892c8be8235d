// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists benchmark runs in SQLite.
//
// The database lives at bench.db_path (default ~/.constellation/bench.db)
// and is opened with the pure Go modernc.org/sqlite driver, so no cgo is
// needed.
//
// # Usage
//
//	store, err := storage.Open(path)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	err = store.Save(ctx, &storage.Run{Tier: "medium", Frames: 300})
//	runs, err := store.List(ctx, storage.ListOptions{Limit: 20})
//
// Runs are returned newest first. Get accepts a full id or a unique
// prefix of one and returns ErrNotFound when nothing matches.
package storage
