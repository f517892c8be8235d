// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AtomicWriteFile replaces path with data. Readers see either the old file
// or the complete new one, never a partial write.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	return AtomicWriteWith(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AtomicWriteWith is AtomicWriteFile for streaming encoders such as
// png.Encode. write gets a buffered writer on a temp file next to path; the
// temp file is fsynced and renamed over path only if every step succeeds.
func AtomicWriteWith(path string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Same directory, so the rename never crosses filesystems.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	steps := []struct {
		what string
		do   func() error
	}{
		{"flush", bw.Flush},
		{"sync", tmp.Sync},
		{"chmod", func() error { return tmp.Chmod(perm) }},
		// Windows refuses to rename an open file.
		{"close", tmp.Close},
		{"rename", func() error { return os.Rename(tmp.Name(), target) }},
	}
	for _, step := range steps {
		if err := step.do(); err != nil {
			return fmt.Errorf("failed to %s %s: %w", step.what, path, err)
		}
	}
	return nil
}
