// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !linux

package detect

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// totalMemoryWithContext reads total RAM through gopsutil.
func totalMemoryWithContext(ctx context.Context) (uint64, string, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, "", err
	}
	return vm.Total, "gopsutil", nil
}
