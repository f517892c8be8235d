// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/constellation/internal/quality"
)

func TestRoundMemoryGB(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  float64
	}{
		{"unknown", 0, 0},
		{"exact 8", 8 << 30, 8},
		{"15.5 GiB rounds to 16", 15*(1<<30) + (1 << 29), 16},
		{"5 GiB rounds to 4", 5 << 30, 4},
		{"7 GiB rounds to 8", 7 << 30, 8},
		{"half gig", 1 << 29, 0.5},
		{"1 GiB", 1 << 30, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RoundMemoryGB(tc.bytes))
		})
	}
}

func TestReducedMotionFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"TRUE", true},
		{" yes ", true},
		{"on", true},
		{"reduce", true},
	}

	for _, tc := range tests {
		t.Setenv(ReducedMotionEnv, tc.value)
		assert.Equal(t, tc.want, ReducedMotionFromEnv(), "value %q", tc.value)
	}
}

func TestProbe(t *testing.T) {
	t.Setenv(ReducedMotionEnv, "1")

	caps, err := Probe(context.Background())
	if err != nil {
		t.Logf("partial probe: %v", err)
	}
	assert.Positive(t, caps.Cores)
	assert.True(t, caps.ReducedMotion)
	if caps.MemoryBytes > 0 {
		assert.Positive(t, caps.MemoryGB)
		assert.NotEmpty(t, caps.MemorySource)
	}
}

func TestProbe_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	caps, err := Probe(ctx)
	require.Error(t, err)
	assert.Positive(t, caps.Cores)
}

func TestProbeCached(t *testing.T) {
	ClearCache()
	defer ClearCache()

	first, err := ProbeCached(context.Background())
	if err != nil {
		t.Skipf("probe not supported here: %v", err)
	}

	start := time.Now()
	second, err := ProbeCached(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestClearCache(t *testing.T) {
	ProbeCached(context.Background())
	ClearCache()

	capsCacheMu.Lock()
	defer capsCacheMu.Unlock()
	assert.Nil(t, capsCache)
	assert.True(t, capsCacheTime.IsZero())
}

func TestCapabilities_Signals(t *testing.T) {
	caps := Capabilities{Cores: 8, MemoryGB: 8}
	sig := caps.Signals(1920 * 1080)
	assert.Equal(t, quality.TierHigh, quality.Select(sig))

	caps.ReducedMotion = true
	assert.Equal(t, quality.TierReduced, quality.Select(caps.Signals(100)))
}

func TestCapabilities_String(t *testing.T) {
	assert.Equal(t, "4 cores, 8 GB memory, reduced motion false",
		Capabilities{Cores: 4, MemoryGB: 8}.String())
	assert.Equal(t, "2 cores, unknown memory, reduced motion true",
		Capabilities{Cores: 2, ReducedMotion: true}.String())
}
