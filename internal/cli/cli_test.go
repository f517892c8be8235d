// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/storage"
)

// captureOutput swaps the package output streams for buffers.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out, &errOut
}

// isolateConfig points the config directory at a temp dir and clears the
// environment overrides.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.HomeEnv, dir)
	for _, key := range []string{
		"CONSTELLATION_TIER", "CONSTELLATION_REDUCED_MOTION",
		"CONSTELLATION_REFRESH_HZ", "CONSTELLATION_SEED", "CONSTELLATION_DEBUG",
	} {
		t.Setenv(key, "")
	}
	return dir
}

// =============================================================================
// ARG PARSER
// =============================================================================

func TestArgParser(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "subcommand with flag",
			args:    []string{"list", "--limit", "5"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "5", p.Flag("limit"))
				assert.Equal(t, 1, p.PositionalCount())
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"--size=640x360"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "640x360", p.Flag("size"))
			},
		},
		{
			name:    "declared bool does not consume next argument",
			args:    []string{"init", "--force", "extra"},
			bools:   []string{"force"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("force"))
				assert.Equal(t, "extra", p.Positional(1))
			},
		},
		{
			name: "trailing flag is bool",
			args: []string{"--markdown"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("markdown"))
				assert.True(t, p.HasFlag("--markdown"))
			},
		},
		{
			name:  "explicit false",
			args:  []string{"--transparent=false"},
			bools: []string{"transparent"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("transparent"))
				assert.True(t, p.HasFlag("transparent"))
			},
		},
		{
			name:    "positionals",
			args:    []string{"set", "field.tier", "high"},
			wantSub: "set",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "field.tier", p.Positional(1))
				assert.Equal(t, "high", p.Positional(2))
				assert.Equal(t, "", p.Positional(3))
				assert.Equal(t, "", p.Positional(-1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			assert.Equal(t, tt.wantSub, p.Subcommand())
			assert.Equal(t, tt.args, p.Raw())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_Numbers(t *testing.T) {
	p := NewArgParser([]string{"--frames", "120", "--scale", "1.5", "--bad", "x"})

	n, err := p.FlagInt("frames", 1)
	require.NoError(t, err)
	assert.Equal(t, 120, n)

	n, err = p.FlagInt("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	f, err := p.FlagFloat("scale", 1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	_, err = p.FlagInt("bad", 0)
	assert.True(t, IsValidationError(err))
	_, err = p.FlagFloat("bad", 0)
	assert.True(t, IsValidationError(err))
}

func TestParseSizeAndPoint(t *testing.T) {
	w, h, err := ParseSize("1920x1080")
	require.NoError(t, err)
	assert.Equal(t, 1920.0, w)
	assert.Equal(t, 1080.0, h)

	w, h, err = ParseSize(" 640X360 ")
	require.NoError(t, err)
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 360.0, h)

	for _, bad := range []string{"", "1920", "0x10", "ax10", "10x-1"} {
		_, _, err := ParseSize(bad)
		assert.Error(t, err, bad)
		assert.True(t, IsValidationError(err), bad)
	}

	x, y, err := ParsePoint("10, 20.5")
	require.NoError(t, err)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.5, y)

	_, _, err = ParsePoint("10")
	assert.True(t, IsValidationError(err))
	_, _, err = ParsePoint("a,b")
	assert.True(t, IsValidationError(err))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"true", "YES", "y", "1", "on"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "no", "N", "0", "off"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, b, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"0d", 0, false},
		{"72h", 72 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"xd", 0, true},
		{"-1d", 0, true},
		{"-5h", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAge(tt.in)
			if tt.wantErr {
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// COMMAND PARSING
// =============================================================================

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		argv    []string
		want    Command
		wantSub string
	}{
		{nil, CmdTUI, ""},
		{[]string{"tui"}, CmdTUI, ""},
		{[]string{"win"}, CmdWindow, ""},
		{[]string{"snap", "--out", "x.png"}, CmdSnapshot, ""},
		{[]string{"benchmark"}, CmdBench, ""},
		{[]string{"runs", "show", "abc"}, CmdHistory, "show"},
		{[]string{"TIERS"}, CmdTiers, ""},
		{[]string{"config", "get", "field.tier"}, CmdConfig, "get"},
		{[]string{"--version"}, CmdVersion, ""},
		{[]string{"-h"}, CmdHelp, ""},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			cmd, args, err := ParseArgs(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
			assert.Equal(t, tt.wantSub, args.Subcommand)
		})
	}
}

func TestParseArgs_UnknownCommand(t *testing.T) {
	cmd, _, err := ParseArgs([]string{"launch"})
	assert.Equal(t, CmdHelp, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args, err := ParseArgs([]string{
		"--tier", "HIGH", "snapshot", "--reduced-motion", "--seed=42",
		"--no-hud", "--json", "-v", "--debug", "--size", "10x10",
	})
	require.NoError(t, err)
	assert.Equal(t, CmdSnapshot, cmd)
	assert.Equal(t, "high", args.Tier)
	assert.True(t, args.ReducedMotion)
	assert.True(t, args.SeedSet)
	assert.Equal(t, int64(42), args.Seed)
	assert.True(t, args.NoHUD)
	assert.True(t, args.JSON)
	assert.True(t, args.Verbose)
	assert.True(t, args.Debug)
	assert.Equal(t, []string{"--size", "10x10"}, args.Raw)
}

func TestParseArgs_GlobalFlagErrors(t *testing.T) {
	_, _, err := ParseArgs([]string{"--seed", "abc"})
	assert.True(t, IsValidationError(err))

	_, _, err = ParseArgs([]string{"bench", "--tier"})
	assert.True(t, IsValidationError(err))
}

func TestArgs_Apply(t *testing.T) {
	cfg := config.Default()
	Args{}.Apply(cfg)
	assert.Equal(t, config.Default(), cfg, "empty args change nothing")

	Args{Tier: "low", ReducedMotion: true, Seed: 9, SeedSet: true, NoHUD: true, Debug: true}.Apply(cfg)
	assert.Equal(t, "low", cfg.Field.Tier)
	assert.True(t, cfg.Field.ReducedMotion)
	assert.Equal(t, int64(9), cfg.Field.Seed)
	assert.False(t, cfg.UI.ShowHUD)
	assert.True(t, cfg.Log.Debug)
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "bench", CmdBench.String())
	assert.Equal(t, "unknown", Command(99).String())
}

// =============================================================================
// ERRORS
// =============================================================================

func TestErrors(t *testing.T) {
	assert.Nil(t, NewCommandError("bench", "run", nil))

	base := errors.New("disk full")
	err := NewCommandError("bench", "save", base)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "bench save failed: disk full", err.Error())
	assert.Equal(t, ExitGeneralError, GetExitCode(err))
	assert.Equal(t, ExitSuccess, GetExitCode(nil))

	verr := NewValidationErrorWithExample("size", "abc", "expected WIDTHxHEIGHT", "1920x1080")
	assert.Contains(t, verr.Error(), "invalid size: expected WIDTHxHEIGHT (got: abc)")
	assert.Contains(t, verr.Error(), "Example: 1920x1080")
	assert.Equal(t, ExitUsageError, GetExitCode(verr))

	var buf bytes.Buffer
	DisplayError(&buf, err)
	assert.Equal(t, "Error: bench save failed: disk full\n", buf.String())
}

func TestDisplayErrorJSON(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewValidationError("frames", "0", "must be positive"), "validation_error"},
		{NewCommandError("history", "show", storage.ErrNotFound), "not_found_error"},
		{NewCommandError("bench", "run", errors.New("boom")), "command_error"},
		{errors.New("plain"), "generic_error"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayErrorJSON(&buf, tt.err)
			var out map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
			assert.Equal(t, tt.want, out["error_type"])
			assert.Equal(t, false, out["success"])
		})
	}
}

// =============================================================================
// SNAPSHOT
// =============================================================================

func TestParseSnapshotOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Field.Tier = "low"
	cfg.Field.Seed = 5

	opts, err := parseSnapshotOptions(NewArgParser([]string{"--size", "320x200", "--scale", "2", "--frames", "3", "--pointer", "10,20"}), cfg)
	require.NoError(t, err)
	assert.Equal(t, 320.0, opts.Viewport.Width)
	assert.Equal(t, 2.0, opts.Viewport.PixelRatioX)
	assert.Equal(t, 3, opts.Frames)
	require.NotNil(t, opts.Tier)
	assert.Equal(t, quality.TierLow, *opts.Tier)
	assert.Equal(t, uint64(5), opts.Seed)
	assert.True(t, opts.HasPointer)
	assert.Equal(t, 10.0, opts.PointerX)
	assert.Equal(t, 20.0, opts.PointerY)

	opts, err = parseSnapshotOptions(NewArgParser(nil), config.Default())
	require.NoError(t, err)
	assert.Equal(t, 1280.0, opts.Viewport.Width)
	assert.Equal(t, defaultSnapshotFrames, opts.Frames)
	assert.Nil(t, opts.Tier)
	assert.False(t, opts.HasPointer)

	for _, bad := range [][]string{
		{"--scale", "0"},
		{"--scale", "9"},
		{"--frames", "0"},
		{"--frames", "many"},
		{"--size", "big"},
		{"--pointer", "1"},
	} {
		_, err := parseSnapshotOptions(NewArgParser(bad), config.Default())
		assert.True(t, IsValidationError(err), bad)
	}
}

func TestRenderSnapshot(t *testing.T) {
	tier := quality.TierLow
	opts := snapshotOptions{
		Viewport:   field.NewViewport(320, 200, 2),
		Frames:     5,
		Tier:       &tier,
		Seed:       7,
		HasPointer: true,
		PointerX:   160,
		PointerY:   100,
	}

	raster, sim, err := renderSnapshot(opts)
	require.NoError(t, err)
	defer sim.Dispose()

	w, h := raster.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 400, h)

	stats := sim.Stats()
	assert.Equal(t, uint64(5), stats.Executed)
	assert.Equal(t, quality.TierLow, stats.Tier)
	assert.Equal(t, quality.ConfigFor(quality.TierLow).ParticleCount(320, 200), stats.Particles)

	// Same seed, same picture.
	raster2, sim2, err := renderSnapshot(opts)
	require.NoError(t, err)
	defer sim2.Dispose()

	var a, b bytes.Buffer
	require.NoError(t, raster.EncodePNG(&a))
	require.NoError(t, raster2.EncodePNG(&b))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

// =============================================================================
// BENCH / TIERS
// =============================================================================

func TestParseBenchOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Bench.Frames = 42

	opts, tiers, err := parseBenchOptions(NewArgParser([]string{"--scenario", "hover", "--surface", "null"}), cfg)
	require.NoError(t, err)
	assert.Equal(t, 42, opts.Frames)
	assert.Equal(t, 1920.0, opts.Viewport.Width)
	assert.Equal(t, "hover", opts.Scenario)
	assert.Equal(t, "null", opts.Surface)
	assert.Equal(t, quality.Tiers, tiers)
	assert.Zero(t, opts.Seed)

	cfg.Field.Tier = "medium"
	cfg.Field.Seed = 3
	opts, tiers, err = parseBenchOptions(NewArgParser([]string{"--frames", "10"}), cfg)
	require.NoError(t, err)
	assert.Equal(t, 10, opts.Frames)
	assert.Equal(t, []quality.Tier{quality.TierMedium}, tiers)
	assert.Equal(t, uint64(3), opts.Seed)

	_, _, err = parseBenchOptions(NewArgParser([]string{"--frames=0"}), config.Default())
	assert.True(t, IsValidationError(err))
}

func TestBuildTierReport(t *testing.T) {
	caps := detect.Capabilities{Cores: 8, MemoryGB: 16}

	t.Run("override applies", func(t *testing.T) {
		cfg := config.Default()
		cfg.Field.Tier = "high"
		r, err := buildTierReport(cfg, caps, 80, 24)
		require.NoError(t, err)
		assert.Equal(t, 640.0, r.Width)
		assert.Equal(t, 384.0, r.Height)
		require.NotNil(t, r.Override)
		assert.Equal(t, quality.TierHigh, r.Effective)
		assert.Equal(t, quality.ConfigFor(quality.TierHigh).ParticleCount(640, 384), r.Particles)
	})

	t.Run("reduced motion beats override", func(t *testing.T) {
		cfg := config.Default()
		cfg.Field.Tier = "high"
		cfg.Field.ReducedMotion = true
		r, err := buildTierReport(cfg, caps, 80, 24)
		require.NoError(t, err)
		assert.True(t, r.FromReduced)
		assert.Equal(t, quality.TierReduced, r.Selected)
		assert.Equal(t, quality.TierReduced, r.Effective)

		var buf bytes.Buffer
		printTierReport(&buf, r)
		assert.Contains(t, buf.String(), "high ignored, reduced motion wins")
	})

	t.Run("auto uses selection", func(t *testing.T) {
		r, err := buildTierReport(config.Default(), caps, 80, 24)
		require.NoError(t, err)
		assert.Nil(t, r.Override)
		assert.Equal(t, r.Selected, r.Effective)

		data := newTiersData(r)
		assert.Len(t, data.Tiers, len(quality.Tiers))
		assert.Empty(t, data.Override)
		assert.Equal(t, r.Effective.String(), data.Effective)
	})
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

func TestHandleConfig(t *testing.T) {
	dir := isolateConfig(t)
	out, _ := captureOutput(t)

	require.NoError(t, HandleConfig(Args{Raw: []string{"init"}}))
	assert.FileExists(t, filepath.Join(dir, "config.toml"))

	err := HandleConfig(Args{Raw: []string{"init"}})
	assert.True(t, IsValidationError(err), "init refuses to overwrite")
	require.NoError(t, HandleConfig(Args{Raw: []string{"init", "--force"}}))

	require.NoError(t, HandleConfig(Args{Raw: []string{"set", "field.tier", "high"}}))
	require.NoError(t, HandleConfig(Args{Raw: []string{"set", "field.refresh_hz", "30"}}))

	out.Reset()
	require.NoError(t, HandleConfig(Args{Raw: []string{"get", "field.tier"}}))
	assert.Equal(t, "high\n", out.String())

	cfg, err := config.LoadFromPath(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "high", cfg.Field.Tier)
	assert.Equal(t, 30, cfg.Field.RefreshHz)

	// Flags win over the file for get and show.
	out.Reset()
	require.NoError(t, HandleConfig(Args{Tier: "low", Raw: []string{"get", "field.tier"}}))
	assert.Equal(t, "low\n", out.String())

	out.Reset()
	require.NoError(t, HandleConfig(Args{Raw: []string{"show"}}))
	assert.Contains(t, out.String(), "[field]")
	assert.Contains(t, out.String(), `tier = "high"`)
}

func TestHandleConfig_Errors(t *testing.T) {
	isolateConfig(t)
	captureOutput(t)

	tests := []struct {
		name string
		raw  []string
	}{
		{"invalid value", []string{"set", "field.tier", "ultra"}},
		{"out of range", []string{"set", "field.refresh_hz", "1000"}},
		{"unknown key", []string{"set", "field.sparkle", "1"}},
		{"missing value", []string{"set", "field.tier"}},
		{"missing key", []string{"get"}},
		{"unknown get", []string{"get", "nope"}},
		{"unknown subcommand", []string{"explode"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleConfig(Args{Raw: tt.raw})
			require.Error(t, err)
			assert.Equal(t, ExitUsageError, GetExitCode(err))
		})
	}
}

func TestHandleConfig_JSON(t *testing.T) {
	dir := isolateConfig(t)
	out, _ := captureOutput(t)

	require.NoError(t, HandleConfig(Args{JSON: true, Raw: []string{"path"}}))

	var resp struct {
		Success bool           `json:"success"`
		Command string         `json:"command"`
		Data    ConfigPathData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "config", resp.Command)
	assert.Equal(t, filepath.Join(dir, "config.toml"), resp.Data.Path)
	assert.False(t, resp.Data.Exists)
}

// =============================================================================
// HISTORY COMMAND
// =============================================================================

func seedRuns(t *testing.T, dir string) []storage.Run {
	t.Helper()
	store, err := storage.Open(filepath.Join(dir, "bench.db"))
	require.NoError(t, err)
	defer store.Close()

	now := time.Now()
	runs := []storage.Run{
		{Batch: "b1", CreatedAt: now.Add(-48 * time.Hour), Tier: "low", Width: 640, Height: 360, Scale: 1,
			Frames: 10, Particles: 55, MeanTick: time.Millisecond, Surface: "null", Version: "test"},
		{Batch: "b2", CreatedAt: now, Tier: "high", Width: 640, Height: 360, Scale: 1,
			Frames: 10, Particles: 140, MeanTick: 2 * time.Millisecond, Surface: "null", Version: "test"},
	}
	for i := range runs {
		require.NoError(t, store.Save(context.Background(), &runs[i]))
	}
	return runs
}

func TestHandleHistory(t *testing.T) {
	dir := isolateConfig(t)
	out, _ := captureOutput(t)
	runs := seedRuns(t, dir)

	require.NoError(t, HandleHistory(Args{}))
	assert.Contains(t, out.String(), "high")
	assert.Contains(t, out.String(), "low")

	out.Reset()
	require.NoError(t, HandleHistory(Args{JSON: true, Raw: []string{"list", "--tier", "high"}}))
	var resp struct {
		Data []RunData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "high", resp.Data[0].Tier)
	assert.Equal(t, 2000.0, resp.Data[0].MeanTickUs)

	out.Reset()
	require.NoError(t, HandleHistory(Args{Raw: []string{"show", runs[0].ID[:8]}}))
	assert.Contains(t, out.String(), runs[0].ID[:8])

	require.NoError(t, HandleHistory(Args{Raw: []string{"prune", "--older-than", "1d"}}))
	require.NoError(t, HandleHistory(Args{Raw: []string{"delete", runs[1].ID}}))

	err := HandleHistory(Args{Raw: []string{"show", runs[1].ID}})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHandleHistory_Errors(t *testing.T) {
	isolateConfig(t)
	captureOutput(t)

	for _, raw := range [][]string{
		{"show"},
		{"delete"},
		{"prune"},
		{"prune", "--older-than", "soon"},
		{"list", "--tier", "ultra"},
		{"list", "--limit", "x"},
		{"rewind"},
	} {
		err := HandleHistory(Args{Raw: raw})
		assert.True(t, IsValidationError(err), raw)
	}
}

// =============================================================================
// VERSION / HELP
// =============================================================================

func TestHandleVersion(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, HandleVersion(Args{}))
	assert.Contains(t, out.String(), "constellation version "+Version)

	out.Reset()
	require.NoError(t, HandleVersion(Args{JSON: true}))
	var resp struct {
		Data VersionData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, Version, resp.Data.Version)
	assert.NotEmpty(t, resp.Data.GoVersion)
}

func TestHandleHelp(t *testing.T) {
	out, _ := captureOutput(t)
	HandleHelp()
	for _, want := range []string{"snapshot", "bench", "history", "--reduced-motion", Version} {
		assert.Contains(t, out.String(), want)
	}
}

// =============================================================================
// STYLES / TERMINAL
// =============================================================================

func TestRenderStatus(t *testing.T) {
	tests := map[string]string{
		"ok":      "[OK]",
		"FAIL":    "[FAIL]",
		"warn":    "[WARN]",
		"active":  "[..]",
		"skipped": "[SKIPPED]",
	}
	for status, want := range tests {
		assert.Contains(t, RenderStatus(status), want, status)
	}
	assert.Contains(t, RenderSeparator(5), "=====")
	assert.NotContains(t, RenderSeparator(5), "======")
}

func TestTTYRequiredError(t *testing.T) {
	err := &TTYRequiredError{Operation: "run the terminal backdrop"}
	assert.Equal(t, "stdin is not a terminal; cannot run the terminal backdrop", err.Error())
	assert.Equal(t, "stdin is not a terminal", (&TTYRequiredError{}).Error())
	assert.Equal(t, ExitGeneralError, GetExitCode(err))
}

func TestProgressPrinter(t *testing.T) {
	_, errOut := captureOutput(t)
	printProgress := progressPrinter()

	printProgress(quality.TierLow, 3, 40)
	assert.Empty(t, errOut.String(), "only every tenth tick is drawn")

	printProgress(quality.TierLow, 20, 40)
	assert.Contains(t, errOut.String(), "20/40")
	assert.Contains(t, errOut.String(), "low")

	errOut.Reset()
	printProgress(quality.TierHigh, 7, 7)
	assert.Contains(t, errOut.String(), "7/7")
}
