// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// bench.go - The bench and history commands.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/constellation/internal/benchmark"
	"github.com/jeranaias/constellation/internal/config"
	"github.com/jeranaias/constellation/internal/field"
	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/storage"
	"github.com/jeranaias/constellation/internal/ui/styles"
)

const (
	defaultBenchSize    = "1920x1080"
	defaultHistoryLimit = 20
	progressBarWidth    = 30
)

// =============================================================================
// BENCH
// =============================================================================

// HandleBench handles the "bench" command.
func HandleBench(args Args) error {
	cfg, cleanup, err := prepare(CmdBench, args)
	if err != nil {
		return err
	}
	defer cleanup()

	p := NewArgParser(args.Raw, "markdown", "no-save")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts, tiers, err := parseBenchOptions(p, cfg)
	if err != nil {
		return err
	}
	opts.Capabilities = probe(ctx)
	if !args.JSON && IsStderrTTY() {
		opts.Progress = progressPrinter()
	}

	runner, err := benchmark.NewRunner(opts)
	if err != nil {
		return NewValidationError("bench options", "", err.Error())
	}

	suite, err := runner.Run(ctx, tiers)
	if opts.Progress != nil {
		fmt.Fprint(stderr, "\r\033[K")
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return NewCommandError("bench", "run", errors.New("interrupted"))
		}
		return NewCommandError("bench", "run", err)
	}

	var runs []storage.Run
	if !p.BoolFlag("no-save") {
		runs, err = saveSuite(ctx, cfg, suite)
		if err != nil {
			return err
		}
	}

	switch {
	case args.JSON:
		return NewJSONResponse("bench", newBenchData(suite, runs)).Print()
	case p.BoolFlag("markdown"):
		md := suite.Markdown()
		if IsStdoutTTY() {
			md = benchmark.RenderMarkdown(md, GetTerminalWidth())
		}
		fmt.Fprint(stdout, md)
	default:
		fmt.Fprint(stdout, suite.Table())
	}

	if len(runs) > 0 && !args.JSON {
		fmt.Fprintf(stdout, "\n%s Saved %d runs (batch %s)\n", RenderStatus("ok"), len(runs), runs[0].Batch)
	}
	return nil
}

func parseBenchOptions(p *ArgParser, cfg *config.Config) (benchmark.Options, []quality.Tier, error) {
	var opts benchmark.Options

	width, height, err := ParseSize(p.FlagOrDefault("size", defaultBenchSize))
	if err != nil {
		return opts, nil, err
	}
	scale, err := p.FlagFloat("scale", 1)
	if err != nil {
		return opts, nil, err
	}
	if scale <= 0 || scale > 8 {
		return opts, nil, NewValidationError("scale", p.Flag("scale"), "must be in (0, 8]")
	}
	opts.Viewport = field.NewViewport(width, height, scale)

	opts.Frames, err = p.FlagInt("frames", cfg.Bench.Frames)
	if err != nil {
		return opts, nil, err
	}
	if opts.Frames < 1 {
		return opts, nil, NewValidationError("frames", p.Flag("frames"), "must be positive")
	}

	opts.Scenario = p.Flag("scenario")
	opts.Surface = p.Flag("surface")
	if cfg.Field.Seed > 0 {
		opts.Seed = uint64(cfg.Field.Seed)
	}

	tiers := quality.Tiers
	tier, err := cfg.TierOverride()
	if err != nil {
		return opts, nil, NewValidationError("tier", cfg.Field.Tier, err.Error())
	}
	if tier != nil {
		tiers = []quality.Tier{*tier}
	}
	return opts, tiers, nil
}

// progressPrinter rewrites one stderr status line per executed tick batch.
func progressPrinter() func(quality.Tier, int, int) {
	return func(tier quality.Tier, done, total int) {
		if done%10 != 0 && done != total {
			return
		}
		bar := styles.RenderProgressBar(progressBarWidth, 100*float64(done)/float64(total))
		fmt.Fprintf(stderr, "\r\033[K  %s %-7s [%s] %d/%d", RenderStatus("active"), tier, bar, done, total)
	}
}

func openStore(cfg *config.Config) (*storage.RunStore, error) {
	path, err := cfg.BenchDBPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(path)
	if err != nil {
		return nil, NewCommandError("bench", "open store", err)
	}
	return store, nil
}

func saveSuite(ctx context.Context, cfg *config.Config, suite *benchmark.Suite) ([]storage.Run, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	runs := suite.Runs(Version)
	for i := range runs {
		if err := store.Save(ctx, &runs[i]); err != nil {
			return nil, NewCommandError("bench", "save", err)
		}
	}
	return runs, nil
}

// =============================================================================
// HISTORY
// =============================================================================

// HandleHistory handles the "history" command.
func HandleHistory(args Args) error {
	cfg, cleanup, err := prepare(CmdHistory, args)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	p := NewArgParser(args.Raw)

	switch p.Subcommand() {
	case "", "list", "ls":
		return historyList(ctx, store, p, args)
	case "show":
		return historyShow(ctx, store, p, args)
	case "delete", "rm":
		return historyDelete(ctx, store, p)
	case "prune":
		return historyPrune(ctx, store, p)
	default:
		return ErrUnknownSubcommand("history", p.Subcommand(), []string{"list", "show", "delete", "prune"})
	}
}

func historyList(ctx context.Context, store *storage.RunStore, p *ArgParser, args Args) error {
	limit, err := p.FlagInt("limit", defaultHistoryLimit)
	if err != nil {
		return err
	}
	tier := strings.ToLower(p.Flag("tier"))
	if tier == "" {
		tier = args.Tier
	}
	if tier != "" && tier != config.TierAuto {
		if _, err := quality.ParseTier(tier); err != nil {
			return NewValidationError("tier", tier, err.Error())
		}
	} else {
		tier = ""
	}

	runs, err := store.List(ctx, storage.ListOptions{Tier: tier, Batch: p.Flag("batch"), Limit: limit})
	if err != nil {
		return NewCommandError("history", "list", err)
	}

	if args.JSON {
		data := make([]RunData, len(runs))
		for i := range runs {
			data[i] = newRunData(&runs[i])
		}
		return NewJSONResponse("history", data).Print()
	}
	fmt.Fprint(stdout, benchmark.HistoryTable(runs))
	return nil
}

func historyShow(ctx context.Context, store *storage.RunStore, p *ArgParser, args Args) error {
	id := p.Positional(1)
	if id == "" {
		return ErrMissingArgument("id", "constellation history show <id>")
	}
	run, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("history", newRunData(run)).Print()
	}
	fmt.Fprintln(stdout, benchmark.RunDetail(run))
	return nil
}

func historyDelete(ctx context.Context, store *storage.RunStore, p *ArgParser) error {
	id := p.Positional(1)
	if id == "" {
		return ErrMissingArgument("id", "constellation history delete <id>")
	}
	run, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, run.ID); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s Deleted run %s\n", RenderStatus("ok"), run.ShortID())
	return nil
}

func historyPrune(ctx context.Context, store *storage.RunStore, p *ArgParser) error {
	raw := p.Flag("older-than")
	if raw == "" {
		return ErrMissingArgument("older-than", "constellation history prune --older-than 30d")
	}
	age, err := ParseAge(raw)
	if err != nil {
		return err
	}
	n, err := store.Prune(ctx, time.Now().Add(-age))
	if err != nil {
		return NewCommandError("history", "prune", err)
	}
	fmt.Fprintf(stdout, "%s Pruned %d runs older than %s\n", RenderStatus("ok"), n, raw)
	return nil
}

// ParseAge parses a Go duration or a whole number of days ("30d").
func ParseAge(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, NewValidationErrorWithExample("age", s, "invalid day count", "30d")
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, NewValidationErrorWithExample("age", s, "expected a duration", "72h or 30d")
	}
	return d, nil
}
