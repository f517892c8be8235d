// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing, global flags and help for constellation.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/jeranaias/constellation/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output streams. Tests replace them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdWindow
	CmdSnapshot
	CmdBench
	CmdHistory
	CmdTiers
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdTUI:      "tui",
	CmdWindow:   "window",
	CmdSnapshot: "snapshot",
	CmdBench:    "bench",
	CmdHistory:  "history",
	CmdTiers:    "tiers",
	CmdConfig:   "config",
	CmdVersion:  "version",
	CmdHelp:     "help",
}

// String returns the command name.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Tier          string
	ReducedMotion bool
	Seed          int64
	SeedSet       bool
	NoHUD         bool
	Debug         bool
	Verbose       bool
	JSON          bool

	// Subcommand is the first argument after the command.
	Subcommand string

	// Raw holds the arguments after the command, global flags removed.
	Raw []string
}

// Apply writes the flag overrides into cfg. It is also handed to the
// terminal host so a hot-reloaded config keeps them.
func (a Args) Apply(cfg *config.Config) {
	if a.Tier != "" {
		cfg.Field.Tier = a.Tier
	}
	if a.ReducedMotion {
		cfg.Field.ReducedMotion = true
	}
	if a.SeedSet {
		cfg.Field.Seed = a.Seed
	}
	if a.NoHUD {
		cfg.UI.ShowHUD = false
	}
	if a.Debug {
		cfg.Log.Debug = true
	}
}

const usageText = `constellation - an adaptive particle-field backdrop

Usage:
  constellation                      Start the terminal backdrop (default)
  constellation tui                  Same as above
  constellation window               Open the desktop window
  constellation snapshot [options]   Render headlessly to a PNG
  constellation bench [options]      Measure tick cost per tier
  constellation history [sub]        Stored benchmark runs
  constellation tiers                Show tiers and the one this machine gets
  constellation config [sub]         Configuration
  constellation version              Show version
  constellation help                 Show this help

Global flags:
  --tier NAME          auto, reduced, low, medium or high
  --reduced-motion     Force the reduced tier
  --seed N             Reproducible particle placement
  --no-hud             Hide the terminal HUD line
  --debug              Write a debug log (~/.constellation/debug.log)
  -v, --verbose        Log to stderr (non-interactive commands)
  --json               Machine-readable output where supported

Terminal keys:
  q / ctrl+c  quit    r  reset    c  confetti    h  toggle HUD    ?  help

Snapshot:
  constellation snapshot --out field.png --size 1920x1080 --scale 2
    --out FILE           Output path (default: constellation.png)
    --size WxH           Logical viewport (default: 1280x720)
    --scale N            Device pixel ratio (default: 1)
    --frames N           Executed ticks before capture (default: 60)
    --pointer X,Y        Hold the pointer at a logical position
    --transparent        Keep the alpha channel instead of the background

Bench:
  constellation bench --frames 600 --scenario hover --markdown
    --frames N           Executed ticks per tier (default: bench.frames)
    --size WxH           Logical viewport (default: 1920x1080)
    --scale N            Device pixel ratio (default: 1)
    --scenario NAME      idle, hover or sweep (default: sweep)
    --surface NAME       raster or null (default: raster)
    --markdown           Render a Markdown report
    --no-save            Do not record the runs
  With --tier only that tier is measured.

History:
  constellation history [list]       Newest runs first
    --tier NAME  --batch ID  --limit N (default: 20)
  constellation history show <id>    One run (id or unique prefix)
  constellation history delete <id>  Remove a run
  constellation history prune --older-than 30d

Config:
  constellation config show          Print the effective configuration
  constellation config path          Print the config file path
  constellation config init [--force] Write the default config file
  constellation config get <key>     e.g. field.tier
  constellation config set <key> <value>

Environment:
  CONSTELLATION_HOME, CONSTELLATION_TIER, CONSTELLATION_REDUCED_MOTION,
  CONSTELLATION_REFRESH_HZ, CONSTELLATION_SEED, CONSTELLATION_DEBUG

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Fprintf(stdout, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Fprintf(stdout, "constellation version %s\n", Version)
	fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(stdout, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments and returns the command and args.
func ParseArgs(argv []string) (Command, Args, error) {
	remaining, parsedArgs, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, parsedArgs, err
	}

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		parsedArgs.Subcommand = remaining[0]
	}

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs, nil
	case "window", "win":
		return CmdWindow, parsedArgs, nil
	case "snapshot", "snap":
		return CmdSnapshot, parsedArgs, nil
	case "bench", "benchmark":
		return CmdBench, parsedArgs, nil
	case "history", "runs":
		return CmdHistory, parsedArgs, nil
	case "tiers", "tier":
		return CmdTiers, parsedArgs, nil
	case "config":
		return CmdConfig, parsedArgs, nil
	case "version", "--version":
		return CmdVersion, parsedArgs, nil
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs, nil
	default:
		return CmdHelp, parsedArgs, NewValidationErrorWithExample("command", cmd, "unknown command", "constellation help")
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args, error) {
	var remaining []string
	var parsedArgs Args

	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", ErrMissingArgument(name, "--"+name+" <value>")
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, inline, hasInline := strings.Cut(arg, "=")

		switch name {
		case "--reduced-motion":
			parsedArgs.ReducedMotion = true
		case "--no-hud":
			parsedArgs.NoHUD = true
		case "--debug":
			parsedArgs.Debug = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--tier":
			v := inline
			if !hasInline {
				var err error
				if v, err = value(&i, "tier"); err != nil {
					return nil, parsedArgs, err
				}
			}
			parsedArgs.Tier = strings.ToLower(strings.TrimSpace(v))
		case "--seed":
			v := inline
			if !hasInline {
				var err error
				if v, err = value(&i, "seed"); err != nil {
					return nil, parsedArgs, err
				}
			}
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, parsedArgs, NewValidationError("seed", v, "must be an integer")
			}
			parsedArgs.Seed = seed
			parsedArgs.SeedSet = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs, nil
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// Run dispatches a parsed command.
func Run(cmd Command, args Args) error {
	switch cmd {
	case CmdTUI:
		return HandleTUI(args)
	case CmdWindow:
		return HandleWindow(args)
	case CmdSnapshot:
		return HandleSnapshot(args)
	case CmdBench:
		return HandleBench(args)
	case CmdHistory:
		return HandleHistory(args)
	case CmdTiers:
		return HandleTiers(args)
	case CmdConfig:
		return HandleConfig(args)
	case CmdVersion:
		return HandleVersion(args)
	default:
		HandleHelp()
		return nil
	}
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print()
	}
	PrintVersion()
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
