// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - The config command.

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/constellation/internal/config"
)

var configSubcommands = []string{"show", "path", "init", "get", "set", "keys"}

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	p := NewArgParser(args.Raw, "force")

	switch p.Subcommand() {
	case "", "show":
		return handleConfigShow(args)
	case "path":
		return handleConfigPath(args)
	case "init":
		return handleConfigInit(p.BoolFlag("force"))
	case "get":
		return handleConfigGet(args, p.Positional(1))
	case "set":
		return handleConfigSet(p.Positional(1), p.Positional(2), p.PositionalCount() > 2)
	case "keys":
		for _, key := range config.GetAllKeys() {
			fmt.Fprintln(stdout, key)
		}
		return nil
	default:
		return ErrUnknownSubcommand("config", p.Subcommand(), configSubcommands)
	}
}

// handleConfigShow prints the effective configuration: file, environment
// and flags applied.
func handleConfigShow(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("config", cfg).Print()
	}

	path, _ := config.ConfigPathTOML()
	fmt.Fprintln(stdout, TitleStyle.Render("constellation configuration"))
	fmt.Fprintln(stdout, DimStyle.Render("# effective values from "+path+", environment and flags"))
	fmt.Fprintln(stdout)
	if err := toml.NewEncoder(stdout).Encode(cfg); err != nil {
		return NewCommandError("config", "show", err)
	}
	return nil
}

func handleConfigPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config", ConfigPathData{Path: path, Exists: exists}).Print()
	}

	fmt.Fprintln(stdout, path)
	if !exists {
		fmt.Fprintf(stderr, "%s file does not exist; run 'constellation config init'\n", WarningStyle.Render("Note:"))
	}
	return nil
}

func handleConfigInit(force bool) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return NewValidationErrorWithExample("config", path, "file already exists", "constellation config init --force")
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", err)
	}
	fmt.Fprintf(stdout, "%s Wrote %s\n", RenderStatus("ok"), path)
	return nil
}

func handleConfigGet(args Args, key string) error {
	if key == "" {
		return ErrMissingArgument("key", "constellation config get field.tier")
	}
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	value, err := cfg.Get(key)
	if err != nil {
		return NewValidationError("key", key, err.Error())
	}

	if args.JSON {
		return NewJSONResponse("config", ConfigValueData{Key: key, Value: value}).Print()
	}
	fmt.Fprintln(stdout, value)
	return nil
}

// handleConfigSet changes one key in the config file. Environment
// overrides are not written back.
func handleConfigSet(key, value string, hasValue bool) error {
	if key == "" || !hasValue {
		return ErrMissingArgument("key and value", "constellation config set field.tier high")
	}

	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	cfg, err := loadFileConfig(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return NewValidationError("key", key, err.Error())
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		var verrs config.ValidateErrors
		if errors.As(err, &verrs) {
			return NewValidationError(key, value, strings.TrimSpace(verrs.Error()))
		}
		return NewValidationError(key, value, err.Error())
	}

	if err := config.SaveTOML(cfg, path); err != nil {
		return NewCommandError("config", "set", err)
	}
	fmt.Fprintf(stdout, "%s %s = %v\n", RenderStatus("ok"), key, value)
	return nil
}

// loadFileConfig reads only the TOML file, without environment overrides.
func loadFileConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return nil, NewCommandError("config", "load", err)
		}
	}
	if err := cfg.Migrate(); err != nil {
		return nil, NewCommandError("config", "load", err)
	}
	cfg.SetDefaults()
	return cfg, nil
}
