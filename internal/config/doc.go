// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// constellation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - FieldConfig: Particle field settings (tier, refresh rate, cell size)
//   - UIConfig: Terminal presentation settings
//   - Watcher: fsnotify-based hot reload of the config files
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the caller)
//   - Environment variables (CONSTELLATION_*)
//   - ~/.constellation/config.toml
//   - ~/.constellation/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("CONFIG_LOAD_FAILED | error=%v", err)
//	}
//	tier, err := cfg.TierOverride()
package config
