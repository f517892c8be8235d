// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// constellation.
//
// The file is TOML or JSON. CONSTELLATION_* variables override it and
// Validate checks the result. Lookup order:
//   - ~/.constellation/config.toml
//   - ~/.constellation/config.json
//   - Default()
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/util"
)

// CurrentVersion is written into new and migrated configs.
const CurrentVersion = "1"

// TierAuto selects the tier from device capabilities.
const TierAuto = "auto"

// HomeEnv overrides the configuration directory.
const HomeEnv = "CONSTELLATION_HOME"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete constellation configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Field FieldConfig `toml:"field" json:"field"`
	UI    UIConfig    `toml:"ui" json:"ui"`
	Log   LogConfig   `toml:"log" json:"log"`
	Bench BenchConfig `toml:"bench" json:"bench"`
}

// FieldConfig controls the particle field.
type FieldConfig struct {
	// Tier is "auto" or a tier name: reduced, low, medium, high
	Tier string `toml:"tier" json:"tier"`
	// ReducedMotion forces the reduced tier
	ReducedMotion bool `toml:"reduced_motion" json:"reduced_motion"`
	// RefreshHz is how often the host scheduler fires (10-240)
	RefreshHz int `toml:"refresh_hz" json:"refresh_hz"`
	// CellWidthPx and CellHeightPx map one terminal cell to logical pixels
	CellWidthPx  int `toml:"cell_width_px" json:"cell_width_px"`
	CellHeightPx int `toml:"cell_height_px" json:"cell_height_px"`
	// Seed makes particle placement reproducible (0 = time seeded)
	Seed int64 `toml:"seed" json:"seed"`
	// Confetti enables click bursts
	Confetti bool `toml:"confetti" json:"confetti"`
}

// UIConfig contains terminal presentation settings.
type UIConfig struct {
	ShowHUD bool `toml:"show_hud" json:"show_hud"`
	// Background is the colour layers are composited over
	Background string `toml:"background" json:"background"`
	// ColorMode is auto, truecolor, ansi256, ansi or ascii
	ColorMode string `toml:"color_mode" json:"color_mode"`
}

// LogConfig controls debug logging.
type LogConfig struct {
	Debug bool `toml:"debug" json:"debug"`
	// Path is the debug log file (empty = ~/.constellation/debug.log)
	Path string `toml:"path" json:"path"`
}

// BenchConfig controls the benchmark command.
type BenchConfig struct {
	// DBPath is the results database (empty = ~/.constellation/bench.db)
	DBPath string `toml:"db_path" json:"db_path"`
	// Frames is the number of executed ticks per tier
	Frames int `toml:"frames" json:"frames"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Field: FieldConfig{
			Tier:         TierAuto,
			RefreshHz:    60,
			CellWidthPx:  8,
			CellHeightPx: 16,
			Confetti:     true,
		},
		UI: UIConfig{
			ShowHUD:    true,
			Background: "#000000",
			ColorMode:  "auto",
		},
		Bench: BenchConfig{
			Frames: 300,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the constellation configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".constellation"), nil
}

// ConfigPathTOML is config.toml inside ConfigDir.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON is the legacy config.json inside ConfigDir.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir creates ConfigDir if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// LogPath returns the debug log path.
func (c *Config) LogPath() (string, error) {
	return c.dirFile(c.Log.Path, "debug.log")
}

// BenchDBPath returns the benchmark database path.
func (c *Config) BenchDBPath() (string, error) {
	return c.dirFile(c.Bench.DBPath, "bench.db")
}

func (c *Config) dirFile(explicit, name string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads config.toml, else config.json, else Default(), then applies
// environment overrides, migration, defaults and validation.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	loaded := false
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
				cfg = Default()
			} else {
				loaded = true
			}
		}
	}

	if !loaded {
		if jsonPath, err := ConfigPathJSON(); err == nil {
			if _, statErr := os.Stat(jsonPath); statErr == nil {
				if err := LoadJSON(cfg, jsonPath); err != nil {
					loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
					cfg = Default()
				}
			}
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}

	// Return the config with any load error for informational purposes
	return cfg, loadErr
}

// LoadTOML decodes path over cfg.
// A file without a version key is treated as a pre-versioning config.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if !md.IsDefined("version") {
		cfg.Version = ""
	}
	return nil
}

// LoadJSON decodes path over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err == nil {
		if _, ok := keys["version"]; !ok {
			cfg.Version = ""
		}
	}
	return nil
}

// LoadFromPath is Load for an explicit --config file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies env overrides, migration, defaults and validation.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	if err := c.Migrate(); err != nil {
		return fmt.Errorf("config migration failed: %w", err)
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to ConfigPathTOML.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg to path through util.AtomicWriteFile.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# constellation configuration file\n")
	buf.WriteString("# tier: auto | reduced | low | medium | high\n")
	buf.WriteString("# color_mode: auto | truecolor | ansi256 | ansi | ascii\n")
	buf.WriteString("\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError names one bad field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is every ValidationError from one Validate call.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var validColorModes = map[string]bool{
	"auto":      true,
	"truecolor": true,
	"ansi256":   true,
	"ansi":      true,
	"ascii":     true,
}

// Validate checks every field and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Field.Tier != TierAuto {
		if _, err := quality.ParseTier(c.Field.Tier); err != nil {
			errs = append(errs, ValidationError{
				Field:   "field.tier",
				Message: fmt.Sprintf("must be auto, reduced, low, medium or high (got %q)", c.Field.Tier),
			})
		}
	}

	if c.Field.RefreshHz < 10 || c.Field.RefreshHz > 240 {
		errs = append(errs, ValidationError{
			Field:   "field.refresh_hz",
			Message: fmt.Sprintf("must be between 10 and 240 (got %d)", c.Field.RefreshHz),
		})
	}

	if c.Field.CellWidthPx < 1 || c.Field.CellWidthPx > 64 {
		errs = append(errs, ValidationError{
			Field:   "field.cell_width_px",
			Message: fmt.Sprintf("must be between 1 and 64 (got %d)", c.Field.CellWidthPx),
		})
	}
	if c.Field.CellHeightPx < 1 || c.Field.CellHeightPx > 64 {
		errs = append(errs, ValidationError{
			Field:   "field.cell_height_px",
			Message: fmt.Sprintf("must be between 1 and 64 (got %d)", c.Field.CellHeightPx),
		})
	}

	if c.Field.Seed < 0 {
		errs = append(errs, ValidationError{
			Field:   "field.seed",
			Message: "must not be negative",
		})
	}

	if _, err := colorful.Hex(c.UI.Background); err != nil {
		errs = append(errs, ValidationError{
			Field:   "ui.background",
			Message: fmt.Sprintf("must be a #rrggbb colour (got %q)", c.UI.Background),
		})
	}

	if !validColorModes[c.UI.ColorMode] {
		errs = append(errs, ValidationError{
			Field:   "ui.color_mode",
			Message: fmt.Sprintf("must be auto, truecolor, ansi256, ansi or ascii (got %q)", c.UI.ColorMode),
		})
	}

	if c.Bench.Frames < 1 || c.Bench.Frames > 100000 {
		errs = append(errs, ValidationError{
			Field:   "bench.frames",
			Message: fmt.Sprintf("must be between 1 and 100000 (got %d)", c.Bench.Frames),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	c.Field.Tier = strings.ToLower(strings.TrimSpace(c.Field.Tier))
	if c.Field.Tier == "" {
		c.Field.Tier = defaults.Field.Tier
	}
	if c.Field.RefreshHz == 0 {
		c.Field.RefreshHz = defaults.Field.RefreshHz
	}
	if c.Field.CellWidthPx == 0 {
		c.Field.CellWidthPx = defaults.Field.CellWidthPx
	}
	if c.Field.CellHeightPx == 0 {
		c.Field.CellHeightPx = defaults.Field.CellHeightPx
	}
	if c.UI.Background == "" {
		c.UI.Background = defaults.UI.Background
	}
	if c.UI.ColorMode == "" {
		c.UI.ColorMode = defaults.UI.ColorMode
	}
	if c.Bench.Frames == 0 {
		c.Bench.Frames = defaults.Bench.Frames
	}
}

// Migrate upgrades older config files in place.
//
// Version "" predates the version key; it used "none" for automatic
// colour detection.
func (c *Config) Migrate() error {
	switch c.Version {
	case "":
		if c.UI.ColorMode == "none" {
			c.UI.ColorMode = "auto"
		}
		c.Version = CurrentVersion
	case CurrentVersion:
	default:
		return fmt.Errorf("unsupported config version %q", c.Version)
	}
	return nil
}

// TierOverride returns the configured tier, or nil for automatic selection.
func (c *Config) TierOverride() (*quality.Tier, error) {
	if c.Field.Tier == "" || c.Field.Tier == TierAuto {
		return nil, nil
	}
	t, err := quality.ParseTier(c.Field.Tier)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides copies CONSTELLATION_* variables over file values.
//
// Supported environment variables:
//   - CONSTELLATION_TIER: overrides field.tier
//   - CONSTELLATION_REDUCED_MOTION: set to "1" or "true" to force reduced motion
//   - CONSTELLATION_REFRESH_HZ: overrides field.refresh_hz
//   - CONSTELLATION_SEED: overrides field.seed
//   - CONSTELLATION_DEBUG: set to "1" or "true" to enable debug logging
func (c *Config) ApplyEnvOverrides() {
	if tier := os.Getenv("CONSTELLATION_TIER"); tier != "" {
		c.Field.Tier = tier
	}

	if reduced := os.Getenv("CONSTELLATION_REDUCED_MOTION"); reduced != "" {
		c.Field.ReducedMotion = envBool(reduced)
	}

	if hz := os.Getenv("CONSTELLATION_REFRESH_HZ"); hz != "" {
		if n, err := strconv.Atoi(hz); err == nil {
			c.Field.RefreshHz = n
		}
	}

	if seed := os.Getenv("CONSTELLATION_SEED"); seed != "" {
		if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Field.Seed = n
		}
	}

	if debug := os.Getenv("CONSTELLATION_DEBUG"); debug != "" {
		c.Log.Debug = envBool(debug)
	}
}

func envBool(v string) bool {
	v = strings.ToLower(v)
	return v == "1" || v == "true" || v == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "field.tier").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "field.tier").
// The result is not validated; call Validate before saving.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(envBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && val.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("toml"), ",")[0]
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, name, keys)
			continue
		}
		*keys = append(*keys, name)
	}
}

// Clone creates a copy of the configuration. Config holds no reference
// types, so a value copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
