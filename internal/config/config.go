/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
// Unknown fields are preserved across versions by yaml ignoring extras on unmarshal.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Direction      string `yaml:"direction"` // "rtl" | "ltr" (informational for now)
}

type LayoutConfig struct {
	Profile    string  `yaml:"profile"`     // builtin profile name or path to a profile file
	FontSize   float64 `yaml:"font_size"`   // 0 keeps the profile value
	LineHeight float64 `yaml:"line_height"` // 0 keeps the profile value
	FontFile   string  `yaml:"font_file"`   // optional TTF/OTF backing text measurement
}

type CatalogConfig struct {
	Path string `yaml:"path"` // empty selects the per-user default next to the config file
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Layout        LayoutConfig  `yaml:"layout"`
	Catalog       CatalogConfig `yaml:"catalog"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Direction: "rtl"},
		Layout:        LayoutConfig{Profile: "a4"},
		Catalog:       CatalogConfig{Path: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvProfile        = "ASE_PROFILE"
	EnvFontSize       = "ASE_FONT_SIZE"
	EnvLineHeight     = "ASE_LINE_HEIGHT"
	EnvFontFile       = "ASE_FONT_FILE"
	EnvDirection      = "ASE_DIRECTION"
	EnvCatalogPath    = "ASE_CATALOG_PATH"
	EnvTelemetryOptIn = "ASE_TELEMETRY_OPT_IN"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "ASE_LOG_LEVEL"
	EnvLogFormat = "ASE_LOG_FORMAT"
	EnvLogSource = "ASE_LOG_SOURCE"
	EnvLogFile   = "ASE_LOG_FILE"
)

// ConfigDir returns the per-user directory holding the config file and the
// default catalog database.
func ConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "AraScriptease")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "AraScriptease")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "ara-scriptease")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// CatalogPath resolves the catalog database location: the configured path
// when set (Load folds ASE_CATALOG_PATH into it), else the per-user default.
func CatalogPath(cfg AppConfig) (string, error) {
	if p := strings.TrimSpace(cfg.Catalog.Path); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog.sqlite"), nil
}

// StylesDir returns the per-user directory holding element style sheets.
func StylesDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "styles"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.General.Direction) != "" {
		dst.General.Direction = strings.ToLower(strings.TrimSpace(src.General.Direction))
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if strings.TrimSpace(src.Layout.Profile) != "" {
		dst.Layout.Profile = strings.TrimSpace(src.Layout.Profile)
	}
	if src.Layout.FontSize > 0 {
		dst.Layout.FontSize = src.Layout.FontSize
	}
	if src.Layout.LineHeight > 0 {
		dst.Layout.LineHeight = src.Layout.LineHeight
	}
	if strings.TrimSpace(src.Layout.FontFile) != "" {
		dst.Layout.FontFile = strings.TrimSpace(src.Layout.FontFile)
	}
	if strings.TrimSpace(src.Catalog.Path) != "" {
		dst.Catalog.Path = strings.TrimSpace(src.Catalog.Path)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvProfile)); v != "" {
		cfg.Layout.Profile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontSize)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Layout.FontSize = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLineHeight)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Layout.LineHeight = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontFile)); v != "" {
		cfg.Layout.FontFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDirection)); v != "" {
		cfg.General.Direction = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCatalogPath)); v != "" {
		cfg.Catalog.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		lv := strings.ToLower(v)
		cfg.General.TelemetryOptIn = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "layout.profile":
		if os.Getenv(EnvProfile) != "" {
			return EnvProfile, true
		}
	case "layout.font_size":
		if os.Getenv(EnvFontSize) != "" {
			return EnvFontSize, true
		}
	case "layout.line_height":
		if os.Getenv(EnvLineHeight) != "" {
			return EnvLineHeight, true
		}
	case "layout.font_file":
		if os.Getenv(EnvFontFile) != "" {
			return EnvFontFile, true
		}
	case "general.direction":
		if os.Getenv(EnvDirection) != "" {
			return EnvDirection, true
		}
	case "general.telemetry_opt_in":
		if os.Getenv(EnvTelemetryOptIn) != "" {
			return EnvTelemetryOptIn, true
		}
	case "catalog.path":
		if os.Getenv(EnvCatalogPath) != "" {
			return EnvCatalogPath, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
