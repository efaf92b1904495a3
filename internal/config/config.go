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

type GeneralConfig struct {
	Theme string `yaml:"theme"` // "dark" | "light": initial theme of every card
}

type CatalogConfig struct {
	Path      string `yaml:"path"`       // empty selects the built-in catalog
	AssetRoot string `yaml:"asset_root"` // directory holding Black/, White/ and theme-independent folders
}

type PlaybackConfig struct {
	FallbackFPS float64 `yaml:"fallback_fps"` // used when an asset does not declare a frame rate
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Catalog       CatalogConfig  `yaml:"catalog"`
	Playback      PlaybackConfig `yaml:"playback"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "dark"},
		Catalog:       CatalogConfig{Path: "", AssetRoot: "Lotties"},
		Playback:      PlaybackConfig{FallbackFPS: 30},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvTheme       = "LG_THEME"
	EnvCatalog     = "LG_CATALOG"
	EnvAssetRoot   = "LG_ASSET_ROOT"
	EnvFallbackFPS = "LG_FALLBACK_FPS"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "LG_LOG_LEVEL"
	EnvLogFormat = "LG_LOG_FORMAT"
	EnvLogSource = "LG_LOG_SOURCE"
	EnvLogFile   = "LG_LOG_FILE"
)

// configPathFn is swapped in tests to keep them away from the real user config.
var configPathFn = defaultConfigPath

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) { return configPathFn() }

func defaultConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "LottieGrid")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "LottieGrid")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "lottiegrid")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "lottiegrid")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A malformed file is ignored in favor of defaults.
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
	if t := normalizeTheme(src.General.Theme); t != "" {
		dst.General.Theme = t
	}
	if v := strings.TrimSpace(src.Catalog.Path); v != "" {
		dst.Catalog.Path = v
	}
	if v := strings.TrimSpace(src.Catalog.AssetRoot); v != "" {
		dst.Catalog.AssetRoot = v
	}
	if src.Playback.FallbackFPS > 0 {
		dst.Playback.FallbackFPS = src.Playback.FallbackFPS
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if t := normalizeTheme(os.Getenv(EnvTheme)); t != "" {
		cfg.General.Theme = t
	}
	if v := strings.TrimSpace(os.Getenv(EnvCatalog)); v != "" {
		cfg.Catalog.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAssetRoot)); v != "" {
		cfg.Catalog.AssetRoot = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFallbackFPS)); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			cfg.Playback.FallbackFPS = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// normalizeTheme maps accepted spellings to "dark" or "light"; anything else yields "".
func normalizeTheme(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "black":
		return "dark"
	case "light", "white":
		return "light"
	}
	return ""
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	names := map[string]string{
		"general.theme":         EnvTheme,
		"catalog.path":          EnvCatalog,
		"catalog.asset_root":    EnvAssetRoot,
		"playback.fallback_fps": EnvFallbackFPS,
		"logging.level":         EnvLogLevel,
		"logging.format":        EnvLogFormat,
		"logging.source":        EnvLogSource,
		"logging.file":          EnvLogFile,
	}
	if env, ok := names[key]; ok && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// LightTheme reports whether the configured initial theme is light.
func (g GeneralConfig) LightTheme() bool { return normalizeTheme(g.Theme) == "light" }
