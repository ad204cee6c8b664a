package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultExportPattern matches the asset files copied by a static export.
const DefaultExportPattern = "**/*.{png,jpg,jpeg,gif,pdf,JPG}"

// Config holds application configuration.
type Config struct {
	// Bind is the address the web server listens on.
	Bind string `json:"bind,omitempty"`

	// Port is the web server port.
	Port int `json:"port,omitempty"`

	// ContentPath is a YAML content document that replaces the embedded one.
	// Empty means use the document compiled into the binary.
	ContentPath string `json:"content_path,omitempty"`

	// AssetsDir holds the images and PDFs referenced by the content.
	// Served under /assets/ and copied by export.
	AssetsDir string `json:"assets_dir,omitempty"`

	// ExportPatterns are doublestar globs, relative to AssetsDir, selecting
	// the files an export copies. Unlike the other lists, an overlay replaces
	// the base patterns instead of merging with them.
	ExportPatterns []string `json:"export_patterns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of type names to disable entirely.
	// Known types: "project", "experience", "category", "site".
	DisabledTypes []string `json:"disabled_types,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// LogFormat is "text" or "json".
	LogFormat string `json:"log_format,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:           "127.0.0.1",
		Port:           8080,
		AssetsDir:      "public",
		ExportPatterns: []string{DefaultExportPattern},
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.folio.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.folio) and repo (.folio) directories.
// Repo config is found by walking upward from startDir to find the nearest .folio/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	// Walk upward from startDir to find repo config
	repoConfigPath := FindRepoConfig(startDir)
	repo, err := loadFileRaw(repoConfigPath)
	if err != nil {
		return nil, err
	}

	// Apply defaults, then global, then repo
	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .folio/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".folio", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{
		Bind:        pick(overlay.Bind, base.Bind),
		ContentPath: pick(overlay.ContentPath, base.ContentPath),
		AssetsDir:   pick(overlay.AssetsDir, base.AssetsDir),
		LogLevel:    pick(overlay.LogLevel, base.LogLevel),
		LogFormat:   pick(overlay.LogFormat, base.LogFormat),
	}

	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}

	result.ExportPatterns = mergeStringSlice(nil, overlay.ExportPatterns)
	if result.ExportPatterns == nil {
		result.ExportPatterns = mergeStringSlice(nil, base.ExportPatterns)
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

func pick(overlay, base string) string {
	if strings.TrimSpace(overlay) != "" {
		return strings.TrimSpace(overlay)
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with FOLIO_* variables read through getenv.
// FOLIO_PORT takes precedence over the platform-style PORT.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("FOLIO_BIND"); v != "" {
		cfg.Bind = v
	}

	for _, key := range []string{"PORT", "FOLIO_PORT"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", key, v)
		}
		cfg.Port = port
	}

	if v := getenv("FOLIO_CONTENT"); v != "" {
		cfg.ContentPath = v
	}
	if v := getenv("FOLIO_ASSETS"); v != "" {
		cfg.AssetsDir = v
	}
	if v := getenv("FOLIO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("FOLIO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	return nil
}
