package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestLoad_DefaultWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := DefaultConfig()
	if cfg.Port != def.Port || cfg.Bind != def.Bind || cfg.AssetsDir != def.AssetsDir {
		t.Fatalf("Load() = %+v, want defaults %+v", cfg, def)
	}
	if !slices.Equal(cfg.ExportPatterns, []string{DefaultExportPattern}) {
		t.Errorf("ExportPatterns = %v", cfg.ExportPatterns)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "config.json"), `{"port": 3000, "content_path": "site.yaml", "log_format": "json"}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.ContentPath != "site.yaml" {
		t.Errorf("ContentPath = %q", cfg.ContentPath)
	}
	if cfg.LogFormat != "json" || cfg.LogLevel != "info" {
		t.Errorf("LogFormat = %q, LogLevel = %q", cfg.LogFormat, cfg.LogLevel)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "config.json"), `{not json}`)

	if _, err := Load(tmpDir); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}

func TestLoad_ExportPatternsReplaceDefault(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "config.json"), `{"export_patterns": ["images/**/*.png", " "]}`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(cfg.ExportPatterns, []string{"images/**/*.png"}) {
		t.Errorf("ExportPatterns = %v, want [images/**/*.png]", cfg.ExportPatterns)
	}
}

func TestLoadWithRepo_BothPresent(t *testing.T) {
	globalDir := t.TempDir()
	repoRoot := t.TempDir()

	writeFile(t, filepath.Join(globalDir, "config.json"), `{"port": 9000, "disabled_tools": ["project_list"]}`)
	writeFile(t, filepath.Join(repoRoot, ".folio", "config.json"), `{"port": 9100, "disabled_tools": ["experience_get"]}`)

	cfg, err := LoadWithRepo(globalDir, repoRoot)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}

	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want 9100 (repo override)", cfg.Port)
	}
	if len(cfg.DisabledTools) != 2 {
		t.Errorf("DisabledTools = %v, want 2 entries", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_NeitherPresent(t *testing.T) {
	cfg, err := LoadWithRepo(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if len(cfg.DisabledTools) != 0 {
		t.Errorf("DisabledTools = %v, want empty", cfg.DisabledTools)
	}
}

func TestLoadWithRepo_WalksUpward(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".folio", "config.json"), `{"disabled_types": ["site"]}`)

	subdir := filepath.Join(tmpDir, "subdir", "deeper")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	cfg, err := LoadWithRepo(t.TempDir(), subdir)
	if err != nil {
		t.Fatalf("LoadWithRepo() error = %v", err)
	}
	if !slices.Equal(cfg.DisabledTypes, []string{"site"}) {
		t.Errorf("DisabledTypes = %v, want [site]", cfg.DisabledTypes)
	}
}

func TestFindRepoConfig_NotFound(t *testing.T) {
	if found := FindRepoConfig(t.TempDir()); found != "" {
		t.Errorf("FindRepoConfig() = %q, want empty string", found)
	}
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Config{Port: 8080, LogLevel: "debug", Bind: "0.0.0.0"}
	overlay := &Config{Port: 9000, Bind: "  "}

	result := Merge(base, overlay)

	if result.Port != 9000 {
		t.Errorf("Port = %d, want 9000 (overlay)", result.Port)
	}
	if result.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug (base, overlay is empty)", result.LogLevel)
	}
	if result.Bind != "0.0.0.0" {
		t.Errorf("Bind = %q, want base value for blank overlay", result.Bind)
	}
}

func TestMerge_ArrayMergeDedup(t *testing.T) {
	base := &Config{DisabledTools: []string{"project_list", "experience_get"}}
	overlay := &Config{DisabledTools: []string{"experience_get", " category_list "}}

	result := Merge(base, overlay)

	want := []string{"project_list", "experience_get", "category_list"}
	if !slices.Equal(result.DisabledTools, want) {
		t.Errorf("DisabledTools = %v, want %v", result.DisabledTools, want)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"FOLIO_BIND":       "0.0.0.0",
		"PORT":             "5000",
		"FOLIO_CONTENT":    "/srv/site.yaml",
		"FOLIO_ASSETS":     "/srv/public",
		"FOLIO_LOG_LEVEL":  "debug",
		"FOLIO_LOG_FORMAT": "json",
	}
	cfg := DefaultConfig()
	if err := ApplyEnv(cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Bind != "0.0.0.0" || cfg.Port != 5000 || cfg.ContentPath != "/srv/site.yaml" ||
		cfg.AssetsDir != "/srv/public" || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}

	env["FOLIO_PORT"] = "7000"
	if err := ApplyEnv(cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Port != 7000 {
		t.Errorf("Port = %d, want FOLIO_PORT to win over PORT", cfg.Port)
	}
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	for _, v := range []string{"abc", "0", "70000"} {
		cfg := DefaultConfig()
		err := ApplyEnv(cfg, func(k string) string {
			if k == "FOLIO_PORT" {
				return v
			}
			return ""
		})
		if err == nil {
			t.Errorf("FOLIO_PORT=%q: expected error", v)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "FOLIO_TEST_FROM_FILE=file\nFOLIO_TEST_PRESET=file\n")

	t.Setenv("FOLIO_TEST_PRESET", "env")
	t.Setenv("FOLIO_TEST_FROM_FILE", "")
	os.Unsetenv("FOLIO_TEST_FROM_FILE")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("FOLIO_TEST_FROM_FILE"); got != "file" {
		t.Errorf("FOLIO_TEST_FROM_FILE = %q, want file", got)
	}
	if got := os.Getenv("FOLIO_TEST_PRESET"); got != "env" {
		t.Errorf("FOLIO_TEST_PRESET = %q, want existing value kept", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("LoadEnvFile(missing) error = %v, want nil", err)
	}
}
