package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/anoonan/folio/internal/config"
	"github.com/anoonan/folio/internal/export"
	"github.com/anoonan/folio/internal/logging"
	"github.com/anoonan/folio/internal/ops"
)

// testConfig returns a config that reads the embedded content document.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.AssetsDir = filepath.Join(t.TempDir(), "assets")
	return cfg
}

// runCLI runs the app and returns what it wrote to stdout.
func runCLI(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	app := newCLIApp(cfg, logging.Discard())

	// Capture stdout
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := app.Run(append([]string{"folio"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), runErr
}

// exitMessage returns the message carried by a cli.Exit error.
func exitMessage(t *testing.T, err error) string {
	t.Helper()
	exitErr, ok := err.(cli.ExitCoder)
	if !ok {
		t.Fatalf("expected cli.ExitCoder, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	return exitErr.Error()
}

// TestCLIProjects tests the projects command.
func TestCLIProjects(t *testing.T) {
	cfg := testConfig(t)

	t.Run("all projects", func(t *testing.T) {
		out, err := runCLI(t, cfg, "projects")
		if err != nil {
			t.Fatalf("projects command failed: %v", err)
		}

		var output ops.ListProjectsOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
		}
		if len(output.Items) != output.Total {
			t.Errorf("expected %d items, got %d", output.Total, len(output.Items))
		}
		if len(output.Filter) != 0 {
			t.Errorf("expected empty filter, got %v", output.Filter)
		}
	})

	t.Run("repeated category flag", func(t *testing.T) {
		out, err := runCLI(t, cfg, "projects", "--category=rocketry", "-c", "PYTHON")
		if err != nil {
			t.Fatalf("projects command failed: %v", err)
		}

		var output ops.ListProjectsOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
		}
		ids := make([]int, len(output.Items))
		for i, p := range output.Items {
			ids[i] = p.ID
		}
		if !slices.Equal(ids, []int{1, 9, 10, 3}) {
			t.Errorf("expected ids [1 9 10 3], got %v", ids)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := runCLI(t, cfg, "projects", "--category=knitting")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if msg := exitMessage(t, err); !strings.HasPrefix(msg, "[INVALID_REQUEST]") {
			t.Errorf("expected INVALID_REQUEST, got %q", msg)
		}
	})
}

// TestCLIProject tests the project command.
func TestCLIProject(t *testing.T) {
	cfg := testConfig(t)

	out, err := runCLI(t, cfg, "project", "10")
	if err != nil {
		t.Fatalf("project command failed: %v", err)
	}

	var output struct {
		ID      int              `json:"id"`
		Title   string           `json:"title"`
		Content []map[string]any `json:"content"`
	}
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.ID != 10 || output.Title != "Payload Detachment System" {
		t.Errorf("unexpected project: %d %q", output.ID, output.Title)
	}
	if len(output.Content) == 0 {
		t.Fatal("expected content blocks")
	}
	if _, ok := output.Content[0]["type"]; !ok {
		t.Errorf("expected block type in %v", output.Content[0])
	}
}

// TestCLIExperience tests the experiences and experience commands.
func TestCLIExperience(t *testing.T) {
	cfg := testConfig(t)

	out, err := runCLI(t, cfg, "experiences")
	if err != nil {
		t.Fatalf("experiences command failed: %v", err)
	}
	var list ops.ListExperiencesOutput
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(list.Items) != 3 {
		t.Fatalf("expected 3 experiences, got %d", len(list.Items))
	}

	out, err = runCLI(t, cfg, "experience", "2")
	if err != nil {
		t.Fatalf("experience command failed: %v", err)
	}
	var exp ops.ExperienceOutput
	if err := json.Unmarshal([]byte(out), &exp); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if exp.Title != "VISE Researcher" {
		t.Errorf("expected VISE Researcher, got %q", exp.Title)
	}
	if len(exp.LinkedProjects) == 0 || exp.LinkedProjects[0].ID != 9 {
		t.Errorf("expected first linked project 9, got %v", exp.LinkedProjects)
	}
}

// TestCLICategories tests the categories command.
func TestCLICategories(t *testing.T) {
	cfg := testConfig(t)

	out, err := runCLI(t, cfg, "categories")
	if err != nil {
		t.Fatalf("categories command failed: %v", err)
	}

	var output ops.ListCategoriesOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(output.Items) == 0 {
		t.Fatal("expected categories")
	}
	for _, c := range output.Items {
		if c.Name == "Rocketry" && c.Projects == 0 {
			t.Error("expected Rocketry to have projects")
		}
	}
}

// TestCLIExport tests the export command.
func TestCLIExport(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(t.TempDir(), "site")

	out, err := runCLI(t, cfg, "export", "--dir", dir)
	if err != nil {
		t.Fatalf("export command failed: %v", err)
	}

	var output export.ExportOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if !slices.Contains(output.Pages, "index.html") {
		t.Errorf("expected index.html in %v", output.Pages)
	}
	if output.Assets != 0 {
		t.Errorf("expected 0 assets without an assets dir, got %d", output.Assets)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("expected index.html on disk: %v", err)
	}

	t.Run("non-empty dir without force", func(t *testing.T) {
		_, err := runCLI(t, cfg, "export", "--dir", dir)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if msg := exitMessage(t, err); !strings.HasPrefix(msg, "[INVALID_REQUEST]") {
			t.Errorf("expected INVALID_REQUEST, got %q", msg)
		}
	})

	t.Run("non-empty dir with force", func(t *testing.T) {
		if _, err := runCLI(t, cfg, "export", "--dir", dir, "--force"); err != nil {
			t.Fatalf("export --force failed: %v", err)
		}
	})
}

// TestCLIValidate tests the validate command.
func TestCLIValidate(t *testing.T) {
	cfg := testConfig(t)

	t.Run("embedded document", func(t *testing.T) {
		out, err := runCLI(t, cfg, "validate")
		if err != nil {
			t.Fatalf("validate command failed: %v", err)
		}

		var output ValidateOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
		}
		if !output.Valid || output.Source != "embedded" {
			t.Errorf("expected valid embedded document, got %+v", output)
		}
	})

	t.Run("reports every problem", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "site.yaml")
		doc := `categories: [Rocketry, Rocketry]
projects:
  - id: 1
    title: ""
    categories: [Knitting]
`
		if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
			t.Fatal(err)
		}

		out, err := runCLI(t, cfg, "validate", "--file", path)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if msg := exitMessage(t, err); !strings.HasPrefix(msg, "[INVALID_CONTENT]") {
			t.Errorf("expected INVALID_CONTENT, got %q", msg)
		}

		var output ValidateOutput
		if err := json.Unmarshal([]byte(out), &output); err != nil {
			t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
		}
		if output.Valid {
			t.Error("expected invalid document")
		}
		// duplicate category, empty title, unknown category, missing resume and thesis
		if len(output.Errors) < 5 {
			t.Errorf("expected at least 5 errors, got %d: %v", len(output.Errors), output.Errors)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCLI(t, cfg, "validate", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if msg := exitMessage(t, err); !strings.HasPrefix(msg, "[FILE_NOT_FOUND]") {
			t.Errorf("expected FILE_NOT_FOUND, got %q", msg)
		}
	})
}

// TestCLIErrorHandling tests error handling in CLI commands.
func TestCLIErrorHandling(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"project not found", []string{"project", "999"}, "[NOT_FOUND]"},
		{"experience not found", []string{"experience", "42"}, "[NOT_FOUND]"},
		{"project id missing", []string{"project"}, "[INVALID_REQUEST]"},
		{"project id not a number", []string{"project", "abc"}, "[INVALID_REQUEST]"},
		{"fractional experience id", []string{"experience", "1.5"}, "[INVALID_REQUEST]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, cfg, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if msg := exitMessage(t, err); !strings.HasPrefix(msg, tt.code) {
				t.Errorf("expected %s, got %q", tt.code, msg)
			}
		})
	}

	t.Run("missing content file", func(t *testing.T) {
		broken := testConfig(t)
		broken.ContentPath = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := runCLI(t, broken, "projects")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if msg := exitMessage(t, err); !strings.HasPrefix(msg, "[FILE_NOT_FOUND]") {
			t.Errorf("expected FILE_NOT_FOUND, got %q", msg)
		}
	})
}

// TestIsCLIMode tests the isCLIMode function.
func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"folio"}, false},
		{"serve command", []string{"folio", "serve"}, true},
		{"projects command", []string{"folio", "projects"}, true},
		{"validate command", []string{"folio", "validate"}, true},
		{"help flag", []string{"folio", "--help"}, true},
		{"version flag", []string{"folio", "--version"}, true},
		{"short help flag", []string{"folio", "-h"}, true},
		{"short version flag", []string{"folio", "-v"}, true},
		{"unknown arg defaults to MCP", []string{"folio", "--unknown"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Save and restore os.Args
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isCLIMode(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

// TestIsHelpOrVersion tests the isHelpOrVersion function.
func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"no args", []string{"folio"}, false},
		{"help flag", []string{"folio", "--help"}, true},
		{"short help flag", []string{"folio", "-h"}, true},
		{"version flag", []string{"folio", "--version"}, true},
		{"short version flag", []string{"folio", "-v"}, true},
		{"help subcommand", []string{"folio", "help"}, true},
		{"serve command is not help", []string{"folio", "serve"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if result := isHelpOrVersion(); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}
