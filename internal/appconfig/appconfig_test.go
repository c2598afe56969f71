// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestValidate checks that a report directory is required and must be a
// plain directory name.
func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); !errors.Is(err, ErrMissingReportDir) {
		t.Fatalf("expected ErrMissingReportDir, got %v", err)
	}
	if err := (Config{ReportDir: "  "}).Validate(); !errors.Is(err, ErrMissingReportDir) {
		t.Fatalf("expected ErrMissingReportDir for blank dir, got %v", err)
	}
	for _, dir := range []string{"a/b", `a\b`, ".", ".."} {
		if err := (Config{ReportDir: dir}).Validate(); err == nil {
			t.Fatalf("expected report dir %q to be rejected", dir)
		}
	}
	if err := (Config{ReportDir: "run", Width: -1}).Validate(); err == nil {
		t.Fatal("expected negative width to be rejected")
	}
	if err := (Config{ReportDir: "run"}).Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestPathsAndDefaults(t *testing.T) {
	cfg := Config{BaseDir: "/work", ReportDir: "2024-01"}

	if got := cfg.AppsPath(); got != filepath.Join("/work", "apps") {
		t.Fatalf("unexpected apps path %s", got)
	}
	if got := cfg.TableDir(); got != filepath.Join("/work", "output", "2024-01") {
		t.Fatalf("unexpected table dir %s", got)
	}
	if got := cfg.ImagePath(); got != filepath.Join("/work", "output", "graph_2024-01.png") {
		t.Fatalf("unexpected image path %s", got)
	}
	if cfg.ImageWidth() != 600 || cfg.ImageHeight() != 1800 {
		t.Fatalf("expected default size 600x1800, got %dx%d", cfg.ImageWidth(), cfg.ImageHeight())
	}

	cfg.LegacyFileName = true
	cfg.OutputRoot = "/elsewhere"
	cfg.AppsDir = "frameworks"
	cfg.Width, cfg.Height = 800, 2400
	if got := cfg.ImagePath(); got != filepath.Join("/elsewhere", "graph.png") {
		t.Fatalf("unexpected legacy image path %s", got)
	}
	if got := cfg.AppsPath(); got != filepath.Join("/work", "frameworks") {
		t.Fatalf("unexpected apps path %s", got)
	}
	if cfg.ImageWidth() != 800 || cfg.ImageHeight() != 2400 {
		t.Fatalf("expected 800x2400, got %dx%d", cfg.ImageWidth(), cfg.ImageHeight())
	}

	if got := (Config{ReportDir: "r"}).AppsPath(); got != "apps" {
		t.Fatalf("expected relative default apps path, got %s", got)
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	payload := `{"report_dir": "run1", "width": 900, "markers": {"build_size": "point"}}`
	if err := os.WriteFile(valid, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateFile(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	payload = `{"width": "wide", "markers": {"build_size": "pie"}, "hosts": []}`
	if err := os.WriteFile(invalid, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	err := ValidateFile(invalid)
	if err == nil {
		t.Fatal("expected schema errors")
	}
	for _, want := range []string{"width", "hosts"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in error, got %v", want, err)
		}
	}

	if err := ValidateFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if err := ValidateJSON([]byte(`{`)); err == nil {
		t.Fatal("expected malformed JSON to fail")
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, Config{ReportDir: "run1", Markers: map[string]string{"build_time": "point", "build_size": "line"}})
	out := buf.String()
	for _, want := range []string{"No config file loaded", "Report dir:      run1", "graph_run1.png", "build_size: line"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "build_size") > strings.Index(out, "build_time") {
		t.Fatalf("expected markers sorted by key:\n%s", out)
	}
}
