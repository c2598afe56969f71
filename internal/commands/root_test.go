package benchplot

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/metrics"
)

const tableHeader = "install_time;build_time;deps_with_duplicates;deps_without_duplicates;build_size;chromium;firefox;webkit\n"

// writeReport lays out <base>/apps/<app> and <base>/output/run1/<app>.csv.
func writeReport(t *testing.T, tables map[string]string) string {
	t.Helper()
	base := t.TempDir()
	tableDir := filepath.Join(base, "output", "run1")
	if err := os.MkdirAll(tableDir, 0o755); err != nil {
		t.Fatalf("mkdir tables: %v", err)
	}
	for app, body := range tables {
		if err := os.MkdirAll(filepath.Join(base, "apps", app), 0o755); err != nil {
			t.Fatalf("mkdir app: %v", err)
		}
		if err := os.WriteFile(filepath.Join(tableDir, app+".csv"), []byte(tableHeader+body), 0o644); err != nil {
			t.Fatalf("write table: %v", err)
		}
	}
	return base
}

func defaultTables() map[string]string {
	return map[string]string{
		"alpha": "100;40;10;8;1200;50;60;55\n200;45;10;8;1200;52;61;57\n",
		"beta":  "300;80;20;15;3400;70;75;72\n",
	}
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { _ = logging.Close() })

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	_, err := cmd.ExecuteC()
	return buf.String(), err
}

func TestRootRendersReport(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	base := writeReport(t, defaultTables())

	out, err := executeRoot(t, "--base-dir", base, "run1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	image := filepath.Join(base, "output", "graph_run1.png")
	if !strings.Contains(out, "Report written to "+image) {
		t.Fatalf("expected report path in output, got %q", out)
	}
	data, err := os.ReadFile(image)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("expected PNG signature")
	}
}

func TestRootMissingReportDir(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	base := writeReport(t, defaultTables())

	_, err := executeRoot(t, "--base-dir", base)
	if !errors.Is(err, appconfig.ErrMissingReportDir) {
		t.Fatalf("expected ErrMissingReportDir, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(base, "output", "graph_.png")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no image to be written, got %v", statErr)
	}
}

func TestRootReportDirFromEnvironment(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "run1")
	base := writeReport(t, defaultTables())

	if _, err := executeRoot(t, "--base-dir", base, "--legacy-file-name"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "output", "graph.png")); err != nil {
		t.Fatalf("expected legacy image name, got %v", err)
	}
}

func TestRootStrictSummaries(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	tables := defaultTables()
	tables["gamma"] = "0;0;5;5;900;0;0;0\n"
	base := writeReport(t, tables)

	_, err := executeRoot(t, "--base-dir", base, "run1")
	var statsErr *metrics.StatsError
	if !errors.As(err, &statsErr) {
		t.Fatalf("expected StatsError, got %v", err)
	}
	if statsErr.Application != "gamma" {
		t.Fatalf("expected gamma, got %s", statsErr.Application)
	}
	if _, statErr := os.Stat(filepath.Join(base, "output", "graph_run1.png")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no image after strict failure, got %v", statErr)
	}

	if _, err := executeRoot(t, "--base-dir", base, "--skip-empty-summaries", "run1"); err != nil {
		t.Fatalf("expected skip mode to succeed, got %v", err)
	}
}

func TestRootMissingTable(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	base := writeReport(t, defaultTables())
	if err := os.MkdirAll(filepath.Join(base, "apps", "delta"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := executeRoot(t, "--base-dir", base, "run1")
	if err == nil || !strings.Contains(err.Error(), "delta.csv") {
		t.Fatalf("expected missing table error, got %v", err)
	}
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	cfgPath := filepath.Join(t.TempDir(), "benchplot.json")
	payload := `{"report_dir": "nightly", "width": 300, "height": 900, "markers": {"build_size": "point"}}`
	if err := os.WriteFile(cfgPath, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeRoot(t, "--config", cfgPath, "--width", "400", "show", "config")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"Config file: " + cfgPath, "Report dir:      nightly", "Image size:      400x900", "build_size: point"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestShowConfigWithoutReportDir(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	out, err := executeRoot(t, "show", "config")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out, "No config file loaded") {
		t.Fatalf("expected default banner, got %q", out)
	}
}

func TestInvalidConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "benchplot.json")
	if err := os.WriteFile(cfgPath, []byte(`{"width": "wide"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := executeRoot(t, "--config", cfgPath, "run1")
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestSummaryCommand(t *testing.T) {
	t.Setenv("OUTPUT_DIR", "")
	tables := defaultTables()
	tables["gamma"] = "0;0;5;5;900;0;0;0\n"
	base := writeReport(t, tables)

	out, err := executeRoot(t, "--base-dir", base, "summary", "run1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, want := range []string{"alpha", "beta", "gamma", "install_time", "n/a", "1200"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRootTooManyArgs(t *testing.T) {
	if _, err := executeRoot(t, "run1", "run2"); err == nil {
		t.Fatal("expected error for extra arguments")
	}
}
