// internal/appconfig/appconfig.go
// Package appconfig holds the resolved settings for one report run.
package appconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const (
	// DefaultAppsDir is the directory, relative to the base, listing known applications.
	DefaultAppsDir = "apps"
	// DefaultOutputRoot holds the per-report table directories and the images.
	DefaultOutputRoot = "output"
	// DefaultWidth and DefaultHeight are the image size in pixels.
	DefaultWidth  = 600
	DefaultHeight = 1800
	// legacyImageName is the image name used before images carried the report name.
	legacyImageName = "graph.png"
)

// ErrMissingReportDir is returned when neither the positional argument nor
// the OUTPUT_DIR environment variable names a report directory.
var ErrMissingReportDir = errors.New(`please specify the "report_dir" first argument, or use the "OUTPUT_DIR" environment variable`)

// Config represents the settings of one report run.
type Config struct {
	BaseDir            string            `json:"base_dir,omitempty" mapstructure:"base_dir"`
	AppsDir            string            `json:"apps_dir,omitempty" mapstructure:"apps_dir"`
	OutputRoot         string            `json:"output_root,omitempty" mapstructure:"output_root"`
	ReportDir          string            `json:"report_dir,omitempty" mapstructure:"report_dir"`
	Width              int               `json:"width,omitempty" mapstructure:"width"`
	Height             int               `json:"height,omitempty" mapstructure:"height"`
	SkipEmptySummaries bool              `json:"skip_empty_summaries" mapstructure:"skip_empty_summaries"`
	LegacyFileName     bool              `json:"legacy_file_name" mapstructure:"legacy_file_name"`
	LogFile            string            `json:"log_file,omitempty" mapstructure:"log_file"`
	Debug              bool              `json:"debug" mapstructure:"debug"`
	Markers            map[string]string `json:"markers,omitempty" mapstructure:"markers"`
	ConfigPath         string            `json:"-" mapstructure:"-"`
}

// Validate checks the settings that must be present before any I/O happens.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ReportDir) == "" {
		return ErrMissingReportDir
	}
	if strings.ContainsAny(c.ReportDir, `/\`) || c.ReportDir == "." || c.ReportDir == ".." {
		return fmt.Errorf("report_dir %q must be a single directory name", c.ReportDir)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("image size %dx%d must not be negative", c.Width, c.Height)
	}
	return nil
}

// Base returns the directory all relative paths are resolved against.
func (c Config) Base() string {
	if b := strings.TrimSpace(c.BaseDir); b != "" {
		return b
	}
	return "."
}

// AppsPath returns the directory listing the known applications.
func (c Config) AppsPath() string {
	dir := c.AppsDir
	if strings.TrimSpace(dir) == "" {
		dir = DefaultAppsDir
	}
	return c.resolve(dir)
}

// OutputPath returns the root holding report table directories and images.
func (c Config) OutputPath() string {
	dir := c.OutputRoot
	if strings.TrimSpace(dir) == "" {
		dir = DefaultOutputRoot
	}
	return c.resolve(dir)
}

// TableDir returns the directory holding this report's per-application tables.
func (c Config) TableDir() string {
	return filepath.Join(c.OutputPath(), c.ReportDir)
}

// ImagePath returns where the composed image is written.
func (c Config) ImagePath() string {
	if c.LegacyFileName {
		return filepath.Join(c.OutputPath(), legacyImageName)
	}
	return filepath.Join(c.OutputPath(), fmt.Sprintf("graph_%s.png", c.ReportDir))
}

// ImageWidth returns the image width in pixels, applying the default.
func (c Config) ImageWidth() int {
	if c.Width <= 0 {
		return DefaultWidth
	}
	return c.Width
}

// ImageHeight returns the image height in pixels, applying the default.
func (c Config) ImageHeight() int {
	if c.Height <= 0 {
		return DefaultHeight
	}
	return c.Height
}

func (c Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Base(), dir)
}

// schema describes the optional JSON config file.
const schema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "base_dir": {"type": "string"},
    "apps_dir": {"type": "string"},
    "output_root": {"type": "string"},
    "report_dir": {"type": "string"},
    "width": {"type": "integer", "minimum": 1},
    "height": {"type": "integer", "minimum": 1},
    "skip_empty_summaries": {"type": "boolean"},
    "legacy_file_name": {"type": "boolean"},
    "log_file": {"type": "string"},
    "debug": {"type": "boolean"},
    "markers": {
      "type": "object",
      "additionalProperties": {"type": "string", "enum": ["line", "bar", "point"]}
    }
  }
}`

// ValidateFile checks a JSON config file against the config schema.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return ValidateJSON(data)
}

// ValidateJSON checks raw config JSON against the config schema.
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("config schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(errs, ", "))
}
