// internal/records/records.go
// Package records loads per-application benchmark tables into typed samples.
package records

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sample is one benchmark observation for one application.
type Sample struct {
	// Index is the 1-based position of the owning application in the sorted
	// application list. It is set once by the loader.
	Index int `mapstructure:"-"`

	InstallTime           float64 `mapstructure:"install_time"`
	BuildTime             float64 `mapstructure:"build_time"`
	DepsWithDuplicates    float64 `mapstructure:"deps_with_duplicates"`
	DepsWithoutDuplicates float64 `mapstructure:"deps_without_duplicates"`
	BuildSize             float64 `mapstructure:"build_size"`
	Chromium              float64 `mapstructure:"chromium"`
	Firefox               float64 `mapstructure:"firefox"`
	Webkit                float64 `mapstructure:"webkit"`
}

// ApplicationSeries pairs an application name with its samples in table order.
type ApplicationSeries struct {
	Name    string
	Index   int
	Samples []Sample
}

// Source tells the loader where application names and tables live.
type Source struct {
	AppsDir  string
	TableDir string
}

// TablePath returns the table location for an application.
func (s Source) TablePath(app string) string {
	return filepath.Join(s.TableDir, app+".csv")
}

// InputError reports a missing or unreadable input location.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ErrNoApplications is returned when the applications directory is empty.
var ErrNoApplications = errors.New("no applications found")

// ListApplications returns the sorted names of the entries in dir.
func ListApplications(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &InputError{Path: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Ordinals maps each name to its 1-based rank in lexicographic order.
// The result does not depend on the order of names.
func Ordinals(names []string) map[string]int {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	ordinals := make(map[string]int, len(sorted))
	next := 1
	for _, name := range sorted {
		if _, seen := ordinals[name]; seen {
			continue
		}
		ordinals[name] = next
		next++
	}
	return ordinals
}

// Load reads every application's table and returns the series sorted by name.
func Load(src Source) ([]ApplicationSeries, error) {
	names, err := ListApplications(src.AppsDir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, &InputError{Path: src.AppsDir, Err: ErrNoApplications}
	}

	ordinals := Ordinals(names)
	series := make([]ApplicationSeries, 0, len(names))
	for _, name := range names {
		index := ordinals[name]
		samples, err := ReadTable(src.TablePath(name), index)
		if err != nil {
			return nil, err
		}
		series = append(series, ApplicationSeries{Name: name, Index: index, Samples: samples})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Name < series[j].Name })
	return series, nil
}

// Names returns the application names of series in order.
func Names(series []ApplicationSeries) []string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	return names
}
