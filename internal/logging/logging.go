package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/k0kubun/pp"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   bool
)

// Init routes the standard logger to stderr and, when logPath is set, to an
// appended log file as well.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// SetDebug toggles DumpDebug output.
func SetDebug(enabled bool) {
	mu.Lock()
	debug = enabled
	mu.Unlock()
}

func debugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

func LogWarn(format string, args ...any) {
	log.Println("[WARN] " + fmt.Sprintf(format, args...))
}

// LogStage logs one pipeline stage with its fields in key order.
func LogStage(stage string, fields map[string]any) {
	log.Println(buildStageMessage(stage, fields))
}

// DumpDebug pretty-prints v under label when debug logging is enabled.
func DumpDebug(label string, v any) {
	if !debugEnabled() {
		return
	}
	log.Printf("[DEBUG] %s\n%s", label, pp.Sprint(v))
}

func buildStageMessage(stage string, fields map[string]any) string {
	name := strings.ToUpper(strings.TrimSpace(stage))
	if name == "" {
		name = "STAGE"
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{fmt.Sprintf("[%s]", name)}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatField(fields[k])))
	}
	return strings.Join(parts, " ")
}

func formatField(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(val) == "" {
			return `""`
		}
		if strings.ContainsAny(val, " \t") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case float64:
		return fmt.Sprintf("%g", val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
