package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "llamabar.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	sink         io.WriteCloser
)

type record struct {
	Time    time.Time   `json:"time"`
	Level   string      `json:"level"`
	Event   string      `json:"event,omitempty"`
	Message string      `json:"message,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Error appends err to the log. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	write(record{Level: "error", Message: err.Error()})
}

// Warnf appends a formatted warning to the log.
func Warnf(format string, args ...interface{}) {
	write(record{Level: "warn", Message: fmt.Sprintf(format, args...)})
}

// Infof appends a formatted informational record to the log.
func Infof(format string, args ...interface{}) {
	write(record{Level: "info", Message: fmt.Sprintf(format, args...)})
}

// SetTraceEnabled toggles emission of trace records.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace records are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	write(record{Level: "trace", Event: event, Payload: payload})
}

// Configure sets the log destination and closes any file opened for the
// previous one. Empty values fall back to the default path; missing
// directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeSinkLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Close releases the log file. Later writes reopen it.
func Close() {
	mu.Lock()
	closeSinkLocked()
	mu.Unlock()
}

func closeSinkLocked() {
	if sink != nil {
		sink.Close()
		sink = nil
	}
}

func write(rec record) {
	rec.Time = time.Now().UTC()
	mu.Lock()
	defer mu.Unlock()
	if sink == nil {
		f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
			return
		}
		sink = f
	}
	if err := json.NewEncoder(sink).Encode(rec); err != nil {
		fmt.Fprintf(os.Stderr, "log encoding failed: %v\n", err)
	}
}
