package server

import (
	"bytes"
	"strings"
	"sync"

	"github.com/atomicstack/llamabar/internal/logging"
)

const maxOutputLine = 64 * 1024

// lineLogger forwards the server's stdout and stderr to the log one line at a
// time, prefixed with the model ID.
type lineLogger struct {
	prefix string
	emit   func(string)

	mu  sync.Mutex
	buf []byte
}

func newLineLogger(model string) *lineLogger {
	return &lineLogger{
		prefix: "[" + model + "] ",
		emit:   func(line string) { logging.Infof("%s", line) },
	}
}

func (l *lineLogger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = append(l.buf, p...)
	for {
		i := bytes.IndexByte(l.buf, '\n')
		if i < 0 {
			break
		}
		l.line(l.buf[:i])
		l.buf = l.buf[i+1:]
	}
	if len(l.buf) >= maxOutputLine {
		l.line(l.buf)
		l.buf = nil
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (l *lineLogger) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.buf) > 0 {
		l.line(l.buf)
		l.buf = nil
	}
}

func (l *lineLogger) line(b []byte) {
	text := strings.TrimRight(string(b), "\r")
	if strings.TrimSpace(text) == "" {
		return
	}
	l.emit(l.prefix + text)
}
