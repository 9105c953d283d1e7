package ailog

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"jobtailor/internal/shared/telemetry"
)

const (
	previewLimit = 400
	tailLimit    = 200
)

// Logger records every outbound prompt and inbound reply to an append-only
// text file and keeps an in-memory tail for the log-viewing endpoint.
type Logger struct {
	mu          sync.Mutex
	path        string
	fullPayload bool
	tail        []string
}

// New constructs a Logger writing to path. When fullPayload is false,
// payloads are truncated to a short preview.
func New(path string, fullPayload bool) *Logger {
	return &Logger{path: path, fullPayload: fullPayload}
}

// Request records an outbound prompt.
func (l *Logger) Request(label, systemMessage, prompt string) {
	l.record("request", label, systemMessage+"\n"+prompt)
}

// Response records an inbound reply.
func (l *Logger) Response(label, content string) {
	l.record("response", label, content)
}

// ResponseError records a failed call.
func (l *Logger) ResponseError(label string, err error) {
	l.record("error", label, err.Error())
}

// Tail returns the most recent entries, oldest first.
func (l *Logger) Tail() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.tail))
	copy(out, l.tail)
	return out
}

func (l *Logger) record(kind, label, payload string) {
	if l == nil {
		return
	}
	if !l.fullPayload {
		payload = preview(payload)
	}
	line := fmt.Sprintf("%s [%s] %s: %s",
		time.Now().UTC().Format("2006-01-02 15:04:05"), kind, label, payload)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.tail = append(l.tail, line)
	if len(l.tail) > tailLimit {
		l.tail = l.tail[len(l.tail)-tailLimit:]
	}

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		telemetry.Error("ailog.open", map[string]any{"path": l.path, "error": err.Error()})
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		telemetry.Error("ailog.write", map[string]any{"path": l.path, "error": err.Error()})
	}
}

func preview(payload string) string {
	payload = strings.ReplaceAll(payload, "\n", " ")
	if len(payload) <= previewLimit {
		return payload
	}
	return payload[:previewLimit] + "..."
}
