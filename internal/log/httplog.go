package log

import (
	"fmt"
	"sync"
	"time"
)

// HTTP log buffer is separate from the main log
var httpLogBuffer *LogBuffer
var httpLogBufferOnce sync.Once

// GetHTTPLogBuffer returns the HTTP log buffer instance, creating it if necessary
func GetHTTPLogBuffer() *LogBuffer {
	httpLogBufferOnce.Do(func() {
		httpLogBuffer = NewLogBuffer(1000) // Keep last 1000 HTTP log entries
	})
	return httpLogBuffer
}

// HTTPRequest describes one served request
type HTTPRequest struct {
	RequestID  string
	Method     string
	Path       string
	Status     int
	Duration   time.Duration
	Size       int
	RemoteAddr string
	UserAgent  string
	Err        error
}

// LogHTTPRequest records a served request in the HTTP log buffer and the
// debug log
func LogHTTPRequest(r HTTPRequest) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "info",
		Message:   fmt.Sprintf("%s %s %d %v %d bytes", r.Method, r.Path, r.Status, r.Duration, r.Size),
		Fields: map[string]any{
			"request_id":  r.RequestID,
			"method":      r.Method,
			"path":        r.Path,
			"status":      r.Status,
			"duration_ms": r.Duration.Milliseconds(),
			"size":        r.Size,
			"remote_addr": r.RemoteAddr,
			"user_agent":  r.UserAgent,
		},
	}

	if r.Err != nil {
		entry.Level = "error"
		entry.Fields["error"] = r.Err.Error()
	}

	GetHTTPLogBuffer().AddEntry(entry)
	Debugw("http request", "request_id", r.RequestID, "method", r.Method, "path", r.Path, "status", r.Status, "duration", r.Duration)
}
