package log

import (
	"sync"
	"time"
)

// LogEntry is one record kept in a LogBuffer
type LogEntry struct {
	Timestamp time.Time      `json:"timestamp" msgpack:"timestamp"`
	Level     string         `json:"level" msgpack:"level"`
	Message   string         `json:"message" msgpack:"message"`
	Fields    map[string]any `json:"fields,omitempty" msgpack:"fields,omitempty"`
}

// LogBuffer keeps the most recent entries in a fixed-size ring
type LogBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	next    int
	full    bool
}

// NewLogBuffer creates a buffer holding at most size entries
func NewLogBuffer(size int) *LogBuffer {
	if size < 1 {
		size = 1
	}
	return &LogBuffer{entries: make([]LogEntry, size)}
}

// AddEntry stores entry, evicting the oldest one when full
func (b *LogBuffer) AddEntry(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = entry
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.full = true
	}
}

// GetEntries returns the stored entries, oldest first
func (b *LogBuffer) GetEntries() []LogEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.full {
		out := make([]LogEntry, b.next)
		copy(out, b.entries[:b.next])
		return out
	}

	out := make([]LogEntry, 0, len(b.entries))
	out = append(out, b.entries[b.next:]...)
	out = append(out, b.entries[:b.next]...)
	return out
}

// Clear drops all stored entries
func (b *LogBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make([]LogEntry, len(b.entries))
	b.next = 0
	b.full = false
}
