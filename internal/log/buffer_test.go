package log

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestLogBufferRing(t *testing.T) {
	b := NewLogBuffer(3)
	for i := 0; i < 5; i++ {
		b.AddEntry(LogEntry{Message: fmt.Sprintf("entry %d", i)})
	}

	entries := b.GetEntries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, expected 3", len(entries))
	}
	for i, expected := range []string{"entry 2", "entry 3", "entry 4"} {
		if entries[i].Message != expected {
			t.Errorf("entry %d = %q, expected %q", i, entries[i].Message, expected)
		}
	}

	b.Clear()
	if n := len(b.GetEntries()); n != 0 {
		t.Errorf("got %d entries after Clear, expected 0", n)
	}
}

func TestLogBufferPartial(t *testing.T) {
	b := NewLogBuffer(10)
	b.AddEntry(LogEntry{Message: "only"})

	entries := b.GetEntries()
	if len(entries) != 1 || entries[0].Message != "only" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestLogHTTPRequest(t *testing.T) {
	before := len(GetHTTPLogBuffer().GetEntries())

	LogHTTPRequest(HTTPRequest{
		RequestID: "abc",
		Method:    "GET",
		Path:      "/lunar/seattle",
		Status:    404,
		Duration:  3 * time.Millisecond,
		Err:       errors.New("unknown observer"),
	})

	entries := GetHTTPLogBuffer().GetEntries()
	if len(entries) != before+1 {
		t.Fatalf("got %d entries, expected %d", len(entries), before+1)
	}
	last := entries[len(entries)-1]
	if last.Level != "error" {
		t.Errorf("level = %q, expected error", last.Level)
	}
	if last.Fields["request_id"] != "abc" || last.Fields["status"] != 404 {
		t.Errorf("fields = %v", last.Fields)
	}
}
