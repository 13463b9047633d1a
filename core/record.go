package core

import (
	"time"

	"github.com/google/uuid"
)

// Record is one entry in a workflow execution trace. It is a tagged progress
// record: Text carries a textual payload when present, Data carries a
// structured payload. Consumers scanning a trace for the terminal output keep
// the last record whose Text field is set.
//
// After emission a record should be treated as immutable.
type Record struct {
	ID        string         `json:"id"`
	Author    string         `json:"author"`
	Timestamp time.Time      `json:"timestamp"`
	Text      string         `json:"text,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewRecord creates a bare record authored by 'author'.
func NewRecord(author string) Record {
	return Record{
		ID:        NewID(),
		Author:    author,
		Timestamp: time.Now().UTC(),
	}
}

// NewTextRecord creates a record carrying a textual payload.
func NewTextRecord(author, text string) Record {
	r := NewRecord(author)
	r.Text = text
	return r
}

// NewDataRecord creates a record carrying a structured payload.
func NewDataRecord(author string, data map[string]any) Record {
	r := NewRecord(author)
	r.Data = data
	return r
}

// HasText reports whether the record carries a textual payload.
func (r Record) HasText() bool { return r.Text != "" }

// NewID generates a new unique identifier for records, runs and sessions.
func NewID() string { return uuid.NewString() }
