// Package accesslog records one entry per handled request. Recording is
// fire-and-forget: a failed write is the caller's to log and drop, never
// to surface to the client.
package accesslog

import "time"

type Entry struct {
	ID        string
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	StartedAt time.Time
}

type Recorder interface {
	Record(Entry) error
	Close()
}

// NopRecorder is the default when no database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(Entry) error { return nil }

func (NopRecorder) Close() {}
