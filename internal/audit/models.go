// Package audit records one event per completed lookup: who asked, what
// they asked for, and how the traversal went. Events fan out to pluggable
// sinks so tests run against memory and production ships to Kafka.
package audit

import "time"

// Event is emitted from the lookup service after each query. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	Query      string    `json:"query"`
	ClientIP   string    `json:"client_ip,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	ClientApp  string    `json:"client_app,omitempty"`
	Found      bool      `json:"found"`
	Records    int       `json:"records"`
	DurationMS int64     `json:"duration_ms"`
}
