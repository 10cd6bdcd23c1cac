// Package audit captures security-relevant events as immutable, timestamped
// entries. Entries are appended in order and never rewritten; callers enqueue
// and move on, so a slow or failing log target can never block or fail the
// request that produced the event.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Action tags every entry with the decision that produced it.
type Action string

const (
	// Login terminal states. Each login attempt emits exactly one of these.
	ActionLoginSuccess               Action = "LOGIN_SUCCESS"
	ActionLoginFailedInvalidInput    Action = "LOGIN_FAILED_INVALID_INPUT"
	ActionLoginFailedSuspiciousInput Action = "LOGIN_FAILED_SUSPICIOUS_INPUT"
	ActionLoginFailedConfigError     Action = "LOGIN_FAILED_CONFIG_ERROR"
	ActionLoginFailedWrongPassword   Action = "LOGIN_FAILED_WRONG_PASSWORD"
	ActionLoginFailedJWTError        Action = "LOGIN_FAILED_JWT_ERROR"
	ActionLoginError                 Action = "LOGIN_ERROR"
	ActionLoginRateLimited           Action = "LOGIN_RATE_LIMITED"

	// Token verification outcomes on protected routes. Both map to the same
	// 401 response; only the audit trail distinguishes them.
	ActionUnauthorizedAccess Action = "UNAUTHORIZED_ACCESS_ATTEMPT"
	ActionInvalidToken       Action = "INVALID_TOKEN_ATTEMPT"

	// Protected data reads.
	ActionDataAccessContacts Action = "DATA_ACCESS_CONTACTS"
	ActionDataAccessError    Action = "DATA_ACCESS_ERROR"
	ActionLogsAccessed       Action = "LOGS_ACCESSED"
)

// timeLayout matches ISO-8601 with millisecond precision, the format the log
// file has always used.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is one audit record. Details are free-form and flattened alongside
// timestamp and action when serialized, one JSON object per log line.
type Entry struct {
	Timestamp time.Time
	Action    Action
	Details   map[string]any
}

// MarshalJSON flattens Details into the top-level object.
func (e Entry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Details)+2)
	for k, v := range e.Details {
		m[k] = v
	}
	m["timestamp"] = e.Timestamp.UTC().Format(timeLayout)
	m["action"] = string(e.Action)
	return json.Marshal(m)
}

// UnmarshalJSON reverses MarshalJSON, collecting unknown keys into Details.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	if raw, ok := m["timestamp"].(string); ok {
		ts, err := time.Parse(timeLayout, raw)
		if err != nil {
			ts, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				return fmt.Errorf("parse audit timestamp %q: %w", raw, err)
			}
		}
		e.Timestamp = ts
	}
	if action, ok := m["action"].(string); ok {
		e.Action = Action(action)
	}
	delete(m, "timestamp")
	delete(m, "action")
	if len(m) > 0 {
		e.Details = m
	} else {
		e.Details = nil
	}
	return nil
}

// Store persists audit entries in append order.
type Store interface {
	Append(ctx context.Context, e Entry) error
	// Tail returns up to n of the most recent entries, newest first. A store
	// with no entries yet returns an empty result, not an error.
	Tail(ctx context.Context, n int) ([]Entry, error)
}

// Publisher mirrors entries to an external sink (e.g. a SIEM topic).
// Publishing is best-effort; implementations must not block the caller.
type Publisher interface {
	Publish(ctx context.Context, e Entry)
}
