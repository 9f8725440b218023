package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action types recorded for admin bundle operations.
const (
	ActionLogin        = "login"
	ActionCreateBundle = "create_bundle"
	ActionUpdateBundle = "update_bundle"
	ActionDeleteBundle = "delete_bundle"
)

// LogEntry is a request or audit log record.
// Request logs fill the HTTP fields; audit logs additionally carry Actor,
// ActionType and BundleSlug.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Actor      string                 `bson:"actor,omitempty" json:"actor,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	BundleSlug string                 `bson:"bundle_slug,omitempty" json:"bundle_slug,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField adds a field to the entry, initializing Fields when needed.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// LogQueryOptions filters audit log queries.
type LogQueryOptions struct {
	ActionType string
	BundleSlug string
	Actor      string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int

	// AuditOnly excludes request logs.
	AuditOnly bool
}
