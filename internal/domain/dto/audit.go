package dto

import "github.com/guttosm/bundle-service/internal/domain/model"

// AuditLogPage is the response body of the audit log query endpoint.
//
// @Description Page of audit log entries, newest first
type AuditLogPage struct {
	Entries []model.LogEntry `json:"entries"`
	// Total counts every matching entry, ignoring the limit.
	Total int64 `json:"total" example:"42"`
} // @name AuditLogPage
