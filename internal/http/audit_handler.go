package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/service"
)

// maxAuditLimit caps the page size of the audit log endpoint.
const maxAuditLimit = 500

// AuditHandler serves the admin audit log query.
type AuditHandler struct {
	logs service.LoggingService
}

// NewAuditHandler creates an audit log handler.
func NewAuditHandler(logs service.LoggingService) *AuditHandler {
	return &AuditHandler{logs: logs}
}

// ListAuditLogs handles GET /api/admin/audit-logs.
//
// @Summary      Query audit logs
// @Description  Returns admin actions recorded in MongoDB, newest first. Only available when MongoDB is enabled.
// @Tags         Admin
// @Produce      json
// @Param        action query string false "Action type, e.g. create_bundle"
// @Param        bundle query string false "Bundle slug"
// @Param        actor  query string false "Admin email or api-key"
// @Param        since  query string false "RFC 3339 lower bound"
// @Param        until  query string false "RFC 3339 upper bound"
// @Param        limit  query int    false "Maximum entries (default 100, max 500)"
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditLogPage}
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      503 {object} dto.ErrorResponse "Bundle storage is unavailable"
// @Security     BearerAuth
// @Router       /api/admin/audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	opts, err := parseAuditQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		_ = c.Error(err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if entries == nil {
		entries = []model.LogEntry{}
	}
	NewResponseBuilder(c).SuccessOK(dto.AuditLogPage{Entries: entries, Total: total})
}

func parseAuditQuery(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		ActionType: c.Query("action"),
		BundleSlug: c.Query("bundle"),
		Actor:      c.Query("actor"),
		AuditOnly:  true,
	}
	errs := dto.FieldErrors{}

	for field, dst := range map[string]**time.Time{"since": &opts.StartTime, "until": &opts.EndTime} {
		raw := c.Query(field)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			errs[field] = "must be an RFC 3339 timestamp"
			continue
		}
		*dst = &t
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxAuditLimit {
			errs["limit"] = "must be between 1 and " + strconv.Itoa(maxAuditLimit)
		} else {
			opts.Limit = limit
		}
	}

	if len(errs) > 0 {
		return opts, errs
	}
	return opts, nil
}
