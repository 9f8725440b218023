package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/service"
)

// BundleRoutes registers the bundle and product routes.
type BundleRoutes struct {
	handler *Handler
}

// NewBundleRoutes creates bundle routes for handler.
func NewBundleRoutes(handler *Handler) *BundleRoutes {
	return &BundleRoutes{handler: handler}
}

// RegisterPublicRoutes registers the read-only storefront routes.
func (r *BundleRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	if r.handler == nil {
		return
	}
	rg.GET("/bundles", r.handler.ListBundles)
	rg.GET("/bundles/views", r.handler.ListViews)
	rg.GET("/bundles/:slug", r.handler.GetBundle)
	rg.GET("/products", r.handler.ListProducts)
}

// RegisterProtectedRoutes registers the admin write routes.
func (r *BundleRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	if r.handler == nil {
		return
	}
	rg.POST("/bundles", r.handler.CreateBundle)
	rg.PUT("/bundles/:slug", r.handler.UpdateBundle)
	rg.DELETE("/bundles/:slug", r.handler.DeleteBundle)
}

// AuditRoutes registers the audit log query.
type AuditRoutes struct {
	handler *AuditHandler
}

// NewAuditRoutes creates audit routes on logs.
func NewAuditRoutes(logs service.LoggingService) *AuditRoutes {
	return &AuditRoutes{handler: NewAuditHandler(logs)}
}

// RegisterProtectedRoutes registers GET /audit-logs.
func (r *AuditRoutes) RegisterProtectedRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.GET("/audit-logs", r.handler.ListAuditLogs)
}
