package http

import (
	"github.com/gin-gonic/gin"
)

// PublicRouteGroup defines routes that don't require authentication.
type PublicRouteGroup interface {
	// RegisterPublicRoutes registers public routes to the given router group.
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// ProtectedRouteGroup defines routes mounted on the authenticated admin group.
type ProtectedRouteGroup interface {
	// RegisterProtectedRoutes registers protected routes to the given router group.
	RegisterProtectedRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

var (
	_ PublicRouteGroup    = (*AuthRoutes)(nil)
	_ PublicRouteGroup    = (*BundleRoutes)(nil)
	_ ProtectedRouteGroup = (*BundleRoutes)(nil)
	_ ProtectedRouteGroup = (*AuditRoutes)(nil)
)
