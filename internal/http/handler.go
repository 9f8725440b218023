// Package http exposes the bundle service over a gin router.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/i18n"
	"github.com/guttosm/bundle-service/internal/middleware"
	"github.com/guttosm/bundle-service/internal/service"
)

// Handler serves the bundle routes.
type Handler struct {
	bundles service.BundleService
	audit   middleware.LogSink
}

// NewHandler creates a bundle handler. audit may be nil.
func NewHandler(bundles service.BundleService, audit middleware.LogSink) *Handler {
	return &Handler{bundles: bundles, audit: audit}
}

// ListBundles handles GET /api/bundles.
//
// @Summary      List bundles
// @Description  Returns every stored bundle definition as a plain JSON array, oldest first.
// @Tags         Bundles
// @Produce      json
// @Success      200 {array}  model.Bundle
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Bundle storage is unavailable"
// @Router       /api/bundles [get]
func (h *Handler) ListBundles(c *gin.Context) {
	bundles, err := h.bundles.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, bundles)
}

// ListViews handles GET /api/bundles/views.
//
// @Summary      List priced bundle views
// @Description  Resolves every bundle against the current product catalog and returns the priced views. When the catalog is down the views are derived against an empty catalog.
// @Tags         Bundles
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.BundleView}
// @Failure      503 {object} dto.ErrorResponse "Bundle storage is unavailable"
// @Router       /api/bundles/views [get]
func (h *Handler) ListViews(c *gin.Context) {
	views, err := h.bundles.Views(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	NewResponseBuilder(c).SuccessOK(views)
}

// GetBundle handles GET /api/bundles/:slug.
//
// @Summary      Get bundle
// @Tags         Bundles
// @Produce      json
// @Param        slug path string true "Bundle slug"
// @Success      200 {object} model.Bundle
// @Failure      404 {object} dto.ErrorResponse "Bundle not found"
// @Router       /api/bundles/{slug} [get]
func (h *Handler) GetBundle(c *gin.Context) {
	bundle, err := h.bundles.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// ListProducts handles GET /api/products.
//
// @Summary      List catalog products
// @Description  Returns the normalized upstream product catalog the bundles are resolved against.
// @Tags         Products
// @Produce      json
// @Success      200 {array}  model.Product
// @Failure      503 {object} dto.ErrorResponse "Product catalog is unavailable"
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.bundles.Products(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateBundle handles POST /api/admin/bundles.
//
// @Summary      Create bundle
// @Description  Creates a bundle. The slug is derived from id, then slug, then name. Supports the Idempotency-Key header.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.BundleRequest true "Bundle definition"
// @Success      201 {object} model.Bundle
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden"
// @Failure      409 {object} dto.ErrorResponse "Bundle with this slug already exists"
// @Failure      422 {object} dto.ErrorResponse "Idempotency key reused with a different body"
// @Security     BearerAuth
// @Router       /api/admin/bundles [post]
func (h *Handler) CreateBundle(c *gin.Context) {
	req, err := BuildRequest[dto.BundleRequest](c)
	if err != nil {
		return
	}

	bundle, err := h.bundles.Create(c.Request.Context(), *req)
	slug := model.Slugify(req.SlugSource())
	middleware.Audit(h.audit, c, model.ActionCreateBundle, slug, "Bundle created", err)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, bundle)
}

// UpdateBundle handles PUT /api/admin/bundles/:slug.
//
// @Summary      Update bundle
// @Description  Merges the fields present in the body into the bundle. The slug never changes. An explicit null fixedPrice clears it.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        slug path string true "Bundle slug"
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.UpdateBundleRequest true "Fields to change"
// @Success      200 {object} model.Bundle
// @Failure      400 {object} dto.ErrorResponse "Validation failed"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Bundle not found"
// @Security     BearerAuth
// @Router       /api/admin/bundles/{slug} [put]
func (h *Handler) UpdateBundle(c *gin.Context) {
	req, err := BuildRequest[dto.UpdateBundleRequest](c)
	if err != nil {
		return
	}

	slug := c.Param("slug")
	bundle, err := h.bundles.Update(c.Request.Context(), slug, *req)
	middleware.Audit(h.audit, c, model.ActionUpdateBundle, slug, "Bundle updated", err)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

// DeleteBundle handles DELETE /api/admin/bundles/:slug.
//
// @Summary      Delete bundle
// @Tags         Admin
// @Produce      json
// @Param        slug path string true "Bundle slug"
// @Success      200 {object} map[string]string "Bundle deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      404 {object} dto.ErrorResponse "Bundle not found"
// @Security     BearerAuth
// @Router       /api/admin/bundles/{slug} [delete]
func (h *Handler) DeleteBundle(c *gin.Context) {
	slug := c.Param("slug")
	err := h.bundles.Delete(c.Request.Context(), slug)
	middleware.Audit(h.audit, c, model.ActionDeleteBundle, slug, "Bundle deleted", err)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(c, i18n.SuccessKeyBundleDeleted)})
}
