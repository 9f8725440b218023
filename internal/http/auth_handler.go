package http

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/middleware"
	"github.com/guttosm/bundle-service/internal/service"
)

// AuthHandler serves the admin login route.
type AuthHandler struct {
	authService service.AuthService
	audit       middleware.LogSink
}

// NewAuthHandler creates an authentication handler. audit may be nil.
func NewAuthHandler(authService service.AuthService, audit middleware.LogSink) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit}
}

// Login handles POST /api/auth/login.
//
// @Summary      Admin login
// @Description  Checks the configured admin credentials and returns an HS256 JWT carrying the admin role.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.LoginRequest](c)
	if err != nil {
		return
	}

	tokens, claims, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Set(string(middleware.ActorKey), req.Email)
		middleware.Audit(h.audit, c, model.ActionLogin, "", "Failed login attempt", err)
		_ = c.Error(err)
		return
	}

	c.Set(string(middleware.ActorKey), claims.Email)
	middleware.Audit(h.audit, c, model.ActionLogin, "", "Admin logged in", nil)

	NewResponseBuilder(c).SuccessOK(dto.LoginResponse{
		Token:     tokens.AccessToken,
		ExpiresIn: tokens.ExpiresIn,
		Roles:     claims.Roles,
	})
}
