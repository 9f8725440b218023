package dto

// LoginRequest represents the JSON request body for the admin login endpoint.
//
// @Description Request to authenticate an admin
// @Example {"email": "admin@example.com", "password": "password123"}
type LoginRequest struct {
	// Email is the admin's email address.
	Email string `json:"email" binding:"required,email" example:"admin@example.com"`
	// Password is the admin's password.
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with a JWT access token
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"3600"`
	// Roles are the roles granted by the token.
	Roles []string `json:"roles" example:"admin"`
} // @name LoginResponse

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return FieldErrors{"email": "email is required"}
	}
	if len(r.Password) < 6 {
		return FieldErrors{"password": "password must be at least 6 characters"}
	}
	return nil
}

// TokenPair is an issued access token and its lifetime.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// Claims are the identity claims extracted from a validated token.
type Claims struct {
	Subject string   `json:"sub"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
}

// HasRole reports whether the claims grant role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
