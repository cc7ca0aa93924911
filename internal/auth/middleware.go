package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubham90-developer/Total-Health-sub004/internal/common"
)

const (
	// Context keys
	ContextKeyUser = "auth_user"

	// Headers
	HeaderAuthorization = "Authorization"
)

// Middleware provides authentication and authorization middleware
type Middleware struct {
	tokenStore *TokenStore
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokenStore *TokenStore) *Middleware {
	return &Middleware{tokenStore: tokenStore}
}

// RequireToken returns a middleware that validates bearer tokens
func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader(HeaderAuthorization)
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// 2. Parse Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abort(c, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		// 3. Validate token
		principal, err := m.tokenStore.ValidateToken(parts[1])
		if err != nil {
			abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(ContextKeyUser, principal)
		c.Next()
	}
}

// RequireRole returns a middleware that checks if the user has the required role.
// Admins pass every role check.
func (m *Middleware) RequireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetUserFromContext(c)
		if principal == nil {
			abort(c, http.StatusUnauthorized, "not authenticated")
			return
		}

		if principal.Role != role && principal.Role != RoleAdmin {
			abort(c, http.StatusForbidden, fmt.Sprintf("requires %s role", role))
			return
		}

		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated principal from the context
func GetUserFromContext(c *gin.Context) *Principal {
	userVal, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	principal, ok := userVal.(*Principal)
	if !ok {
		return nil
	}
	return principal
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, common.CreateErrorResponseWithRequestID([]string{message}, common.RequestID(c)))
}
