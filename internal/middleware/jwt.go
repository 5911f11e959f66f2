package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/response"
	"github.com/stemsi/course-marketplace/internal/service"
)

// Context keys are distinct per principal kind so an admin can never be read as a user.
const (
	contextKeyAdmin = "principal_admin"
	contextKeyUser  = "principal_user"
)

// AdminPrincipal is the verified admin attached to the request.
type AdminPrincipal struct {
	Email string
}

// UserPrincipal is the verified user attached to the request.
type UserPrincipal struct {
	Email string
}

// TokenValidator verifies a token for one principal kind.
type TokenValidator interface {
	ValidateToken(kind model.PrincipalKind, tokenStr string) (*service.Claims, error)
}

// RequireAdminJWT validates an admin token from the Authorization header.
func RequireAdminJWT(auth TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth, model.PrincipalAdmin)
		if !ok {
			return
		}
		c.Set(contextKeyAdmin, &AdminPrincipal{Email: claims.Email()})
		c.Next()
	}
}

// RequireUserJWT validates a user token from the Authorization header.
func RequireUserJWT(auth TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth, model.PrincipalUser)
		if !ok {
			return
		}
		c.Set(contextKeyUser, &UserPrincipal{Email: claims.Email()})
		c.Next()
	}
}

// GetAdmin retrieves the admin principal set by RequireAdminJWT.
func GetAdmin(c *gin.Context) (*AdminPrincipal, bool) {
	val, exists := c.Get(contextKeyAdmin)
	if !exists {
		return nil, false
	}
	p, ok := val.(*AdminPrincipal)
	return p, ok
}

// GetUser retrieves the user principal set by RequireUserJWT.
func GetUser(c *gin.Context) (*UserPrincipal, bool) {
	val, exists := c.Get(contextKeyUser)
	if !exists {
		return nil, false
	}
	p, ok := val.(*UserPrincipal)
	return p, ok
}

// authenticate aborts the chain with the matching error and returns false on failure.
func authenticate(c *gin.Context, auth TokenValidator, kind model.PrincipalKind) (*service.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		response.AbortFail(c, response.ErrTokenRequired)
		return nil, false
	}

	if !isVisibleASCII(header) {
		response.AbortFail(c, response.ErrInternal)
		return nil, false
	}

	// Clients send the bare token; a Bearer scheme is accepted too.
	tokenStr := header
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		tokenStr = strings.TrimSpace(parts[1])
	}

	claims, err := auth.ValidateToken(kind, tokenStr)
	if err != nil {
		response.AbortFail(c, response.ErrTokenInvalid)
		return nil, false
	}
	return claims, true
}

func isVisibleASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '\t' || (b >= 0x20 && b < 0x7f) {
			continue
		}
		return false
	}
	return true
}
