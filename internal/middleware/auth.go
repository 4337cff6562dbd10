package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nazaclinic/booking-api/internal/handler"
	"github.com/nazaclinic/booking-api/internal/service/auth"
)

const (
	ContextSubjectID   = "subject_id"
	ContextSubjectRole = "subject_role"
	ContextSubjectName = "subject_name"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

func (m *AuthMiddleware) claimsFromHeader(c *gin.Context) *auth.Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil
	}

	claims, err := m.authService.ValidateToken(parts[1])
	if err != nil {
		return nil
	}
	return claims
}

func (m *AuthMiddleware) require(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := m.claimsFromHeader(c)
		if claims == nil || claims.Role != role {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse(role+" access required"))
			c.Abort()
			return
		}

		c.Set(ContextSubjectID, claims.SubjectID)
		c.Set(ContextSubjectRole, claims.Role)
		c.Set(ContextSubjectName, claims.Name)
		c.Next()
	}
}

// RequireAdmin guards admin-only routes.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.require(auth.RoleAdmin)
}

// RequirePatient guards the patient booking surface.
func (m *AuthMiddleware) RequirePatient() gin.HandlerFunc {
	return m.require(auth.RolePatient)
}

// Optional parses a token when present without rejecting anonymous callers.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := m.claimsFromHeader(c); claims != nil {
			c.Set(ContextSubjectID, claims.SubjectID)
			c.Set(ContextSubjectRole, claims.Role)
			c.Set(ContextSubjectName, claims.Name)
		}
		c.Next()
	}
}

// SubjectID returns the authenticated caller's id from the context.
func SubjectID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextSubjectID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
