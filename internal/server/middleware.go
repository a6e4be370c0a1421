package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryyderbros/wellness_server/internal/auth"
	"github.com/ryyderbros/wellness_server/internal/model"
)

const identityKey = "identity"

// authRequired verifies the Bearer token and stores the caller's identity in
// the request context.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid token"})
			return
		}

		identity, err := s.authManager.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// requireRole rejects callers whose role is not in the allowed set.
func (s *Server) requireRole(allowed ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := currentIdentity(c)
		if identity == nil || !identity.Role.OneOf(allowed...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: insufficient role"})
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) *auth.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*auth.Identity)
	return identity
}
