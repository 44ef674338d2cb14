package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"authors-api/internal/shared/response"
	"authors-api/pkg/jwt"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxAuthorID    = "authorID"
	CtxAuthorEmail = "authorEmail"
)

// Auth verifies the bearer token and stores the decoded identity in the
// request context. Missing, malformed, invalid and expired tokens all
// terminate the request with a 401.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := manager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		c.Set(CtxAuthorID, claims.AuthorID)
		c.Set(CtxAuthorEmail, claims.Email)

		c.Next()
	}
}
