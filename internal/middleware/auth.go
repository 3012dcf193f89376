package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
	"github.com/pawmarket/pawmarket/internal/platform/token"
)

const actorContextKey = "actor"

// Auth returns a gin middleware that requires a valid Bearer access token.
// The parsed actor is stored in the gin context for handlers to read via
// GetActor. Missing or invalid credentials abort with 401.
func Auth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			pkg.Error(c, domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		actor, err := issuer.ParseAccess(strings.TrimPrefix(header, prefix))
		if err != nil {
			pkg.Error(c, err)
			c.Abort()
			return
		}

		c.Set(actorContextKey, *actor)
		c.Next()
	}
}

// RequireRole returns a gin middleware that aborts with 403 unless the
// authenticated actor has one of the given roles. Admins always pass.
// Must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			pkg.Error(c, domain.ErrUnauthenticated)
			c.Abort()
			return
		}
		if actor.Role == domain.RoleAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		pkg.Error(c, domain.ErrForbidden)
		c.Abort()
	}
}

// GetActor returns the authenticated actor stored by Auth, if any.
func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
