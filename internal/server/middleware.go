package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	auditcontext "github.com/smallbiznis/hoteldesk/internal/auditcontext"
	authdomain "github.com/smallbiznis/hoteldesk/internal/auth/domain"
	obscontext "github.com/smallbiznis/hoteldesk/internal/observability/context"
)

const contextPrincipalKey = "principal"

// AuthRequired resolves the session cookie into a principal and hands the
// acting user down to services through the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		principal, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if principal == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := c.Request.Context()
		ctx = auditcontext.WithActor(ctx, auditcontext.Actor{
			ID:    principal.ID,
			Email: principal.Email,
			Role:  string(principal.Role),
		})
		ctx = obscontext.WithActor(ctx, principal.ID, string(principal.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Set(contextPrincipalKey, *principal)
		c.Next()
	}
}

func principalFromContext(c *gin.Context) (authdomain.Principal, bool) {
	value, ok := c.Get(contextPrincipalKey)
	if !ok {
		return authdomain.Principal{}, false
	}
	principal, ok := value.(authdomain.Principal)
	if !ok || strings.TrimSpace(principal.ID) == "" {
		return authdomain.Principal{}, false
	}
	return principal, true
}

func isAdmin(c *gin.Context) bool {
	principal, ok := principalFromContext(c)
	return ok && principal.Role == authdomain.RoleAdmin
}
