package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carex-health/carex-api/internal/handler"
	"github.com/carex-health/carex-api/internal/service/flow"
	"github.com/carex-health/carex-api/internal/service/gate"
)

// GateGuard protects dashboard routes. It rejects requests whose session
// token is missing, invalid, or revoked, pointing the client back at the
// locked entry.
type GateGuard struct {
	gate *gate.Service
}

func NewGateGuard(g *gate.Service) *GateGuard {
	return &GateGuard{gate: g}
}

func (m *GateGuard) RequireUnlocked() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortLocked(c, "missing authorization header")
			return
		}

		if err := m.gate.Verify(c.Request.Context(), token); err != nil {
			abortLocked(c, "admin gate is locked")
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func abortLocked(c *gin.Context, message string) {
	resp := handler.NewErrorResponse(message).WithNext(flow.LockedGate())
	c.AbortWithStatusJSON(http.StatusUnauthorized, resp)
}
