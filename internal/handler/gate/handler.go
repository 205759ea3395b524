package gate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carex-health/carex-api/internal/handler"
	"github.com/carex-health/carex-api/internal/service/flow"
	"github.com/carex-health/carex-api/internal/service/gate"
)

// The exact messages the passkey form shows.
const (
	msgInvalidLength = "Please enter a valid passkey"
	msgMismatch      = "Invalid passkey. Please try again."
)

type Handler struct {
	service *gate.Service
}

func NewHandler(service *gate.Service) *Handler {
	return &Handler{service: service}
}

type unlockRequest struct {
	Passkey string `json:"passkey"`
}

// Unlock validates the entered passkey. Mismatches come back as field-scoped
// messages the form can show next to the input.
func (h *Handler) Unlock(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	session, err := h.service.Unlock(c.Request.Context(), req.Passkey)
	if errors.Is(err, gate.ErrPasskeyLength) {
		respondPasskeyError(c, http.StatusBadRequest, msgInvalidLength)
		return
	}
	if errors.Is(err, gate.ErrPasskeyMismatch) {
		respondPasskeyError(c, http.StatusUnauthorized, msgMismatch)
		return
	}
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(session).WithNext(flow.Dashboard()))
}

// Logout revokes the session marker; a later dashboard visit with the same
// token is redirected to the locked entry.
func (h *Handler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil).WithNext(flow.LockedGate()))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/gate")
	{
		g.POST("/unlock", h.Unlock)
		g.POST("/logout", h.Logout)
	}
}

func respondPasskeyError(c *gin.Context, status int, message string) {
	c.JSON(status, &handler.Response{
		Status:  "error",
		Message: message,
		Errors:  map[string]string{"passkey": message},
	})
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
