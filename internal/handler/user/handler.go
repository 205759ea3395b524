package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/handler"
	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/service/registration"
	"github.com/carex-health/carex-api/internal/validation"
)

type Handler struct {
	service   registration.RegistrationService
	validator *validation.Validator
}

func NewHandler(service registration.RegistrationService, validator *validation.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// ResolveUser handles the contact form. The response's next destination
// depends on both account existence and patient existence.
func (h *Handler) ResolveUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if fieldErrs := h.validator.Validate(&req); fieldErrs != nil {
		handler.RespondValidation(c, fieldErrs)
		return
	}

	resolution, err := h.service.ResolveOrCreateUser(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if resolution.Created {
		status = http.StatusCreated
	}
	c.JSON(status, handler.NewSuccessResponse(resolution.User).WithNext(resolution.Next))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("/resolve", h.ResolveUser)
		users.GET("/:id", h.GetUser)
	}
}
