package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

// RegisterPatient handles the registration form. Submission is blocked with
// field-scoped messages unless every rule passes, including all three
// consent flags.
func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if fieldErrs := h.validator.Validate(&req); fieldErrs != nil {
		handler.RespondValidation(c, fieldErrs)
		return
	}

	patient, next, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient).WithNext(next))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.RegisterPatient)
	}
}
