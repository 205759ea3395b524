package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/handler"
	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/service/appointment"
	"github.com/carex-health/carex-api/internal/validation"
)

type Handler struct {
	service   appointment.AppointmentService
	validator *validation.Validator
}

func NewHandler(service appointment.AppointmentService, validator *validation.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

// CreateAppointment handles the appointment request form. New appointments
// always start out pending.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if fieldErrs := h.validator.Validate(&req); fieldErrs != nil {
		handler.RespondValidation(c, fieldErrs)
		return
	}

	created, next, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created).WithNext(next))
}

// GetAppointment backs the confirmation view.
func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	found, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
	}
}
