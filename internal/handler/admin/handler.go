package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/handler"
	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/service/appointment"
	"github.com/carex-health/carex-api/internal/validation"
)

// Handler serves the admin dashboard. All routes are mounted behind the gate
// guard; the appointment list and its mutations share the one injected
// service rather than an ambient context.
type Handler struct {
	service   appointment.AppointmentService
	validator *validation.Validator
}

func NewHandler(service appointment.AppointmentService, validator *validation.Validator) *Handler {
	return &Handler{service: service, validator: validator}
}

type dashboardData struct {
	Appointments []*model.Appointment    `json:"appointments"`
	Stats        *model.AppointmentStats `json:"stats"`
}

// ListAppointments returns every appointment plus counts by status for the
// stat cards. No pagination; the dashboard refetches after every mutation.
func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, stats, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(&dashboardData{
		Appointments: appointments,
		Stats:        stats,
	}))
}

// ScheduleAppointment confirms a pending appointment.
func (h *Handler) ScheduleAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.ScheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if fieldErrs := h.validator.Validate(&req); fieldErrs != nil {
		handler.RespondValidation(c, fieldErrs)
		return
	}

	updated, err := h.service.ScheduleAppointment(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

// CancelAppointment cancels a pending appointment with a required reason.
func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	if fieldErrs := h.validator.Validate(&req); fieldErrs != nil {
		handler.RespondValidation(c, fieldErrs)
		return
	}

	updated, err := h.service.CancelAppointment(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.POST("/:id/schedule", h.ScheduleAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
	}
}
