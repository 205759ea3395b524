package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

// Lifecycle: pending is the only non-terminal state. Scheduled and cancelled
// appointments are never mutated again, and appointments are never deleted.
const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a scheduling request. PatientName is a denormalized display
// string rather than a reference; renaming a patient does not update past
// appointments. This mirrors the store's query limitations and is a known
// consistency gap.
type Appointment struct {
	ID                 uuid.UUID         `json:"id"`
	UserID             uuid.UUID         `json:"user_id"`
	PatientName        string            `json:"patient"`
	PrimaryPhysician   string            `json:"primary_physician"`
	Reason             string            `json:"reason"`
	Note               string            `json:"note,omitempty"`
	Schedule           time.Time         `json:"schedule"`
	Status             AppointmentStatus `json:"status"`
	AdminNote          string            `json:"admin_note,omitempty"`
	CancellationReason string            `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// CreateAppointmentRequest carries the appointment request form.
type CreateAppointmentRequest struct {
	UserID           string    `json:"user_id" validate:"required,uuid"`
	PatientName      string    `json:"patient" validate:"required"`
	PrimaryPhysician string    `json:"primary_physician" validate:"required,min=2"`
	Schedule         time.Time `json:"schedule" validate:"required"`
	Reason           string    `json:"reason" validate:"required,min=2,max=500"`
	Note             string    `json:"note,omitempty"`
}

// ScheduleAppointmentRequest carries the admin schedule-update form.
type ScheduleAppointmentRequest struct {
	PrimaryPhysician string    `json:"primary_physician" validate:"required,min=2"`
	Schedule         time.Time `json:"schedule" validate:"required"`
	AdminNote        string    `json:"admin_note,omitempty"`
}

// CancelAppointmentRequest carries the admin cancellation form.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required,min=2,max=500"`
}

// AppointmentStats aggregates dashboard counts by status.
type AppointmentStats struct {
	Pending   int `json:"pending"`
	Scheduled int `json:"scheduled"`
	Cancelled int `json:"cancelled"`
}
