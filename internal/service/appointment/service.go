// Package appointment implements the scheduling-request lifecycle: creation
// at intake and the admin schedule/cancel transitions.
package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/repository"
	"github.com/carex-health/carex-api/internal/service/flow"
	"github.com/carex-health/carex-api/internal/store"
	apperrors "github.com/carex-health/carex-api/pkg/errors"
)

// Notifier is told about admin decisions so the patient can be informed.
// Notification failures never fail the mutation.
type Notifier interface {
	AppointmentScheduled(ctx context.Context, to string, appointment *model.Appointment)
	AppointmentCancelled(ctx context.Context, to string, appointment *model.Appointment)
}

// AppointmentService is the scheduling orchestration surface.
type AppointmentService interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, flow.Destination, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	ListAppointments(ctx context.Context) ([]*model.Appointment, *model.AppointmentStats, error)
	ScheduleAppointment(ctx context.Context, id uuid.UUID, req *model.ScheduleAppointmentRequest) (*model.Appointment, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, req *model.CancelAppointmentRequest) (*model.Appointment, error)
}

type Service struct {
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	notifier     Notifier
}

func NewService(appointments repository.AppointmentRepository, users repository.UserRepository, notifier Notifier) *Service {
	return &Service{
		appointments: appointments,
		users:        users,
		notifier:     notifier,
	}
}

// CreateAppointment inserts a new pending appointment and routes the client
// to its confirmation view. The chosen physician must be on the roster.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, flow.Destination, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, flow.Destination{}, apperrors.BadRequest("invalid user ID", err)
	}
	if !model.IsKnownPhysician(req.PrimaryPhysician) {
		return nil, flow.Destination{}, apperrors.BadRequest("unknown physician", nil)
	}

	now := time.Now().UTC()
	appointment := &model.Appointment{
		ID:               uuid.New(),
		UserID:           userID,
		PatientName:      req.PatientName,
		PrimaryPhysician: req.PrimaryPhysician,
		Reason:           req.Reason,
		Note:             req.Note,
		Schedule:         req.Schedule,
		Status:           model.AppointmentStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, flow.Destination{}, fmt.Errorf("failed to create appointment: %w", err)
	}

	return appointment, flow.Confirmation(userID, appointment.ID), nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.appointments.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

// ListAppointments returns every appointment together with counts by status
// for the dashboard stat cards.
func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, *model.AppointmentStats, error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	stats := &model.AppointmentStats{}
	for _, a := range appointments {
		switch a.Status {
		case model.AppointmentStatusPending:
			stats.Pending++
		case model.AppointmentStatusScheduled:
			stats.Scheduled++
		case model.AppointmentStatusCancelled:
			stats.Cancelled++
		}
	}
	return appointments, stats, nil
}

// ScheduleAppointment moves a pending appointment to scheduled and records
// the physician, date and admin note. Scheduled and cancelled are terminal;
// mutating them is a conflict.
func (s *Service) ScheduleAppointment(ctx context.Context, id uuid.UUID, req *model.ScheduleAppointmentRequest) (*model.Appointment, error) {
	if !model.IsKnownPhysician(req.PrimaryPhysician) {
		return nil, apperrors.BadRequest("unknown physician", nil)
	}

	appointment, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != model.AppointmentStatusPending {
		return nil, apperrors.Conflict(fmt.Sprintf("appointment is already %s", appointment.Status), nil)
	}

	if err := s.appointments.Schedule(ctx, id, req.PrimaryPhysician, req.Schedule, req.AdminNote); err != nil {
		return nil, fmt.Errorf("failed to schedule appointment: %w", err)
	}

	appointment.Status = model.AppointmentStatusScheduled
	appointment.PrimaryPhysician = req.PrimaryPhysician
	appointment.Schedule = req.Schedule
	appointment.AdminNote = req.AdminNote

	if s.notifier != nil {
		s.notify(ctx, appointment, s.notifier.AppointmentScheduled)
	}
	return appointment, nil
}

// CancelAppointment moves a pending appointment to cancelled and records the
// reason. The appointment is never deleted.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, req *model.CancelAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status != model.AppointmentStatusPending {
		return nil, apperrors.Conflict(fmt.Sprintf("appointment is already %s", appointment.Status), nil)
	}

	if err := s.appointments.Cancel(ctx, id, req.CancellationReason); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	appointment.Status = model.AppointmentStatusCancelled
	appointment.CancellationReason = req.CancellationReason

	if s.notifier != nil {
		s.notify(ctx, appointment, s.notifier.AppointmentCancelled)
	}
	return appointment, nil
}

func (s *Service) notify(ctx context.Context, appointment *model.Appointment, send func(context.Context, string, *model.Appointment)) {
	user, err := s.users.Get(ctx, appointment.UserID)
	if err != nil {
		return
	}
	send(ctx, user.Email, appointment)
}
