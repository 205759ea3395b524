package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/store"
)

type appointmentRepository struct {
	store      store.Store
	collection string
}

func NewAppointmentRepository(s store.Store, collection string) AppointmentRepository {
	return &appointmentRepository{store: s, collection: collection}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	if err := r.store.Create(ctx, r.collection, appointment.ID, appointment); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := r.store.Get(ctx, r.collection, id, &appointment); err != nil {
		if err == store.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// List returns every appointment; no pagination or filtering at this layer.
func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	if err := r.store.List(ctx, r.collection, nil, &appointments); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Update maps carry only JSON-primitive values so every backend round-trips
// them identically.
func (r *appointmentRepository) Schedule(ctx context.Context, id uuid.UUID, physician string, schedule time.Time, adminNote string) error {
	fields := map[string]interface{}{
		"status":            string(model.AppointmentStatusScheduled),
		"primary_physician": physician,
		"schedule":          schedule.Format(time.RFC3339Nano),
		"admin_note":        adminNote,
		"updated_at":        time.Now().Format(time.RFC3339Nano),
	}
	if err := r.store.Update(ctx, r.collection, id, fields); err != nil {
		if err == store.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to schedule appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	fields := map[string]interface{}{
		"status":              string(model.AppointmentStatusCancelled),
		"cancellation_reason": reason,
		"updated_at":          time.Now().Format(time.RFC3339Nano),
	}
	if err := r.store.Update(ctx, r.collection, id, fields); err != nil {
		if err == store.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	return nil
}
