package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/model"
)

// UserRepository resolves and creates user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.UserAccount) error
	Get(ctx context.Context, id uuid.UUID) (*model.UserAccount, error)
	FindByEmail(ctx context.Context, email string) (*model.UserAccount, error)
}

// PatientRepository creates and looks up patient intake records.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*model.Patient, error)
}

// AppointmentRepository creates and mutates appointments. Schedule and
// Cancel overwrite status and their associated fields; the transition guard
// lives in the service layer.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	Schedule(ctx context.Context, id uuid.UUID, physician string, schedule time.Time, adminNote string) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
}
