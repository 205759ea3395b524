// Package registration implements the intake orchestration: account
// resolution at first contact and patient creation during registration.
package registration

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

// RegistrationService is the intake orchestration surface.
type RegistrationService interface {
	ResolveOrCreateUser(ctx context.Context, req *model.CreateUserRequest) (*Resolution, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.UserAccount, error)
	CreatePatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, flow.Destination, error)
}

// Resolution is the outcome of resolving a contact-form submission.
type Resolution struct {
	User    *model.UserAccount `json:"user"`
	Created bool               `json:"created"`
	Next    flow.Destination   `json:"next"`
}

type Service struct {
	users    repository.UserRepository
	patients repository.PatientRepository
}

func NewService(users repository.UserRepository, patients repository.PatientRepository) *Service {
	return &Service{users: users, patients: patients}
}

// ResolveOrCreateUser looks up the account by exact email match and routes on
// the cross product of account existence and patient existence:
//
//	account exists, patient exists  -> new-appointment for that patient
//	account exists, no patient      -> register for that account
//	no account                      -> create account, register for it
//
// Concurrent submissions for the same email are not serialized; the store may
// end up with duplicate accounts. Accepted limitation.
func (s *Service) ResolveOrCreateUser(ctx context.Context, req *model.CreateUserRequest) (*Resolution, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if user != nil {
		patient, err := s.patients.FindByUser(ctx, user.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve patient: %w", err)
		}
		if patient != nil {
			return &Resolution{User: user, Next: flow.NewAppointment(patient.ID)}, nil
		}
		return &Resolution{User: user, Next: flow.Register(user.ID)}, nil
	}

	now := time.Now().UTC()
	created := &model.UserAccount{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &Resolution{User: created, Created: true, Next: flow.Register(created.ID)}, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.UserAccount, error) {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("user", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreatePatient inserts the intake record for an account. All three consent
// flags must be true, and an account registers at most one patient.
func (s *Service) CreatePatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, flow.Destination, error) {
	if !req.TreatmentConsent || !req.DisclosureConsent || !req.PrivacyConsent {
		return nil, flow.Destination{}, apperrors.BadRequest("all consent flags must be accepted", nil)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, flow.Destination{}, apperrors.BadRequest("invalid user ID", err)
	}

	if _, err := s.users.Get(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, flow.Destination{}, apperrors.NotFound("user", err)
		}
		return nil, flow.Destination{}, fmt.Errorf("failed to get user: %w", err)
	}

	existing, err := s.patients.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, flow.Destination{}, fmt.Errorf("failed to check existing patient: %w", err)
	}
	if existing != nil {
		return nil, flow.Destination{}, apperrors.Conflict("patient already registered for this account", nil)
	}

	now := time.Now().UTC()
	patient := &model.Patient{
		ID:                     uuid.New(),
		UserID:                 userID,
		BirthDate:              req.BirthDate,
		Gender:                 req.Gender,
		Address:                req.Address,
		Occupation:             req.Occupation,
		EmergencyContactName:   req.EmergencyContactName,
		EmergencyContactNumber: req.EmergencyContactNumber,
		PrimaryPhysician:       req.PrimaryPhysician,
		InsuranceProvider:      req.InsuranceProvider,
		InsurancePolicyNumber:  req.InsurancePolicyNumber,
		Allergies:              req.Allergies,
		CurrentMedication:      req.CurrentMedication,
		FamilyMedicalHistory:   req.FamilyMedicalHistory,
		PastMedicalHistory:     req.PastMedicalHistory,
		IdentificationType:     req.IdentificationType,
		IdentificationNumber:   req.IdentificationNumber,
		TreatmentConsent:       req.TreatmentConsent,
		DisclosureConsent:      req.DisclosureConsent,
		PrivacyConsent:         req.PrivacyConsent,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, flow.Destination{}, fmt.Errorf("failed to create patient: %w", err)
	}

	return patient, flow.NewAppointment(patient.ID), nil
}
