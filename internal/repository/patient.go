package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/store"
)

type patientRepository struct {
	store      store.Store
	collection string
}

func NewPatientRepository(s store.Store, collection string) PatientRepository {
	return &patientRepository{store: s, collection: collection}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if err := r.store.Create(ctx, r.collection, patient.ID, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.store.Get(ctx, r.collection, id, &patient); err != nil {
		if err == store.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// FindByUser returns the patient owned by userID, or store.ErrNotFound.
func (r *patientRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	var patients []*model.Patient
	filters := []store.Filter{{Field: "user_id", Value: userID.String()}}
	if err := r.store.List(ctx, r.collection, filters, &patients); err != nil {
		return nil, fmt.Errorf("failed to look up patient by user: %w", err)
	}
	if len(patients) == 0 {
		return nil, store.ErrNotFound
	}
	return patients[0], nil
}
