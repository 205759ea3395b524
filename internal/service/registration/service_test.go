package registration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/repository"
	"github.com/carex-health/carex-api/internal/service/flow"
	"github.com/carex-health/carex-api/internal/store"
	apperrors "github.com/carex-health/carex-api/pkg/errors"
)

func newTestService() (*Service, repository.UserRepository, repository.PatientRepository) {
	s := store.NewMemoryStore()
	users := repository.NewUserRepository(s, "users")
	patients := repository.NewPatientRepository(s, "patients")
	return NewService(users, patients), users, patients
}

func contactRequest() *model.CreateUserRequest {
	return &model.CreateUserRequest{
		Username: "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1 415-555-2671",
	}
}

func registerRequest(userID string) *model.RegisterPatientRequest {
	return &model.RegisterPatientRequest{
		UserID:                 userID,
		Username:               "Jane Doe",
		Email:                  "jane@example.com",
		Phone:                  "+1 415-555-2671",
		BirthDate:              time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:                 "Female",
		Address:                "14 Elm Street, Springfield",
		Occupation:             "Engineer",
		EmergencyContactName:   "John Doe",
		EmergencyContactNumber: "(415) 555 2671",
		PrimaryPhysician:       "John Green",
		InsuranceProvider:      "BlueCross",
		InsurancePolicyNumber:  "ABC123456",
		TreatmentConsent:       true,
		DisclosureConsent:      true,
		PrivacyConsent:         true,
	}
}

func TestResolveCreatesAccountForUnknownEmail(t *testing.T) {
	svc, users, _ := newTestService()
	ctx := context.Background()

	res, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.True(t, res.Created)
	assert.Equal(t, flow.KindRegister, res.Next.Kind)
	assert.Equal(t, res.User.ID.String(), res.Next.UserID)

	// Exactly one account was created.
	stored, err := users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, stored.ID)
}

func TestResolveRoutesToRegisterWhenNoPatient(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)

	second, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, flow.KindRegister, second.Next.Kind)
	assert.Equal(t, first.User.ID.String(), second.Next.UserID)
}

func TestResolveRoutesToNewAppointmentOnceRegistered(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)

	patient, next, err := svc.CreatePatient(ctx, registerRequest(res.User.ID.String()))
	require.NoError(t, err)
	assert.Equal(t, flow.KindNewAppointment, next.Kind)
	assert.Equal(t, patient.ID.String(), next.PatientID)

	resolved, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)
	assert.False(t, resolved.Created)
	assert.Equal(t, flow.KindNewAppointment, resolved.Next.Kind)
	assert.Equal(t, patient.ID.String(), resolved.Next.PatientID)
}

func TestResolveIsIdempotentWhileStateUnchanged(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)

	first, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)
	second, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)
	assert.Equal(t, first.Next, second.Next)
}

func TestCreatePatientRejectsMissingConsent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)

	req := registerRequest(res.User.ID.String())
	req.PrivacyConsent = false
	_, _, err = svc.CreatePatient(ctx, req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreatePatientRejectsSecondRegistration(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	res, err := svc.ResolveOrCreateUser(ctx, contactRequest())
	require.NoError(t, err)

	_, _, err = svc.CreatePatient(ctx, registerRequest(res.User.ID.String()))
	require.NoError(t, err)

	_, _, err = svc.CreatePatient(ctx, registerRequest(res.User.ID.String()))
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreatePatientRejectsUnknownAccount(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.CreatePatient(context.Background(), registerRequest("9f3b7e1a-0000-4000-8000-000000000000"))
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetUserNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetUser(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
