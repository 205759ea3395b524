package appointment

import (
	"context"
	"sync"
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

type recordingNotifier struct {
	mu        sync.Mutex
	scheduled []string
	cancelled []string
}

func (n *recordingNotifier) AppointmentScheduled(_ context.Context, to string, _ *model.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scheduled = append(n.scheduled, to)
}

func (n *recordingNotifier) AppointmentCancelled(_ context.Context, to string, _ *model.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, to)
}

func newTestService(t *testing.T, notifier Notifier) (*Service, uuid.UUID) {
	t.Helper()

	s := store.NewMemoryStore()
	users := repository.NewUserRepository(s, "users")
	appointments := repository.NewAppointmentRepository(s, "appointments")

	user := &model.UserAccount{
		ID:        uuid.New(),
		Username:  "Jane Doe",
		Email:     "jane@example.com",
		Phone:     "+1 415-555-2671",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), user))

	return NewService(appointments, users, notifier), user.ID
}

func createRequest(userID uuid.UUID) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		UserID:           userID.String(),
		PatientName:      "Jane Doe",
		PrimaryPhysician: "John Green",
		Schedule:         time.Now().Add(48 * time.Hour).UTC(),
		Reason:           "Annual check-up",
	}
}

func TestCreateAppointmentStartsPending(t *testing.T) {
	svc, userID := newTestService(t, nil)
	ctx := context.Background()

	appointment, next, err := svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, flow.KindConfirmation, next.Kind)
	assert.Equal(t, userID.String(), next.UserID)
	assert.Equal(t, appointment.ID.String(), next.AppointmentID)

	stored, err := svc.GetAppointment(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, stored.Status)
}

func TestCreateAppointmentRejectsUnknownPhysician(t *testing.T) {
	svc, userID := newTestService(t, nil)

	req := createRequest(userID)
	req.PrimaryPhysician = "Gregory House"
	_, _, err := svc.CreateAppointment(context.Background(), req)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestScheduleAppointmentPersistsDecision(t *testing.T) {
	notifier := &recordingNotifier{}
	svc, userID := newTestService(t, notifier)
	ctx := context.Background()

	appointment, _, err := svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)

	schedule := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	updated, err := svc.ScheduleAppointment(ctx, appointment.ID, &model.ScheduleAppointmentRequest{
		PrimaryPhysician: "Leila Cameron",
		Schedule:         schedule,
		AdminNote:        "Moved to Dr. Cameron's slot",
	})
	require.NoError(t, err)

	assert.Equal(t, appointment.ID, updated.ID)
	assert.Equal(t, model.AppointmentStatusScheduled, updated.Status)
	assert.Equal(t, "Leila Cameron", updated.PrimaryPhysician)
	assert.True(t, schedule.Equal(updated.Schedule))
	assert.Equal(t, "Moved to Dr. Cameron's slot", updated.AdminNote)
	assert.Equal(t, []string{"jane@example.com"}, notifier.scheduled)
	assert.Empty(t, notifier.cancelled)
}

func TestScheduleAppointmentRejectsUnknownPhysician(t *testing.T) {
	svc, userID := newTestService(t, nil)
	ctx := context.Background()

	appointment, _, err := svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)

	_, err = svc.ScheduleAppointment(ctx, appointment.ID, &model.ScheduleAppointmentRequest{
		PrimaryPhysician: "Gregory House",
		Schedule:         time.Now().Add(24 * time.Hour),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)

	// The appointment is untouched.
	stored, err := svc.GetAppointment(ctx, appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, stored.Status)
}

func TestCancelAppointmentPersistsReason(t *testing.T) {
	svc, userID := newTestService(t, nil)
	ctx := context.Background()

	appointment, _, err := svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)

	updated, err := svc.CancelAppointment(ctx, appointment.ID, &model.CancelAppointmentRequest{
		CancellationReason: "Physician unavailable",
	})
	require.NoError(t, err)

	assert.Equal(t, appointment.ID, updated.ID)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)
	assert.Equal(t, "Physician unavailable", updated.CancellationReason)
}

func TestTransitionsRequirePendingStatus(t *testing.T) {
	svc, userID := newTestService(t, nil)
	ctx := context.Background()

	appointment, _, err := svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)

	_, err = svc.CancelAppointment(ctx, appointment.ID, &model.CancelAppointmentRequest{
		CancellationReason: "Physician unavailable",
	})
	require.NoError(t, err)

	// Cancelled is terminal for both transitions.
	_, err = svc.ScheduleAppointment(ctx, appointment.ID, &model.ScheduleAppointmentRequest{
		PrimaryPhysician: "John Green",
		Schedule:         time.Now().Add(24 * time.Hour),
	})
	assert.True(t, apperrors.IsConflict(err))

	_, err = svc.CancelAppointment(ctx, appointment.ID, &model.CancelAppointmentRequest{
		CancellationReason: "Duplicate request",
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestGetAppointmentNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.GetAppointment(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListAppointmentsCountsByStatus(t *testing.T) {
	svc, userID := newTestService(t, nil)
	ctx := context.Background()

	first, _, err := svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)
	_, _, err = svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)
	third, _, err := svc.CreateAppointment(ctx, createRequest(userID))
	require.NoError(t, err)

	_, err = svc.ScheduleAppointment(ctx, first.ID, &model.ScheduleAppointmentRequest{
		PrimaryPhysician: "John Green",
		Schedule:         time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = svc.CancelAppointment(ctx, third.ID, &model.CancelAppointmentRequest{
		CancellationReason: "Patient request",
	})
	require.NoError(t, err)

	appointments, stats, err := svc.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, appointments, 3)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Scheduled)
	assert.Equal(t, 1, stats.Cancelled)
}
