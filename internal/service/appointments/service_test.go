package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	apptstorage "github.com/m04kA/TMS-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/service/appointments/models"
	"github.com/m04kA/TMS-BookingService/pkg/ptr"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

type fakeRepo struct {
	appointments map[int64]*domain.Appointment

	cancelCalls       int
	cancelledReason   *string
	updateStatusCalls int
	updatedStatus     domain.AppointmentStatus
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := r.appointments[id]
	if !ok {
		return nil, apptstorage.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (r *fakeRepo) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, appt := range r.appointments {
		if appt.ClientID != clientID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (r *fakeRepo) GetByTherapistWithFilter(_ context.Context, filter domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, appt := range r.appointments {
		if appt.TherapistID == filter.TherapistID {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := r.appointments[id]; !ok {
		return apptstorage.ErrAppointmentNotFound
	}
	r.updateStatusCalls++
	r.updatedStatus = status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason *string) error {
	if _, ok := r.appointments[id]; !ok {
		return apptstorage.ErrAppointmentNotFound
	}
	r.cancelCalls++
	r.cancelledReason = reason
	return nil
}

type fakeCatalog struct {
	therapistErr error
}

func (c *fakeCatalog) GetTherapist(_ context.Context, therapistID int64) (*catalogservice.Therapist, error) {
	if c.therapistErr != nil {
		return nil, c.therapistErr
	}
	return &catalogservice.Therapist{ID: therapistID, FullName: "Анна Ефимова", IsActive: true}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func scheduledAppointment(id, clientID int64) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		ClientID:        clientID,
		TherapistID:     1,
		ServiceID:       5,
		AppointmentDate: time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
		ServiceName:     "Индивидуальная консультация",
		ServicePrice:    3500,
	}
}

func newTestService(repo *fakeRepo, catalog *fakeCatalog) *Service {
	return NewService(repo, catalog, noopLogger{})
}

func TestGetByIDSuccess(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
	}}
	svc := newTestService(repo, &fakeCatalog{})

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByIDAccessDenied(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
	}}
	svc := newTestService(repo, &fakeCatalog{})

	_, err := svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{appointments: map[int64]*domain.Appointment{}}, &fakeCatalog{})

	_, err := svc.GetByID(context.Background(), 42, 10)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelSuccess(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
	}}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		ClientID:           10,
		CancellationReason: ptr.Ptr("не смогу прийти"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.cancelCalls)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, "не смогу прийти", *repo.cancelledReason)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	// Повторная отмена отклоняется и данных не меняет
	cancelled := scheduledAppointment(1, 10)
	cancelled.Status = domain.StatusCancelled

	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{1: cancelled}}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{ClientID: 10})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 0, repo.cancelCalls)
}

func TestCancelCompleted(t *testing.T) {
	completed := scheduledAppointment(1, 10)
	completed.Status = domain.StatusCompleted

	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{1: completed}}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{ClientID: 10})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 0, repo.cancelCalls)
}

func TestCancelAccessDenied(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
	}}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{ClientID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, repo.cancelCalls)
}

func TestUpdateStatusSuccess(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
	}}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.updateStatusCalls)
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
	}}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "postponed"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, repo.updateStatusCalls)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	// Завершённая запись — терминальное состояние
	completed := scheduledAppointment(1, 10)
	completed.Status = domain.StatusCompleted

	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{1: completed}}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	assert.Equal(t, 0, repo.updateStatusCalls)
}

func TestGetClientAppointmentsFilterByStatus(t *testing.T) {
	second := scheduledAppointment(2, 10)
	second.Status = domain.StatusCancelled

	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
		2: second,
	}}
	svc := newTestService(repo, &fakeCatalog{})

	resp, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		ClientID: 10,
		Status:   ptr.Ptr("scheduled"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, int64(1), resp.Appointments[0].ID)
}

func TestGetClientAppointmentsInvalidStatus(t *testing.T) {
	svc := newTestService(&fakeRepo{appointments: map[int64]*domain.Appointment{}}, &fakeCatalog{})

	_, err := svc.GetClientAppointments(context.Background(), &models.GetClientAppointmentsRequest{
		ClientID: 10,
		Status:   ptr.Ptr("postponed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetTherapistAppointmentsTherapistNotFound(t *testing.T) {
	svc := newTestService(
		&fakeRepo{appointments: map[int64]*domain.Appointment{}},
		&fakeCatalog{therapistErr: catalogservice.ErrTherapistNotFound})

	_, err := svc.GetTherapistAppointments(context.Background(), &models.GetTherapistAppointmentsRequest{
		TherapistID: 99,
	})
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestGetTherapistAppointmentsIncludesCancelled(t *testing.T) {
	cancelled := scheduledAppointment(2, 11)
	cancelled.Status = domain.StatusCancelled

	repo := &fakeRepo{appointments: map[int64]*domain.Appointment{
		1: scheduledAppointment(1, 10),
		2: cancelled,
	}}
	svc := newTestService(repo, &fakeCatalog{})

	resp, err := svc.GetTherapistAppointments(context.Background(), &models.GetTherapistAppointmentsRequest{
		TherapistID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 2)
}
