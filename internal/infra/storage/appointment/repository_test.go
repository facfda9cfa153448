package appointment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

const selectColumns = "id, client_id, therapist_id, service_id, appointment_date, start_time, " +
	"duration_minutes, status, service_name, service_price, notes, cancellation_reason, " +
	"cancelled_at, created_at, updated_at"

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewRepository(db)
	cleanup := func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	}

	return repo, mock, cleanup
}

func apptRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "therapist_id", "service_id", "appointment_date", "start_time",
		"duration_minutes", "status", "service_name", "service_price", "notes",
		"cancellation_reason", "cancelled_at", "created_at", "updated_at",
	})
}

func TestGetByID(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+selectColumns+" FROM appointments WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(apptRows().AddRow(
			int64(1), int64(10), int64(2), int64(5), date, "10:00",
			60, "scheduled", "Индивидуальная консультация", 3500.0, nil,
			nil, nil, now, now,
		))

	appt, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), appt.ID)
	assert.Equal(t, int64(10), appt.ClientID)
	assert.Equal(t, types.TimeString("10:00"), appt.StartTime)
	assert.Equal(t, domain.StatusScheduled, appt.Status)
	assert.Equal(t, 3500.0, appt.ServicePrice)
	assert.Nil(t, appt.CancelledAt)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+selectColumns+" FROM appointments WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(apptRows())

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO appointments (client_id,therapist_id,service_id,appointment_date,"+
			"start_time,duration_minutes,status,service_name,service_price,notes) "+
			"VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING id, created_at, updated_at")).
		WithArgs(int64(10), int64(2), int64(5), date, "10:00", 60, "scheduled",
			"Индивидуальная консультация", 3500.0, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	created, err := repo.Create(context.Background(), &domain.Appointment{
		ClientID:        10,
		TherapistID:     2,
		ServiceID:       5,
		AppointmentDate: date,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
		ServiceName:     "Индивидуальная консультация",
		ServicePrice:    3500.0,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, now, created.CreatedAt)
}

func TestGetByClientIDWithStatus(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	status := domain.StatusScheduled

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+selectColumns+" FROM appointments WHERE client_id = $1 AND status = $2 "+
			"ORDER BY appointment_date DESC, start_time DESC")).
		WithArgs(int64(10), "scheduled").
		WillReturnRows(apptRows().AddRow(
			int64(1), int64(10), int64(2), int64(5), date, "10:00",
			60, "scheduled", "Индивидуальная консультация", 3500.0, nil,
			nil, nil, now, now,
		))

	appointments, err := repo.GetByClientID(context.Background(), 10, &status)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, int64(1), appointments[0].ID)
}

func TestGetByTherapistWithFilterSingleDay(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	// Один день без явного статуса: отменённые записи исключаются,
	// сортировка по времени начала
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+selectColumns+" FROM appointments WHERE therapist_id = $1 "+
			"AND appointment_date >= $2 AND appointment_date <= $3 "+
			"AND status NOT IN ($4) ORDER BY start_time ASC")).
		WithArgs(int64(2), date, date, "cancelled").
		WillReturnRows(apptRows())

	appointments, err := repo.GetByTherapistWithFilter(context.Background(), domain.TherapistAppointmentsFilter{
		TherapistID: 2,
		DateFrom:    &date,
		DateTo:      &date,
	})
	require.NoError(t, err)
	assert.Empty(t, appointments)
}

func TestGetByTherapistWithFilterExcludeID(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	excludeID := int64(9)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+selectColumns+" FROM appointments WHERE therapist_id = $1 "+
			"AND appointment_date >= $2 AND appointment_date <= $3 "+
			"AND id <> $4 AND status NOT IN ($5) ORDER BY start_time ASC")).
		WithArgs(int64(2), date, date, excludeID, "cancelled").
		WillReturnRows(apptRows())

	_, err := repo.GetByTherapistWithFilter(context.Background(), domain.TherapistAppointmentsFilter{
		TherapistID: 2,
		DateFrom:    &date,
		DateTo:      &date,
		ExcludeID:   &excludeID,
	})
	require.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs("completed", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), 1, domain.StatusCompleted)
	require.NoError(t, err)
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs("completed", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	reason := "не смогу прийти"

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE appointments SET status = $1, cancellation_reason = $2, "+
			"cancelled_at = NOW(), updated_at = NOW() WHERE id = $3")).
		WithArgs("cancelled", &reason, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 1, &reason)
	require.NoError(t, err)
}

func TestUpdateTime(t *testing.T) {
	repo, mock, cleanup := newTestRepository(t)
	defer cleanup()

	newDate := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE appointments SET appointment_date = $1, start_time = $2, "+
			"updated_at = NOW() WHERE id = $3")).
		WithArgs(newDate, "14:00", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateTime(context.Background(), 1, newDate, types.TimeString("14:00"))
	require.NoError(t, err)
}
