package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/pkg/ptr"
	"github.com/m04kA/TMS-BookingService/pkg/txmanager"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// 2026-09-07 — понедельник
var (
	testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
)

type fakeApptRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (r *fakeApptRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *appt
	created.ID = r.nextID
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	r.appointments = append(r.appointments, &created)
	return &created, nil
}

func (r *fakeApptRepo) GetByTherapistWithFilter(_ context.Context, filter domain.TherapistAppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Appointment, 0, len(r.appointments))
	for _, appt := range r.appointments {
		if appt.TherapistID == filter.TherapistID {
			out = append(out, appt)
		}
	}
	return out, nil
}

type fakeAvailRepo struct {
	rules []*domain.AvailabilityRule
}

func (r *fakeAvailRepo) GetForRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.AvailabilityRule, error) {
	return r.rules, nil
}

type fakeCatalogClient struct {
	therapistErr error
	service      *catalogservice.Service
	serviceErr   error
}

func (c *fakeCatalogClient) GetTherapist(_ context.Context, therapistID int64) (*catalogservice.Therapist, error) {
	if c.therapistErr != nil {
		return nil, c.therapistErr
	}
	return &catalogservice.Therapist{ID: therapistID, FullName: "Анна Ефимова", IsActive: true}, nil
}

func (c *fakeCatalogClient) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	if c.serviceErr != nil {
		return nil, c.serviceErr
	}
	if c.service != nil {
		return c.service, nil
	}
	return &catalogservice.Service{
		ID:              serviceID,
		Name:            "Индивидуальная консультация",
		DurationMinutes: 60,
		Price:           ptr.Ptr(3500.0),
		IsActive:        true,
	}, nil
}

// fakeTxManager сериализует транзакции мьютексом, имитируя SERIALIZABLE
type fakeTxManager struct {
	mu  sync.Mutex
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (p *fixedTime) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func weekdayRule(weekday time.Weekday) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:          1,
		TherapistID: 1,
		Weekday:     ptr.Ptr(weekday),
		IsAvailable: true,
		WorkStart:   types.TimeString("09:00"),
		WorkEnd:     types.TimeString("17:00"),
	}
}

func newTestUseCase(apptRepo *fakeApptRepo, availRepo *fakeAvailRepo, catalog *fakeCatalogClient, txMgr *fakeTxManager) *UseCase {
	uc := NewUseCase(apptRepo, availRepo, catalog, txMgr, Options{
		SlotStepMinutes:    0,
		MinNoticeMinutes:   60,
		AdvanceBookingDays: 60,
	}, noopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:    10,
		TherapistID: 1,
		ServiceID:   5,
		Date:        testDate,
		StartTime:   types.TimeString("10:00"),
	}
}

func TestExecuteSuccess(t *testing.T) {
	apptRepo := &fakeApptRepo{}
	uc := newTestUseCase(apptRepo,
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(10), resp.ClientID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Индивидуальная консультация", resp.ServiceName)
	assert.Equal(t, 3500.0, resp.ServicePrice)
	assert.Len(t, apptRepo.appointments, 1)
}

func TestExecuteSlotTaken(t *testing.T) {
	apptRepo := &fakeApptRepo{}
	apptRepo.appointments = []*domain.Appointment{{
		ID:              99,
		TherapistID:     1,
		ClientID:        42,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}}

	uc := newTestUseCase(apptRepo,
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, apptRepo.appointments, 1)
}

func TestExecuteCancelledAppointmentFreesSlot(t *testing.T) {
	apptRepo := &fakeApptRepo{nextID: 99}
	apptRepo.appointments = []*domain.Appointment{{
		ID:              99,
		TherapistID:     1,
		ClientID:        42,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusCancelled,
	}}

	uc := newTestUseCase(apptRepo,
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}

func TestExecuteInvalidTimeSlot(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	// При шаге 60 минут от 09:00 время 10:30 не совпадает ни с одним слотом
	req := validRequest()
	req.StartTime = types.TimeString("10:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecuteTherapistUnavailable(t *testing.T) {
	// Правило только на вторник, запись на понедельник
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Tuesday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTherapistUnavailable)
}

func TestExecuteTherapistNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{therapistErr: catalogservice.ErrTherapistNotFound}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestExecuteServiceInactive(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{service: &catalogservice.Service{
			ID: 5, Name: "Архивная услуга", DurationMinutes: 60, IsActive: false,
		}}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecuteDateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteDateTooFarInFuture(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, 61)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecuteTooLateToBookToday(t *testing.T) {
	// 2026-09-01 — вторник; правило на вторник, запись на сегодня 08:30
	// при minNotice 60 минут от 08:00
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Tuesday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	req := validRequest()
	req.Date = testNow
	req.StartTime = types.TimeString("08:30")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{}, &fakeTxManager{})

	req := validRequest()
	req.ClientID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteSerializationRetriesExhausted(t *testing.T) {
	uc := newTestUseCase(&fakeApptRepo{},
		&fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}},
		&fakeCatalogClient{},
		&fakeTxManager{err: txmanager.ErrSerializationFailure})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusy)
}

func TestExecuteConcurrentBookingsSameSlot(t *testing.T) {
	// Два одновременных запроса на один слот: ровно один фиксируется,
	// второй получает ErrSlotNotAvailable
	apptRepo := &fakeApptRepo{}
	availRepo := &fakeAvailRepo{rules: []*domain.AvailabilityRule{weekdayRule(time.Monday)}}
	catalog := &fakeCatalogClient{}
	txMgr := &fakeTxManager{}

	uc := newTestUseCase(apptRepo, availRepo, catalog, txMgr)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.ClientID = int64(100 + i)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded, conflicted := 0, 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrSlotNotAvailable)
		conflicted++
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, apptRepo.appointments, 1)
}
