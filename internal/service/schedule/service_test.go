package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	availstorage "github.com/m04kA/TMS-BookingService/internal/infra/storage/availability"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/service/schedule/models"
	"github.com/m04kA/TMS-BookingService/pkg/ptr"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

type fakeAvailRepo struct {
	rules       []*domain.AvailabilityRule
	upserted    *domain.AvailabilityRule
	upsertCalls int
	deleteErr   error
	deletedID   *int64
}

func (r *fakeAvailRepo) GetByTherapist(_ context.Context, therapistID int64) ([]*domain.AvailabilityRule, error) {
	out := make([]*domain.AvailabilityRule, 0)
	for _, rule := range r.rules {
		if rule.TherapistID == therapistID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeAvailRepo) Upsert(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	r.upsertCalls++
	saved := *rule
	saved.ID = 1
	r.upserted = &saved
	return &saved, nil
}

func (r *fakeAvailRepo) Delete(_ context.Context, ruleID int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = &ruleID
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

func validUpsertRequest() *models.UpsertRuleRequest {
	return &models.UpsertRuleRequest{
		TherapistID: 1,
		Weekday:     ptr.Ptr(time.Monday),
		IsAvailable: true,
		WorkStart:   types.TimeString("09:00"),
		WorkEnd:     types.TimeString("17:00"),
	}
}

func newTestService(repo *fakeAvailRepo, catalog *fakeCatalog) *Service {
	return NewService(repo, catalog, noopLogger{})
}

func TestUpsertRuleSuccess(t *testing.T) {
	repo := &fakeAvailRepo{}
	svc := newTestService(repo, &fakeCatalog{})

	resp, err := svc.UpsertRule(context.Background(), validUpsertRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "09:00", resp.WorkStart)
	assert.Equal(t, "17:00", resp.WorkEnd)
	require.NotNil(t, resp.Weekday)
	assert.Equal(t, 1, *resp.Weekday)
	assert.Equal(t, 1, repo.upsertCalls)
}

func TestUpsertRuleWithBreak(t *testing.T) {
	repo := &fakeAvailRepo{}
	svc := newTestService(repo, &fakeCatalog{})

	req := validUpsertRequest()
	req.BreakStart = ptr.Ptr(types.TimeString("12:00"))
	req.BreakEnd = ptr.Ptr(types.TimeString("13:00"))

	resp, err := svc.UpsertRule(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.BreakStart)
	assert.Equal(t, "12:00", *resp.BreakStart)
	require.NotNil(t, resp.BreakEnd)
	assert.Equal(t, "13:00", *resp.BreakEnd)
}

func TestUpsertRuleBreakOutsideWorkWindow(t *testing.T) {
	repo := &fakeAvailRepo{}
	svc := newTestService(repo, &fakeCatalog{})

	req := validUpsertRequest()
	req.BreakStart = ptr.Ptr(types.TimeString("16:30"))
	req.BreakEnd = ptr.Ptr(types.TimeString("17:30"))

	_, err := svc.UpsertRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrBreakOutsideWorkWindow)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestUpsertRuleBreakHalfSpecified(t *testing.T) {
	svc := newTestService(&fakeAvailRepo{}, &fakeCatalog{})

	req := validUpsertRequest()
	req.BreakStart = ptr.Ptr(types.TimeString("12:00"))

	_, err := svc.UpsertRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertRuleBothWeekdayAndOverride(t *testing.T) {
	svc := newTestService(&fakeAvailRepo{}, &fakeCatalog{})

	req := validUpsertRequest()
	req.OverrideDate = ptr.Ptr(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC))

	_, err := svc.UpsertRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertRuleNeitherWeekdayNorOverride(t *testing.T) {
	svc := newTestService(&fakeAvailRepo{}, &fakeCatalog{})

	req := validUpsertRequest()
	req.Weekday = nil

	_, err := svc.UpsertRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertRuleWorkStartAfterWorkEnd(t *testing.T) {
	svc := newTestService(&fakeAvailRepo{}, &fakeCatalog{})

	req := validUpsertRequest()
	req.WorkStart = types.TimeString("17:00")
	req.WorkEnd = types.TimeString("09:00")

	_, err := svc.UpsertRule(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsertRuleClosedDayWithoutWorkWindow(t *testing.T) {
	// Для закрытого дня рабочее окно не требуется
	repo := &fakeAvailRepo{}
	svc := newTestService(repo, &fakeCatalog{})

	req := &models.UpsertRuleRequest{
		TherapistID:  1,
		OverrideDate: ptr.Ptr(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		IsAvailable:  false,
	}

	resp, err := svc.UpsertRule(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)
	require.NotNil(t, resp.OverrideDate)
	assert.Equal(t, "2026-09-15", *resp.OverrideDate)
}

func TestUpsertRuleTherapistNotFound(t *testing.T) {
	repo := &fakeAvailRepo{}
	svc := newTestService(repo, &fakeCatalog{therapistErr: catalogservice.ErrTherapistNotFound})

	_, err := svc.UpsertRule(context.Background(), validUpsertRequest())
	assert.ErrorIs(t, err, ErrTherapistNotFound)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestGetTherapistSchedule(t *testing.T) {
	repo := &fakeAvailRepo{rules: []*domain.AvailabilityRule{
		{
			ID:          1,
			TherapistID: 1,
			Weekday:     ptr.Ptr(time.Monday),
			IsAvailable: true,
			WorkStart:   types.TimeString("09:00"),
			WorkEnd:     types.TimeString("17:00"),
		},
		{
			ID:           2,
			TherapistID:  1,
			OverrideDate: ptr.Ptr(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
			IsAvailable:  false,
		},
	}}
	svc := newTestService(repo, &fakeCatalog{})

	resp, err := svc.GetTherapistSchedule(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TherapistID)
	require.Len(t, resp.Rules, 2)
	assert.Equal(t, "09:00", resp.Rules[0].WorkStart)
	require.NotNil(t, resp.Rules[1].OverrideDate)
	assert.Equal(t, "2026-09-15", *resp.Rules[1].OverrideDate)
}

func TestGetTherapistScheduleTherapistNotFound(t *testing.T) {
	svc := newTestService(&fakeAvailRepo{}, &fakeCatalog{therapistErr: catalogservice.ErrTherapistNotFound})

	_, err := svc.GetTherapistSchedule(context.Background(), 99)
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestDeleteRuleSuccess(t *testing.T) {
	repo := &fakeAvailRepo{}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.DeleteRule(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, repo.deletedID)
	assert.Equal(t, int64(5), *repo.deletedID)
}

func TestDeleteRuleNotFound(t *testing.T) {
	repo := &fakeAvailRepo{deleteErr: availstorage.ErrRuleNotFound}
	svc := newTestService(repo, &fakeCatalog{})

	err := svc.DeleteRule(context.Background(), 5)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}
