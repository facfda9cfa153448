package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/scheduling"
)

// Options бизнес-настройки генерации слотов
type Options struct {
	// SlotStepMinutes шаг генерации слотов; 0 = шаг равен длительности услуги
	SlotStepMinutes int
	// MinNoticeMinutes минимальное время до начала слота при записи на сегодня
	MinNoticeMinutes int
	// AdvanceBookingDays максимум дней вперёд; 0 = без ограничений
	AdvanceBookingDays int
}

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	apptRepo      AppointmentRepository
	availRepo     AvailabilityRepository
	catalogClient CatalogServiceClient
	opts          Options
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	availRepo AvailabilityRepository,
	catalogClient CatalogServiceClient,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:      apptRepo,
		availRepo:     availRepo,
		catalogClient: catalogClient,
		opts:          opts,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Read-путь: без блокировок и побочных эффектов; результат — снимок на момент
// запроса и может устареть к моменту бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, therapist=%v, from=%s, to=%s",
		req.ServiceID, req.TherapistID, req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Нормализуем диапазон: пустой DateTo = один день
	dateFrom := dateOnly(req.DateFrom)
	dateTo := dateFrom
	if !req.DateTo.IsZero() {
		dateTo = dateOnly(req.DateTo)
	}

	// 4. Валидация диапазона с учетом настроек
	if err := validateDateRange(dateFrom, dateTo, now, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date range validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем услугу и её длительность
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 6. Определяем список терапевтов
	therapists, err := uc.resolveTherapists(ctx, req.TherapistID)
	if err != nil {
		return nil, err
	}

	// 7. Считаем слоты по каждому терапевту
	slots := make([]Slot, 0)
	for _, therapist := range therapists {
		therapistSlots, err := uc.slotsForTherapist(ctx, therapist.ID, service, dateFrom, dateTo, now)
		if err != nil {
			return nil, err
		}
		slots = append(slots, therapistSlots...)
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for service=%d (%d therapists)",
		len(slots), req.ServiceID, len(therapists))

	return &Response{
		ServiceID:       req.ServiceID,
		DurationMinutes: service.DurationMinutes,
		DateFrom:        dateFrom,
		DateTo:          dateTo,
		Slots:           slots,
	}, nil
}

// resolveTherapists возвращает одного запрошенного терапевта либо всех активных
func (uc *UseCase) resolveTherapists(ctx context.Context, therapistID *int64) ([]*catalogservice.Therapist, error) {
	if therapistID != nil {
		therapist, err := uc.catalogClient.GetTherapist(ctx, *therapistID)
		if err != nil {
			if errors.Is(err, catalogservice.ErrTherapistNotFound) {
				uc.logger.Warn("GetAvailableSlots: therapist id=%d not found", *therapistID)
				return nil, ErrTherapistNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get therapist id=%d: %v", *therapistID, err)
			return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
		}
		return []*catalogservice.Therapist{therapist}, nil
	}

	therapists, err := uc.catalogClient.ListTherapists(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list therapists: %v", err)
		return nil, fmt.Errorf("%w: failed to list therapists: %v", ErrInternal, err)
	}

	active := make([]*catalogservice.Therapist, 0, len(therapists))
	for _, t := range therapists {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active, nil
}

// slotsForTherapist вычисляет свободные слоты терапевта в диапазоне дат:
// правила доступности → открытые интервалы → кандидаты → минус пересечения
func (uc *UseCase) slotsForTherapist(
	ctx context.Context,
	therapistID int64,
	service *catalogservice.Service,
	dateFrom, dateTo time.Time,
	now time.Time,
) ([]Slot, error) {
	rules, err := uc.availRepo.GetForRange(ctx, therapistID, dateFrom, dateTo)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability rules for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
	}

	filter := domain.TherapistAppointmentsFilter{
		TherapistID:     therapistID,
		DateFrom:        &dateFrom,
		DateTo:          &dateTo,
		IncludeInactive: false, // Только записи, занимающие интервал
	}

	appointments, err := uc.apptRepo.GetByTherapistWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	byDate := bucketByDate(appointments)

	slots := make([]Slot, 0)

	for date := dateFrom; !date.After(dateTo); date = date.AddDate(0, 0, 1) {
		// Прошедшие дни диапазона пропускаем молча
		if isDateInPast(date, now) {
			continue
		}

		intervals := scheduling.ResolveDay(rules, date)
		if len(intervals) == 0 {
			continue
		}

		candidates, err := scheduling.GenerateSlots(intervals, service.DurationMinutes, uc.opts.SlotStepMinutes)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for therapist=%d date=%s: %v",
				therapistID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		if isSameDay(date, now) {
			candidates = filterByMinNotice(candidates, now, uc.opts.MinNoticeMinutes)
		}

		free := scheduling.FilterConflicting(candidates, service.DurationMinutes, byDate[date], nil)

		for _, start := range free {
			slots = append(slots, Slot{
				TherapistID:     therapistID,
				Date:            date,
				StartTime:       start,
				DurationMinutes: service.DurationMinutes,
			})
		}
	}

	return slots, nil
}
