package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/scheduling"
	"github.com/m04kA/TMS-BookingService/pkg/txmanager"
)

// Options бизнес-настройки бронирования
type Options struct {
	SlotStepMinutes    int
	MinNoticeMinutes   int
	AdvanceBookingDays int
}

// UseCase use case для создания записи на приём
type UseCase struct {
	apptRepo      AppointmentRepository
	availRepo     AvailabilityRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	opts          Options
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	availRepo AvailabilityRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:      apptRepo,
		availRepo:     availRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		opts:          opts,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания записи.
//
// Запрошенному клиентом слоту не доверяем: доступность пересчитывается заново
// внутри сериализуемой транзакции с блокировкой записей дня (FOR UPDATE).
// Из двух одновременных запросов на пересекающиеся интервалы зафиксируется
// ровно один; второй получит ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, therapist=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.TherapistID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты и минимального времени до записи
	if err := validateDate(req.Date, now, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now, uc.opts.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
		return nil, err
	}

	// 4. Проверяем существование терапевта
	if _, err := uc.catalogClient.GetTherapist(ctx, req.TherapistID); err != nil {
		if errors.Is(err, catalogservice.ErrTherapistNotFound) {
			uc.logger.Warn("CreateAppointment: therapist id=%d not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get therapist id=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	// 5. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	date := dateOnly(req.Date)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем правила доступности и открытые интервалы дня
		rules, err := uc.availRepo.GetForRange(txCtx, req.TherapistID, date, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		intervals := scheduling.ResolveDay(rules, date)
		if len(intervals) == 0 {
			uc.logger.Warn("CreateAppointment: therapist=%d is not available on %s",
				req.TherapistID, date.Format(domain.DateFormat))
			return ErrTherapistUnavailable
		}

		// 6.2. Запрошенное время обязано совпадать с валидным кандидатом
		candidates, err := scheduling.GenerateSlots(intervals, service.DurationMinutes, uc.opts.SlotStepMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		if !scheduling.ContainsSlot(candidates, req.StartTime) {
			uc.logger.Warn("CreateAppointment: time=%s is not a valid slot for therapist=%d on %s",
				req.StartTime, req.TherapistID, date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}

		// 6.3. Получаем записи дня с блокировкой (FOR UPDATE)
		filter := domain.TherapistAppointmentsFilter{
			TherapistID:     req.TherapistID,
			DateFrom:        &date,
			DateTo:          &date,
			IncludeInactive: false,
		}

		appointments, err := uc.apptRepo.GetByTherapistWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.4. Проверяем, что интервал всё ещё свободен
		if overlapping := scheduling.CountOverlapping(req.StartTime, service.DurationMinutes, appointments, nil); overlapping > 0 {
			uc.logger.Warn("CreateAppointment: slot %s is taken, %d overlapping appointment(s)",
				req.StartTime, overlapping)
			return ErrSlotNotAvailable
		}

		// 6.5. Создаем запись с денормализацией данных услуги
		appt := &domain.Appointment{
			ClientID:        req.ClientID,
			TherapistID:     req.TherapistID,
			ServiceID:       req.ServiceID,
			AppointmentDate: date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusScheduled,
			ServiceName:     service.Name,
			ServicePrice:    servicePrice(service),
			Notes:           req.Notes,
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпаны повторы сериализуемой транзакции — отдаём retryable-ошибку,
		// а не Conflict: слот, возможно, всё ещё свободен
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateAppointment: transaction retries exhausted: %v", err)
			return nil, ErrBusy
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		TherapistID:     result.TherapistID,
		ServiceID:       result.ServiceID,
		Date:            result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// servicePrice извлекает цену из услуги; nil = 0.0
func servicePrice(service *catalogservice.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
