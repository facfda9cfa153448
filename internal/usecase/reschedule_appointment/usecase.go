package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	apptRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/TMS-BookingService/internal/scheduling"
	"github.com/m04kA/TMS-BookingService/pkg/txmanager"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Options бизнес-настройки бронирования (общие с созданием записи)
type Options struct {
	SlotStepMinutes    int
	MinNoticeMinutes   int
	AdvanceBookingDays int
}

// UseCase use case для переноса записи на другой слот
type UseCase struct {
	apptRepo     AppointmentRepository
	availRepo    AvailabilityRepository
	txManager    TransactionManager
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	availRepo AvailabilityRepository,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		availRepo:    availRepo,
		txManager:    txManager,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса записи.
//
// Перенос меняет время существующей строки (не cancel-and-rebook): id записи
// стабилен, а атомарность обеспечивает сериализуемая транзакция. Целевой
// интервал перепроверяется так же, как при создании, но собственная строка
// исключается из сравнения пересечений — иначе запись конфликтовала бы сама
// с собой при сдвиге в пределах своего же интервала.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, client=%d, newDate=%s, newTime=%s",
		req.AppointmentID, req.ClientID, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация новой даты и минимального времени до записи
	if err := validateDate(req.NewDate, now, uc.opts.AdvanceBookingDays); err != nil {
		uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.NewDate, req.NewStartTime, now, uc.opts.MinNoticeMinutes); err != nil {
		uc.logger.Warn("RescheduleAppointment: booking time validation failed: %v", err)
		return nil, err
	}

	newDate := dateOnly(req.NewDate)

	// Переменная для хранения результата
	var result *domain.Appointment

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем запись с блокировкой собственной строки
		appt, err := uc.apptRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 4.2. Перенести можно только свою запись
		if appt.ClientID != req.ClientID {
			uc.logger.Warn("RescheduleAppointment: access denied for client=%d to appointment id=%d",
				req.ClientID, req.AppointmentID)
			return ErrAccessDenied
		}

		// 4.3. Переносим только записи в статусе scheduled
		if !appt.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d has status=%s, cannot reschedule",
				req.AppointmentID, appt.Status)
			return ErrInvalidStatus
		}

		// 4.4. Открытые интервалы терапевта в новый день
		rules, err := uc.availRepo.GetForRange(txCtx, appt.TherapistID, newDate, newDate)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get availability rules: %v", err)
			return fmt.Errorf("%w: failed to get availability rules: %v", ErrInternal, err)
		}

		intervals := scheduling.ResolveDay(rules, newDate)
		if len(intervals) == 0 {
			uc.logger.Warn("RescheduleAppointment: therapist=%d is not available on %s",
				appt.TherapistID, newDate.Format(domain.DateFormat))
			return ErrTherapistUnavailable
		}

		// 4.5. Новое время обязано совпадать с валидным кандидатом
		candidates, err := scheduling.GenerateSlots(intervals, appt.DurationMinutes, uc.opts.SlotStepMinutes)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to generate slots: %v", err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}

		if !scheduling.ContainsSlot(candidates, req.NewStartTime) {
			uc.logger.Warn("RescheduleAppointment: time=%s is not a valid slot for therapist=%d on %s",
				req.NewStartTime, appt.TherapistID, newDate.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}

		// 4.6. Записи нового дня с блокировкой, без собственной строки
		filter := domain.TherapistAppointmentsFilter{
			TherapistID:     appt.TherapistID,
			DateFrom:        &newDate,
			DateTo:          &newDate,
			ExcludeID:       &appt.ID,
			IncludeInactive: false,
		}

		appointments, err := uc.apptRepo.GetByTherapistWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if overlapping := scheduling.CountOverlapping(req.NewStartTime, appt.DurationMinutes, appointments, &appt.ID); overlapping > 0 {
			uc.logger.Warn("RescheduleAppointment: slot %s is taken, %d overlapping appointment(s)",
				req.NewStartTime, overlapping)
			return ErrSlotNotAvailable
		}

		// 4.7. Переносим запись
		if err := uc.apptRepo.UpdateTime(txCtx, appt.ID, newDate, req.NewStartTime); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update time: %v", err)
			return fmt.Errorf("%w: failed to update appointment time: %v", ErrInternal, err)
		}

		appt.AppointmentDate = newDate
		appt.StartTime = req.NewStartTime
		result = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleAppointment: transaction retries exhausted: %v", err)
			return nil, ErrBusy
		}
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully moved appointment id=%d to %s %s",
		result.ID, newDate.Format(domain.DateFormat), req.NewStartTime)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		TherapistID:     result.TherapistID,
		ServiceID:       result.ServiceID,
		Date:            result.AppointmentDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}
	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

// validateDate проверяет, что новая дата подходит для записи
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidDate, advanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет, что перенос не нарушает minNoticeMinutes
func validateBookingTime(date time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !isSameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
