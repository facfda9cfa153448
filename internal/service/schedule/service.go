package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	availabilityRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/availability"
	catalogClient "github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием терапевтов
type Service struct {
	availabilityRepo AvailabilityRepository
	catalogClient    CatalogServiceClient
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		catalogClient:    catalogClient,
		logger:           logger,
	}
}

// GetTherapistSchedule получает все правила доступности терапевта
func (s *Service) GetTherapistSchedule(ctx context.Context, therapistID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetTherapistSchedule: fetching schedule for therapist=%d", therapistID)

	// Проверяем, что терапевт существует в каталоге
	if _, err := s.catalogClient.GetTherapist(ctx, therapistID); err != nil {
		if errors.Is(err, catalogClient.ErrTherapistNotFound) {
			s.logger.Warn("GetTherapistSchedule: therapist id=%d not found", therapistID)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("GetTherapistSchedule: failed to get therapist id=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	rules, err := s.availabilityRepo.GetByTherapist(ctx, therapistID)
	if err != nil {
		s.logger.Error("GetTherapistSchedule: repository error for therapist=%d: %v", therapistID, err)
		return nil, fmt.Errorf("%w: GetTherapistSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTherapistSchedule: successfully fetched %d rules for therapist=%d", len(rules), therapistID)
	return models.FromDomainRuleList(therapistID, rules), nil
}

// UpsertRule создает или обновляет правило доступности
// Правило с перерывом вне рабочего окна отклоняется до записи в БД
func (s *Service) UpsertRule(ctx context.Context, req *models.UpsertRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("UpsertRule: saving rule for therapist=%d, weekday=%v, override=%v",
		req.TherapistID, req.Weekday, req.OverrideDate)

	rule := req.ToDomainRule()

	// 1. Валидируем правило
	if err := s.validateRule(rule); err != nil {
		s.logger.Warn("UpsertRule: validation failed for therapist=%d: %v", req.TherapistID, err)
		return nil, err
	}

	// 2. Проверяем, что терапевт существует в каталоге
	if _, err := s.catalogClient.GetTherapist(ctx, req.TherapistID); err != nil {
		if errors.Is(err, catalogClient.ErrTherapistNotFound) {
			s.logger.Warn("UpsertRule: therapist id=%d not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("UpsertRule: failed to get therapist id=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	// 3. Сохраняем правило
	saved, err := s.availabilityRepo.Upsert(ctx, rule)
	if err != nil {
		s.logger.Error("UpsertRule: repository error for therapist=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: UpsertRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertRule: successfully saved rule id=%d for therapist=%d", saved.ID, saved.TherapistID)
	return models.FromDomainRule(saved), nil
}

// DeleteRule удаляет правило доступности по ID
func (s *Service) DeleteRule(ctx context.Context, ruleID int64) error {
	s.logger.Info("DeleteRule: deleting rule id=%d", ruleID)

	if err := s.availabilityRepo.Delete(ctx, ruleID); err != nil {
		if errors.Is(err, availabilityRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: rule id=%d not found", ruleID)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRule: successfully deleted rule id=%d", ruleID)
	return nil
}

// Вспомогательные методы

// validateRule валидирует правило доступности
func (s *Service) validateRule(rule *domain.AvailabilityRule) error {
	// Ровно один тип привязки: день недели или конкретная дата
	if (rule.Weekday == nil) == (rule.OverrideDate == nil) {
		return fmt.Errorf("%w: exactly one of weekday or overrideDate is required", ErrInvalidInput)
	}

	if rule.Weekday != nil && (*rule.Weekday < 0 || *rule.Weekday > 6) {
		return fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}

	// Для закрытого дня рабочее окно не требуется
	if rule.IsAvailable {
		if err := rule.WorkStart.Validate(); err != nil {
			return fmt.Errorf("%w: invalid workStart: %v", ErrInvalidInput, err)
		}
		if err := rule.WorkEnd.Validate(); err != nil {
			return fmt.Errorf("%w: invalid workEnd: %v", ErrInvalidInput, err)
		}
		if !rule.WorkStart.IsBefore(rule.WorkEnd) {
			return fmt.Errorf("%w: workStart must be before workEnd", ErrInvalidInput)
		}
	}

	// Перерыв задаётся только парой границ
	if (rule.BreakStart == nil) != (rule.BreakEnd == nil) {
		return fmt.Errorf("%w: break requires both breakStart and breakEnd", ErrInvalidInput)
	}

	if rule.HasBreak() {
		if err := rule.BreakStart.Validate(); err != nil {
			return fmt.Errorf("%w: invalid breakStart: %v", ErrInvalidInput, err)
		}
		if err := rule.BreakEnd.Validate(); err != nil {
			return fmt.Errorf("%w: invalid breakEnd: %v", ErrInvalidInput, err)
		}
		if !rule.BreakInsideWork() {
			return ErrBreakOutsideWorkWindow
		}
	}

	return nil
}
