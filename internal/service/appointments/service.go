package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/TMS-BookingService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/TMS-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями на приём
type Service struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - клиент может видеть только свою запись
func (s *Service) GetByID(ctx context.Context, id int64, clientID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for client=%d", id, clientID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if appointment.ClientID != clientID {
		s.logger.Warn("GetByID: access denied for client=%d to appointment id=%d", clientID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetTherapistAppointments получает записи терапевта за период
// Поддерживает фильтрацию по периоду и статусу, отменённые записи включаются
func (s *Service) GetTherapistAppointments(ctx context.Context, req *models.GetTherapistAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetTherapistAppointments: fetching appointments for therapist=%d", req.TherapistID)

	// Проверяем, что терапевт существует в каталоге
	if _, err := s.catalogClient.GetTherapist(ctx, req.TherapistID); err != nil {
		if errors.Is(err, catalogClient.ErrTherapistNotFound) {
			s.logger.Warn("GetTherapistAppointments: therapist id=%d not found", req.TherapistID)
			return nil, ErrTherapistNotFound
		}
		s.logger.Error("GetTherapistAppointments: failed to get therapist id=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to get therapist: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTherapistAppointments: invalid status=%v for therapist=%d", req.Status, req.TherapistID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByTherapistWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTherapistAppointments: repository error for therapist=%d: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: GetTherapistAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTherapistAppointments: successfully fetched %d appointments for therapist=%d", len(appointments), req.TherapistID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Проверяет права доступа и допустимость перехода: отменённую, завершённую
// или неявочную запись отменить нельзя, данные при этом не меняются
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by client=%d", appointmentID, req.ClientID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if appointment.ClientID != req.ClientID {
		s.logger.Warn("Cancel: access denied for client=%d to appointment id=%d", req.ClientID, appointmentID)
		return ErrAccessDenied
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	// Отменяем запись
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", appointmentID)
	return nil
}

// UpdateStatus обновляет статус записи
// Разрешены только переходы из scheduled в completed, cancelled или no_show
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s", appointmentID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем допустимость перехода по машине статусов
	if !domain.CanTransition(appointment.Status, newStatus) {
		s.logger.Warn("UpdateStatus: invalid transition for appointment id=%d: %s -> %s",
			appointmentID, appointment.Status, newStatus)
		return ErrInvalidStatusTransition
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}
