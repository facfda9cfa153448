package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	createAppointment "github.com/m04kA/TMS-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotAvailable       = "выбранный временной слот недоступен"
	msgTherapistNotFound      = "терапевт не найден"
	msgServiceNotFound        = "услуга не найдена"
	msgServiceInactive        = "услуга недоступна для записи"
	msgTherapistUnavailable   = "терапевт не принимает в выбранную дату"
	msgInvalidAppointmentDate = "некорректная дата записи"
	msgDateTooFar             = "дата записи слишком далеко в будущем"
	msgInvalidTimeSlot        = "некорректный временной слот"
	msgTooLateToBook          = "слишком поздно для записи на этот слот"
	msgBusy                   = "сервис временно перегружен, повторите попытку"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%d, therapist_id=%d", clientID, req.TherapistID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrBusy):
			h.logger.Warn("POST /appointments - Storage busy: client_id=%d, therapist_id=%d", clientID, req.TherapistID)
			handlers.RespondServiceUnavailable(w, msgBusy)

		case errors.Is(err, createAppointment.ErrTherapistNotFound):
			h.logger.Warn("POST /appointments - Therapist not found: therapist_id=%d", req.TherapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceInactive):
			h.logger.Warn("POST /appointments - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createAppointment.ErrTherapistUnavailable):
			h.logger.Warn("POST /appointments - Therapist unavailable: therapist_id=%d, date=%s", req.TherapistID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgTherapistUnavailable)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: client_id=%d, date=%s", clientID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidAppointmentDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: client_id=%d, date=%s", clientID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: client_id=%d, start_time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: client_id=%d, start_time=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, therapist_id=%d, error=%v",
				clientID, req.TherapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, therapist_id=%d",
		result.ID, clientID, req.TherapistID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
