package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/TMS-BookingService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgCannotReschedule     = "запись нельзя перенести из текущего статуса"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgTherapistUnavailable = "терапевт не принимает в выбранную дату"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgTooLateToBook        = "слишком поздно для переноса на этот слот"
	msgBusy                 = "сервис временно перегружен, повторите попытку"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем clientID из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(appointmentID, clientID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%d, client_id=%d",
				appointmentID, clientID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Cannot reschedule: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot not available: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, rescheduleAppointment.ErrBusy):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Storage busy: appointment_id=%d", appointmentID)
			handlers.RespondServiceUnavailable(w, msgBusy)

		case errors.Is(err, rescheduleAppointment.ErrTherapistUnavailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Therapist unavailable: appointment_id=%d, date=%s",
				appointmentID, req.NewDate)
			handlers.RespondBadRequest(w, msgTherapistUnavailable)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid date: appointment_id=%d, date=%s",
				appointmentID, req.NewDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid time slot: appointment_id=%d, start_time=%s",
				appointmentID, req.NewStartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleAppointment.ErrTooLateToBook):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Too late to book: appointment_id=%d, start_time=%s",
				appointmentID, req.NewStartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled successfully: appointment_id=%d, client_id=%d",
		appointmentID, clientID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
