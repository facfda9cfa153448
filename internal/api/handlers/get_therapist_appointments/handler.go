package get_therapist_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/service/appointments"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus      = "некорректный статус"
	msgTherapistNotFound  = "терапевт не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/appointments
// Query params: dateFrom (optional), dateTo (optional), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем therapistId из URL
	vars := mux.Vars(r)
	therapistIDStr := vars["therapistId"]

	therapistID, err := strconv.ParseInt(therapistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /therapists/{therapistId}/appointments - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	// Формируем запрос к сервису (с парсингом дат из query)
	serviceReq, err := ToServiceRequest(therapistID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /therapists/{therapistId}/appointments - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Получаем записи терапевта
	result, err := h.service.GetTherapistAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrTherapistNotFound):
			h.logger.Warn("GET /therapists/{therapistId}/appointments - Therapist not found: therapist_id=%d", therapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{therapistId}/appointments - Invalid status: therapist_id=%d", therapistID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /therapists/{therapistId}/appointments - Failed to get appointments: therapist_id=%d, error=%v",
				therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/{therapistId}/appointments - Appointments retrieved successfully: therapist_id=%d, count=%d",
		therapistID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
