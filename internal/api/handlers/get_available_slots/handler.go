package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/TMS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgMissingServiceID   = "ID услуги обязателен"
	msgMissingDateFrom    = "дата начала диапазона обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange   = "некорректный диапазон дат"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgTherapistNotFound  = "терапевт не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/available-slots
// Handle GET /api/v1/available-slots (слоты по всем активным терапевтам)
// Query params: serviceId (required), dateFrom (required, YYYY-MM-DD), dateTo (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// therapistId присутствует только на маршруте конкретного терапевта
	var therapistID *int64
	if therapistIDStr, ok := vars["therapistId"]; ok {
		id, err := strconv.ParseInt(therapistIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /therapists/{id}/available-slots - Invalid therapist ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTherapistID)
			return
		}
		therapistID = &id
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем диапазон дат из query параметров
	dateFromStr := r.URL.Query().Get("dateFrom")
	if dateFromStr == "" {
		h.logger.Warn("GET /available-slots - Missing dateFrom")
		handlers.RespondBadRequest(w, msgMissingDateFrom)
		return
	}
	dateToStr := r.URL.Query().Get("dateTo")

	// Формируем запрос к use case (с парсингом дат)
	useCaseReq, err := ToUseCaseRequest(therapistID, serviceID, dateFromStr, dateToStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrTherapistNotFound):
			h.logger.Warn("GET /available-slots - Therapist not found: therapist_id=%v", therapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceInactive):
			h.logger.Warn("GET /available-slots - Service inactive: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid date range: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far in future: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: therapist_id=%v, service_id=%d, error=%v",
				therapistID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots retrieved successfully: therapist_id=%v, service_id=%d, slots_count=%d",
		therapistID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
