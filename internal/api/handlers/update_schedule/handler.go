package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/service/schedule"
)

const (
	msgInvalidTherapistID    = "некорректный ID терапевта"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени"
	msgTherapistNotFound     = "терапевт не найден"
	msgInvalidRule           = "некорректное правило доступности"
	msgBreakOutsideWork      = "перерыв должен быть внутри рабочего окна"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/therapists/{therapistId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем therapistId из URL
	vars := mux.Vars(r)
	therapistIDStr := vars["therapistId"]

	therapistID, err := strconv.ParseInt(therapistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /therapists/{therapistId}/schedule - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	// Декодируем body
	var req UpsertRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /therapists/{therapistId}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель сервиса (с парсингом дат и времени)
	serviceReq, err := req.ToServiceRequest(therapistID)
	if err != nil {
		h.logger.Warn("PUT /therapists/{therapistId}/schedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Сохраняем правило
	result, err := h.service.UpsertRule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTherapistNotFound):
			h.logger.Warn("PUT /therapists/{therapistId}/schedule - Therapist not found: therapist_id=%d", therapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, schedule.ErrBreakOutsideWorkWindow):
			h.logger.Warn("PUT /therapists/{therapistId}/schedule - Break outside work window: therapist_id=%d", therapistID)
			handlers.RespondBadRequest(w, msgBreakOutsideWork)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /therapists/{therapistId}/schedule - Invalid rule: therapist_id=%d, error=%v",
				therapistID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		default:
			h.logger.Error("PUT /therapists/{therapistId}/schedule - Failed to save rule: therapist_id=%d, error=%v",
				therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /therapists/{therapistId}/schedule - Rule saved successfully: rule_id=%d, therapist_id=%d",
		result.ID, therapistID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
