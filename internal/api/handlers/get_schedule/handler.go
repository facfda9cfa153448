package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/service/schedule"
)

const (
	msgInvalidTherapistID = "некорректный ID терапевта"
	msgTherapistNotFound  = "терапевт не найден"
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

// Handle GET /api/v1/therapists/{therapistId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем therapistId из URL
	vars := mux.Vars(r)
	therapistIDStr := vars["therapistId"]

	therapistID, err := strconv.ParseInt(therapistIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /therapists/{therapistId}/schedule - Invalid therapist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTherapistID)
		return
	}

	// Получаем расписание
	result, err := h.service.GetTherapistSchedule(r.Context(), therapistID)
	if err != nil {
		if errors.Is(err, schedule.ErrTherapistNotFound) {
			h.logger.Warn("GET /therapists/{therapistId}/schedule - Therapist not found: therapist_id=%d", therapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)
			return
		}

		h.logger.Error("GET /therapists/{therapistId}/schedule - Failed to get schedule: therapist_id=%d, error=%v",
			therapistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /therapists/{therapistId}/schedule - Schedule retrieved successfully: therapist_id=%d, rules_count=%d",
		therapistID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
