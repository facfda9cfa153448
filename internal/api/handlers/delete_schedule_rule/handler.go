package delete_schedule_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TMS-BookingService/internal/api/handlers"
	"github.com/m04kA/TMS-BookingService/internal/service/schedule"
)

const (
	msgInvalidRuleID = "некорректный ID правила"
	msgRuleNotFound  = "правило не найдено"
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

// Handle DELETE /api/v1/therapists/{therapistId}/schedule/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ruleId из URL
	vars := mux.Vars(r)
	ruleIDStr := vars["ruleId"]

	ruleID, err := strconv.ParseInt(ruleIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /therapists/{therapistId}/schedule/{ruleId} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	// Удаляем правило
	if err := h.service.DeleteRule(r.Context(), ruleID); err != nil {
		if errors.Is(err, schedule.ErrRuleNotFound) {
			h.logger.Warn("DELETE /therapists/{therapistId}/schedule/{ruleId} - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)
			return
		}

		h.logger.Error("DELETE /therapists/{therapistId}/schedule/{ruleId} - Failed to delete rule: rule_id=%d, error=%v",
			ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /therapists/{therapistId}/schedule/{ruleId} - Rule deleted successfully: rule_id=%d", ruleID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
