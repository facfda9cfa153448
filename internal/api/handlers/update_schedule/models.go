package update_schedule

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/service/schedule/models"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// UpsertRuleRequest HTTP request model.
// Weekday (0-6) для повторяющегося правила, overrideDate для правила на дату.
type UpsertRuleRequest struct {
	Weekday      *int    `json:"weekday,omitempty"`
	OverrideDate *string `json:"overrideDate,omitempty"` // "2026-09-15"
	IsAvailable  bool    `json:"isAvailable"`
	WorkStart    string  `json:"workStart"` // "09:00"
	WorkEnd      string  `json:"workEnd"`   // "17:00"
	BreakStart   *string `json:"breakStart,omitempty"`
	BreakEnd     *string `json:"breakEnd,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса (с парсингом дат и времени)
func (r *UpsertRuleRequest) ToServiceRequest(therapistID int64) (*models.UpsertRuleRequest, error) {
	req := &models.UpsertRuleRequest{
		TherapistID: therapistID,
		IsAvailable: r.IsAvailable,
	}

	if r.Weekday != nil {
		weekday := time.Weekday(*r.Weekday)
		req.Weekday = &weekday
	}

	if r.OverrideDate != nil {
		overrideDate, err := time.Parse(domain.DateFormat, *r.OverrideDate)
		if err != nil {
			return nil, err
		}
		req.OverrideDate = &overrideDate
	}

	// Для закрытого дня рабочее окно может отсутствовать
	if r.WorkStart != "" {
		workStart, err := types.NewTimeStringFromString(r.WorkStart)
		if err != nil {
			return nil, err
		}
		req.WorkStart = workStart
	}
	if r.WorkEnd != "" {
		workEnd, err := types.NewTimeStringFromString(r.WorkEnd)
		if err != nil {
			return nil, err
		}
		req.WorkEnd = workEnd
	}

	if r.BreakStart != nil {
		breakStart, err := types.NewTimeStringFromString(*r.BreakStart)
		if err != nil {
			return nil, err
		}
		req.BreakStart = &breakStart
	}
	if r.BreakEnd != nil {
		breakEnd, err := types.NewTimeStringFromString(*r.BreakEnd)
		if err != nil {
			return nil, err
		}
		req.BreakEnd = &breakEnd
	}

	return req, nil
}
