package models

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// Request модели

// UpsertRuleRequest запрос на создание или обновление правила доступности.
// Ровно одно из Weekday / OverrideDate должно быть задано: правило либо
// повторяется по дню недели, либо привязано к конкретной дате.
type UpsertRuleRequest struct {
	TherapistID  int64
	Weekday      *time.Weekday
	OverrideDate *time.Time
	IsAvailable  bool
	WorkStart    types.TimeString
	WorkEnd      types.TimeString
	BreakStart   *types.TimeString
	BreakEnd     *types.TimeString
}

// ToDomainRule конвертирует request в domain модель
func (r *UpsertRuleRequest) ToDomainRule() *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		TherapistID:  r.TherapistID,
		Weekday:      r.Weekday,
		OverrideDate: r.OverrideDate,
		IsAvailable:  r.IsAvailable,
		WorkStart:    r.WorkStart,
		WorkEnd:      r.WorkEnd,
		BreakStart:   r.BreakStart,
		BreakEnd:     r.BreakEnd,
	}
}

// Response модели

// RuleResponse ответ с данными правила доступности
type RuleResponse struct {
	ID           int64   `json:"id"`
	TherapistID  int64   `json:"therapistId"`
	Weekday      *int    `json:"weekday,omitempty"`      // 0 = воскресенье ... 6 = суббота
	OverrideDate *string `json:"overrideDate,omitempty"` // "2026-09-15"
	IsAvailable  bool    `json:"isAvailable"`
	WorkStart    string  `json:"workStart"` // "09:00"
	WorkEnd      string  `json:"workEnd"`   // "17:00"
	BreakStart   *string `json:"breakStart,omitempty"`
	BreakEnd     *string `json:"breakEnd,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ScheduleResponse ответ с расписанием терапевта
type ScheduleResponse struct {
	TherapistID int64          `json:"therapistId"`
	Rules       []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.AvailabilityRule) *RuleResponse {
	if r == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:          r.ID,
		TherapistID: r.TherapistID,
		IsAvailable: r.IsAvailable,
		WorkStart:   r.WorkStart.String(),
		WorkEnd:     r.WorkEnd.String(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.Weekday != nil {
		weekday := int(*r.Weekday)
		resp.Weekday = &weekday
	}
	if r.OverrideDate != nil {
		dateStr := r.OverrideDate.Format(domain.DateFormat)
		resp.OverrideDate = &dateStr
	}
	if r.BreakStart != nil {
		breakStart := r.BreakStart.String()
		resp.BreakStart = &breakStart
	}
	if r.BreakEnd != nil {
		breakEnd := r.BreakEnd.String()
		resp.BreakEnd = &breakEnd
	}

	return resp
}

// FromDomainRuleList конвертирует список правил в DTO расписания
func FromDomainRuleList(therapistID int64, rules []*domain.AvailabilityRule) *ScheduleResponse {
	resp := &ScheduleResponse{
		TherapistID: therapistID,
		Rules:       make([]RuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules = append(resp.Rules, *ruleResp)
		}
	}

	return resp
}
