package models

import (
	"errors"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	ClientID           int64   `json:"clientId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetClientAppointmentsRequest запрос на получение записей клиента
type GetClientAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetTherapistAppointmentsRequest запрос на получение записей терапевта
type GetTherapistAppointmentsRequest struct {
	TherapistID int64      `json:"therapistId"`
	DateFrom    *time.Time `json:"dateFrom,omitempty"` // Начало периода (опционально)
	DateTo      *time.Time `json:"dateTo,omitempty"`   // Конец периода (опционально)
	Status      *string    `json:"status,omitempty"`   // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetTherapistAppointmentsRequest) ToDomainFilter() (domain.TherapistAppointmentsFilter, error) {
	filter := domain.TherapistAppointmentsFilter{
		TherapistID:     r.TherapistID,
		DateFrom:        r.DateFrom,
		DateTo:          r.DateTo,
		IncludeInactive: true,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	TherapistID     int64  `json:"therapistId"`
	ServiceID       int64  `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"` // "2026-09-15"
	StartTime       string `json:"startTime"`       // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		TherapistID:        a.TherapistID,
		ServiceID:          a.ServiceID,
		AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if appointmentResp := FromDomainAppointment(appointment); appointmentResp != nil {
			resp.Appointments[i] = *appointmentResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s, ok := domain.ParseStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
