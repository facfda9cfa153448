package reschedule_appointment

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	rescheduleAppointment "github.com/m04kA/TMS-BookingService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewDate      string `json:"newDate"`      // "2026-09-16"
	NewStartTime string `json:"newStartTime"` // "14:00"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	TherapistID     int64  `json:"therapistId"`
	ServiceID       int64  `json:"serviceId"`
	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, clientID int64) (*rescheduleAppointment.Request, error) {
	// Парсим дату
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		ClientID:      clientID,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		TherapistID:     resp.TherapistID,
		ServiceID:       resp.ServiceID,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
