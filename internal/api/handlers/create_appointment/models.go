package create_appointment

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	createAppointment "github.com/m04kA/TMS-BookingService/internal/usecase/create_appointment"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	TherapistID     int64   `json:"therapistId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"` // "2026-09-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	TherapistID     int64   `json:"therapistId"`
	ServiceID       int64   `json:"serviceId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	// Парсим дату
	appointmentDate, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:    clientID,
		TherapistID: r.TherapistID,
		ServiceID:   r.ServiceID,
		Date:        appointmentDate,
		StartTime:   startTime,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		TherapistID:     resp.TherapistID,
		ServiceID:       resp.ServiceID,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
