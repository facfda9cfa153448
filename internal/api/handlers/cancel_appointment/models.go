package cancel_appointment

import (
	"github.com/m04kA/TMS-BookingService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(clientID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		ClientID:           clientID,
		CancellationReason: r.CancellationReason,
	}
}
