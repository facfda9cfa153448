package get_therapist_appointments

import (
	"net/url"
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(therapistID int64, query url.Values) (*models.GetTherapistAppointmentsRequest, error) {
	req := &models.GetTherapistAppointmentsRequest{
		TherapistID: therapistID,
	}

	if dateFromStr := query.Get("dateFrom"); dateFromStr != "" {
		dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &dateFrom
	}

	if dateToStr := query.Get("dateTo"); dateToStr != "" {
		dateTo, err := time.Parse(domain.DateFormat, dateToStr)
		if err != nil {
			return nil, err
		}
		req.DateTo = &dateTo
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
