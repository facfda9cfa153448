package get_available_slots

import (
	"time"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/TMS-BookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       int64           `json:"serviceId"`
	DurationMinutes int             `json:"durationMinutes"`
	DateFrom        string          `json:"dateFrom"`
	DateTo          string          `json:"dateTo"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	TherapistID     int64  `json:"therapistId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			TherapistID:     slot.TherapistID,
			Date:            slot.Date.Format(domain.DateFormat),
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		DateFrom:        resp.DateFrom.Format(domain.DateFormat),
		DateTo:          resp.DateTo.Format(domain.DateFormat),
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(therapistID *int64, serviceID int64, dateFromStr, dateToStr string) (*getAvailableSlots.Request, error) {
	// Парсим начало диапазона
	dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
	if err != nil {
		return nil, err
	}

	// Конец диапазона опционален: пустое значение означает один день
	var dateTo time.Time
	if dateToStr != "" {
		dateTo, err = time.Parse(domain.DateFormat, dateToStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		ServiceID:   serviceID,
		TherapistID: therapistID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	}, nil
}
