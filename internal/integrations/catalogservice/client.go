package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CatalogService (справочник терапевтов и услуг)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CatalogService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTherapist получает терапевта по ID
func (c *Client) GetTherapist(ctx context.Context, therapistID int64) (*Therapist, error) {
	url := fmt.Sprintf("%s/internal/therapists/%d", c.baseURL, therapistID)

	var therapist Therapist
	if err := c.getJSON(ctx, url, &therapist, ErrTherapistNotFound); err != nil {
		return nil, err
	}

	return &therapist, nil
}

// ListTherapists получает список активных терапевтов.
// Используется read-путём поиска слотов, когда терапевт не указан.
func (c *Client) ListTherapists(ctx context.Context) ([]*Therapist, error) {
	url := fmt.Sprintf("%s/internal/therapists?active=true", c.baseURL)

	var therapists []*Therapist
	if err := c.getJSON(ctx, url, &therapists, ErrTherapistNotFound); err != nil {
		return nil, err
	}

	return therapists, nil
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/services/%d", c.baseURL, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ.
// notFoundErr возвращается на 404 — у каждого метода свой sentinel.
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
