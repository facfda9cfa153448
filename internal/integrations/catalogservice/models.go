package catalogservice

// Therapist модель терапевта из CatalogService
type Therapist struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	IsActive bool   `json:"isActive"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        bool     `json:"isActive"`
}
