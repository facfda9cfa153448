package catalogservice

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("catalogservice: therapist not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrInvalidResponse возвращается при некорректном ответе CatalogService
	ErrInvalidResponse = errors.New("catalogservice: invalid response")

	// ErrInternal возвращается при ошибках выполнения запроса
	ErrInternal = errors.New("catalogservice: internal error")
)
