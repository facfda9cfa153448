package schedule

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда терапевт не найден
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrRuleNotFound возвращается, когда правило доступности не найдено
	ErrRuleNotFound = errors.New("availability rule not found")

	// ErrBreakOutsideWorkWindow возвращается, когда перерыв выходит за рабочее окно
	ErrBreakOutsideWorkWindow = errors.New("break is outside work window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
