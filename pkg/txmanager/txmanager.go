package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/TMS-BookingService/pkg/dbmetrics"
)

// ErrSerializationFailure возвращается, когда сериализуемая транзакция
// не смогла зафиксироваться за отведённое число попыток.
// Для вызывающего это retryable-ошибка: можно безопасно повторить запрос.
var ErrSerializationFailure = errors.New("txmanager: serialization failure, transaction aborted")

// maxSerializableRetries число повторов сериализуемой транзакции
// при конфликте сериализации, прежде чем вернуть ErrSerializationFailure
const maxSerializableRetries = 3

// TxBeginner начинает транзакции. Реализуется *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в рамках транзакции,
// пробрасывая её в контекст для репозиториев.
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager creates a transaction manager over a metrics-wrapped DB.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do runs fn inside a transaction with the default isolation level.
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly runs fn inside a read-only transaction.
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable runs fn inside a SERIALIZABLE transaction.
// Конфликты сериализации (SQLSTATE 40001/40P01) повторяются ограниченное число раз;
// после исчерпания попыток возвращается ErrSerializationFailure.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= maxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !IsSerializationError(err) {
			return err
		}
		// Конфликт сериализации — безопасно начать транзакцию заново
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// IsSerializationError reports whether err is a Postgres serialization
// conflict or deadlock, i.e. the transaction can be retried as-is.
func IsSerializationError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
