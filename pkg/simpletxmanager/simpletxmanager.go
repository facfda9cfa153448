package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/TMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-BookingService/pkg/txmanager"
)

// maxSerializableRetries число повторов сериализуемой транзакции при конфликте
const maxSerializableRetries = 3

// TransactionManager менеджер транзакций над "голым" *sql.DB,
// для запуска без обёртки метрик. Семантика идентична pkg/txmanager.
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager creates a transaction manager over a plain database handle.
func NewTransactionManager(db *sql.DB) *TransactionManager {
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

// DoSerializable runs fn inside a SERIALIZABLE transaction with bounded retries.
// После исчерпания попыток возвращает txmanager.ErrSerializationFailure,
// чтобы вызывающим не приходилось различать два менеджера.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= maxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !txmanager.IsSerializationError(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	// *sql.Tx реализует dbmetrics.TxExecutor
	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}
