package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TMS-BookingService/internal/domain"
	"github.com/m04kA/TMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TMS-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/TMS-BookingService/pkg/types"
)

// ruleColumns полный список колонок таблицы availability_rules в порядке сканирования
var ruleColumns = []string{
	"id",
	"therapist_id",
	"override_date",
	"weekday",
	"is_available",
	"work_start",
	"work_end",
	"break_start",
	"break_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами доступности терапевтов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил доступности
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTherapist получает все правила доступности терапевта
// (повторяющиеся и override), упорядоченные для отображения расписания
func (r *Repository) GetByTherapist(ctx context.Context, therapistID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"therapist_id": therapistID}).
		OrderBy("override_date ASC NULLS FIRST, weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTherapist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTherapist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// GetForRange получает правила, действующие в диапазоне дат [from, to]:
// все повторяющиеся правила терапевта плюс override-правила на даты диапазона.
// Разрешение приоритетов по конкретной дате выполняет internal/scheduling.
func (r *Repository) GetForRange(ctx context.Context, therapistID int64, from, to time.Time) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(squirrel.Eq{"therapist_id": therapistID}).
		Where(squirrel.Or{
			squirrel.Eq{"override_date": nil},
			squirrel.And{
				squirrel.GtOrEq{"override_date": from},
				squirrel.LtOrEq{"override_date": to},
			},
		}).
		OrderBy("override_date ASC NULLS FIRST, weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// Upsert создает или обновляет правило доступности.
// Для повторяющихся правил конфликт определяется по (therapist_id, weekday),
// для override-правил — по (therapist_id, override_date); на каждую пару
// существует не больше одной строки (частичные уникальные индексы).
func (r *Repository) Upsert(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var weekday interface{}
	if rule.Weekday != nil {
		weekday = int(*rule.Weekday)
	}

	conflictTarget := "(therapist_id, weekday) WHERE override_date IS NULL"
	if rule.IsOverride() {
		conflictTarget = "(therapist_id, override_date) WHERE override_date IS NOT NULL"
	}

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns(
			"therapist_id",
			"override_date",
			"weekday",
			"is_available",
			"work_start",
			"work_end",
			"break_start",
			"break_end",
		).
		Values(
			rule.TherapistID,
			rule.OverrideDate,
			weekday,
			rule.IsAvailable,
			rule.WorkStart,
			rule.WorkEnd,
			rule.BreakStart,
			rule.BreakEnd,
		).
		Suffix(fmt.Sprintf(`ON CONFLICT %s DO UPDATE SET
			is_available = EXCLUDED.is_available,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`, conflictTarget)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// Delete удаляет правило доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func scanRules(rows *sql.Rows) ([]*domain.AvailabilityRule, error) {
	rules := make([]*domain.AvailabilityRule, 0)

	for rows.Next() {
		var rule domain.AvailabilityRule
		var overrideDate sql.NullTime
		var weekday sql.NullInt64
		var breakStart, breakEnd sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.TherapistID,
			&overrideDate,
			&weekday,
			&rule.IsAvailable,
			&rule.WorkStart,
			&rule.WorkEnd,
			&breakStart,
			&breakEnd,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		if overrideDate.Valid {
			d := overrideDate.Time
			rule.OverrideDate = &d
		}
		if weekday.Valid {
			w := time.Weekday(weekday.Int64)
			rule.Weekday = &w
		}
		if breakStart.Valid && breakEnd.Valid {
			bs, err := parseTimeColumn(breakStart.String)
			if err != nil {
				return nil, fmt.Errorf("%w: scanRules - break_start: %v", ErrScanRow, err)
			}
			be, err := parseTimeColumn(breakEnd.String)
			if err != nil {
				return nil, fmt.Errorf("%w: scanRules - break_end: %v", ErrScanRow, err)
			}
			rule.BreakStart = &bs
			rule.BreakEnd = &be
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// parseTimeColumn приводит значение TIME-колонки ("10:00:00") к TimeString
func parseTimeColumn(s string) (types.TimeString, error) {
	var ts types.TimeString
	if err := ts.Scan(s); err != nil {
		return "", err
	}
	return ts, nil
}
