package hold

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/dbmetrics"
	"github.com/fp-experiences/booking-service/pkg/psqlbuilder"
)

var holdColumns = []string{
	"id",
	"product_id",
	"slot_start",
	"session_id",
	"adults",
	"children",
	"created_at",
	"expires_at",
}

// Repository репозиторий для работы с холдами мест
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория холдов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый холд
func (r *Repository) Create(ctx context.Context, h *domain.Hold) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holds").
		Columns(
			"product_id",
			"slot_start",
			"session_id",
			"adults",
			"children",
			"expires_at",
		).
		Values(
			h.ProductID,
			h.SlotStart,
			h.SessionID,
			h.Adults,
			h.Children,
			h.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time
	return h, nil
}

// GetBySessionSlot получает активный (не просроченный на момент now) холд
// сессии для слота. forUpdate=true внутри транзакции блокирует строку,
// чтобы конкурентный свип не удалил холд посреди конвертации
func (r *Repository) GetBySessionSlot(ctx context.Context, productID int64, slotStart time.Time, sessionID string, now time.Time, forUpdate bool) (*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{
			"product_id": productID,
			"slot_start": slotStart,
			"session_id": sessionID,
		}).
		Where(squirrel.Gt{"expires_at": now})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionSlot - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionSlot - scan hold: %v", ErrScanRow, err)
	}

	return h, nil
}

// SumActiveSeats возвращает суммарное число мест в активных холдах слота
// excludeSessionID исключает холды указанной сессии: при создании нового
// холда собственный старый холд не должен считаться занятостью
func (r *Repository) SumActiveSeats(ctx context.Context, productID int64, slotStart time.Time, now time.Time, excludeSessionID *string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(adults + children), 0)").
		From("holds").
		Where(squirrel.Eq{"product_id": productID, "slot_start": slotStart}).
		Where(squirrel.Gt{"expires_at": now})

	if excludeSessionID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"session_id": *excludeSessionID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumActiveSeats - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumActiveSeats - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// GetActiveForRange получает активные холды продукта в интервале
// [from, to) по slot_start. Используется калькулятором доступности
func (r *Repository) GetActiveForRange(ctx context.Context, productID int64, from, to time.Time, now time.Time) ([]*domain.Hold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("holds").
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.GtOrEq{"slot_start": from}).
		Where(squirrel.Lt{"slot_start": to}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("slot_start ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanHolds(rows)
}

// DeleteByID удаляет холд по ID
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByID - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// DeleteBySessionSlot удаляет холд сессии для слота (включая просроченный)
// Возвращает nil, если холда не было
func (r *Repository) DeleteBySessionSlot(ctx context.Context, productID int64, slotStart time.Time, sessionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.Eq{
			"product_id": productID,
			"slot_start": slotStart,
			"session_id": sessionID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBySessionSlot - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBySessionSlot - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет все холды с истекшим expires_at
// Идемпотентно и безопасно при конкурентных запусках: удаление ключуется
// по id, а конвертация блокирует свою строку FOR UPDATE
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHold(row rowScanner) (*domain.Hold, error) {
	var h domain.Hold
	var createdAt sql.NullTime

	err := row.Scan(
		&h.ID,
		&h.ProductID,
		&h.SlotStart,
		&h.SessionID,
		&h.Adults,
		&h.Children,
		&createdAt,
		&h.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	h.CreatedAt = createdAt.Time
	return &h, nil
}

func scanHolds(rows *sql.Rows) ([]*domain.Hold, error) {
	holds := make([]*domain.Hold, 0)

	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanHolds - scan row: %v", ErrScanRow, err)
		}
		holds = append(holds, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanHolds - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}
