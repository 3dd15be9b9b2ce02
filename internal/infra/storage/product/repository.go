package product

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/dbmetrics"
	"github.com/fp-experiences/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для чтения продуктов (опытов) и их политик
// Таблица products принадлежит каталогу коммерции: здесь только чтение
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория продуктов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает продукт по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_active",
		"cutoff_minutes",
		"free_cancel_until_minutes",
		"cancellation_fee_percent",
		"default_meeting_point_id",
		"created_at",
	).
		From("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Product
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Name,
		&p.IsActive,
		&p.CutoffMinutes,
		&p.FreeCancelUntilMinutes,
		&p.CancellationFeePercent,
		&p.DefaultMeetingPointID,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan product: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	return &p, nil
}
