package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/dbmetrics"
	"github.com/fp-experiences/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий для чтения шаблонов расписаний
// Таблица schedules принадлежит внешнему админ-модулю: здесь только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForDay получает активные шаблоны продукта для дня недели (0=Вс..6=Сб)
// Шаблоны отсортированы по времени начала
func (r *Repository) GetForDay(ctx context.Context, productID int64, dayOfWeek int) ([]*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "product_id", "day_of_week", "start_time", "duration_min",
		"capacity", "lang", "meeting_point_id", "price_adult", "price_child",
		"is_active", "created_at",
	).
		From("schedules").
		Where(squirrel.Eq{
			"product_id":  productID,
			"day_of_week": dayOfWeek,
			"is_active":   true,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

// GetByProduct получает все активные шаблоны продукта
// Сортировка: день недели, затем время начала
func (r *Repository) GetByProduct(ctx context.Context, productID int64) ([]*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "product_id", "day_of_week", "start_time", "duration_min",
		"capacity", "lang", "meeting_point_id", "price_adult", "price_child",
		"is_active", "created_at",
	).
		From("schedules").
		Where(squirrel.Eq{"product_id": productID, "is_active": true}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProduct - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProduct - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanTemplates(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.ScheduleTemplate, error) {
	var tpl domain.ScheduleTemplate
	var createdAt sql.NullTime

	err := row.Scan(
		&tpl.ID,
		&tpl.ProductID,
		&tpl.DayOfWeek,
		&tpl.StartTime,
		&tpl.DurationMin,
		&tpl.Capacity,
		&tpl.Lang,
		&tpl.MeetingPointID,
		&tpl.PriceAdult,
		&tpl.PriceChild,
		&tpl.IsActive,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	tpl.CreatedAt = createdAt.Time
	return &tpl, nil
}

func scanTemplates(rows *sql.Rows) ([]*domain.ScheduleTemplate, error) {
	templates := make([]*domain.ScheduleTemplate, 0)

	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTemplates - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}
