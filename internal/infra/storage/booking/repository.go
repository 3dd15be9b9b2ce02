package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/fp-experiences/booking-service/internal/domain"
	"github.com/fp-experiences/booking-service/pkg/dbmetrics"
	"github.com/fp-experiences/booking-service/pkg/psqlbuilder"
)

const (
	pgUniqueViolation = "23505"
	pgUndefinedTable  = "42P01"
)

var bookingColumns = []string{
	"id",
	"booking_number",
	"order_id",
	"order_item_id",
	"customer_id",
	"product_id",
	"booking_date",
	"booking_time",
	"adults",
	"children",
	"meeting_point_id",
	"status",
	"customer_notes",
	"checked_in_at",
	"checked_in_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
//
// Вариант происхождения (Origin) раскладывается в nullable колонки на
// границе хранения: путь заказа пишет (order_id, order_item_id), прямой
// путь пишет customer_id. Частичный уникальный индекс по
// (order_id, order_item_id) - последняя линия защиты от дублей при
// повторной доставке вебхука; нарушение транслируется в
// ErrDuplicateOrderItem, и вызывающий возвращает уже существующую запись
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var orderID, orderItemID, customerID *int64
	switch origin := b.Origin.(type) {
	case domain.OrderOrigin:
		orderID = &origin.OrderID
		orderItemID = &origin.OrderItemID
	case domain.DirectOrigin:
		customerID = &origin.CustomerID
	default:
		return nil, fmt.Errorf("%w: Create - booking origin is not set", ErrExecQuery)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"order_id",
			"order_item_id",
			"customer_id",
			"product_id",
			"booking_date",
			"booking_time",
			"adults",
			"children",
			"meeting_point_id",
			"status",
			"customer_notes",
		).
		Values(
			b.BookingNumber,
			orderID,
			orderItemID,
			customerID,
			b.ProductID,
			b.BookingDate,
			b.BookingTime,
			b.Adults,
			b.Children,
			b.MeetingPointID,
			b.Status,
			b.CustomerNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateOrderItem
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("%w: GetByID: %v", ErrTableMissing, err)
		}
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByOrderItem получает бронирование по натуральному ключу пути заказа
func (r *Repository) GetByOrderItem(ctx context.Context, orderID, orderItemID int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"order_id": orderID, "order_item_id": orderItemID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderItem - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderItem - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByOrder получает бронирования заказа в порядке создания позиций
// activeOnly=true исключает уже отмененные
func (r *Repository) GetByOrder(ctx context.Context, orderID int64, activeOnly bool) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"order_id": orderID}).
		OrderBy("order_item_id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetForSlot получает активные бронирования одного слота
// Внутри транзакции с filter.ForUpdate добавляет FOR UPDATE: последовательность
// "прочитал занятость - проверил вместимость - вставил" должна держать
// блокировку, иначе два запроса могут перепродать последнее место
func (r *Repository) GetForSlot(ctx context.Context, filter domain.SlotBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"product_id":   filter.ProductID,
			"booking_date": filter.BookingDate,
			"booking_time": filter.BookingTime,
		}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("id ASC")

	if filter.ForUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetForSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveForDay получает активные бронирования продукта на дату
// Используется калькулятором доступности для подсчета занятости по слотам
func (r *Repository) GetActiveForDay(ctx context.Context, productID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"product_id": productID, "booking_date": date}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		OrderBy("booking_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveForDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomer получает бронирования клиента (прямой путь)
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, booking_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CheckIn отмечает прибытие клиента
// Обновляет только еще не отмеченные подтвержденные бронирования
func (r *Repository) CheckIn(ctx context.Context, id int64, staffID int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("checked_in_at", at).
		Set("checked_in_by", staffID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusConfirmed)}).
		Where("checked_in_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CheckIn - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("%w: CheckIn: %v", ErrTableMissing, err)
		}
		return fmt.Errorf("%w: CheckIn - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CheckIn - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет бронирование
// Используется только в откате неудавшейся конвертации холда
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку и собирает вариант происхождения
// из nullable колонок
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var orderID, orderItemID, customerID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&orderID,
		&orderItemID,
		&customerID,
		&b.ProductID,
		&b.BookingDate,
		&b.BookingTime,
		&b.Adults,
		&b.Children,
		&b.MeetingPointID,
		&b.Status,
		&b.CustomerNotes,
		&b.CheckedInAt,
		&b.CheckedInBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case orderID.Valid && orderItemID.Valid:
		b.Origin = domain.OrderOrigin{OrderID: orderID.Int64, OrderItemID: orderItemID.Int64}
	case customerID.Valid:
		b.Origin = domain.DirectOrigin{CustomerID: customerID.Int64}
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUndefinedTable
}
