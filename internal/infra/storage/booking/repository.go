package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"sport_type",
	"court_id",
	"booking_date",
	"start_time",
	"end_time",
	"slot_count",
	"base_amount",
	"discount_type",
	"discount_value",
	"final_amount",
	"status",
	"source",
	"recurring_rule_id",
	"created_by",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_phone",
			"sport_type",
			"court_id",
			"booking_date",
			"start_time",
			"end_time",
			"slot_count",
			"base_amount",
			"discount_type",
			"discount_value",
			"final_amount",
			"status",
			"source",
			"recurring_rule_id",
			"created_by",
		).
		Values(
			b.CustomerName,
			b.CustomerPhone,
			b.SportType,
			b.CourtID,
			b.BookingDate,
			b.StartTime,
			b.EndTime,
			b.SlotCount,
			b.BaseAmount,
			b.Discount.Type,
			b.Discount.Value,
			b.FinalAmount,
			b.Status,
			b.Source,
			b.RecurringRuleID,
			b.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
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

	b, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListByCourtAndDate получает бронирования корта на дату, отсортированные по времени начала
func (r *Repository) ListByCourtAndDate(ctx context.Context, courtID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"court_id": courtID, "booking_date": domain.NormalizeDate(date)}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCourtAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListExpired получает все бронирования в статусе BOOKED, чьё расписание уже прошло:
// прошлая дата, либо сегодняшняя дата с end_time не позже текущего времени
//
// Внутри транзакции строки блокируются (FOR UPDATE) - используется sweeper'ом
func (r *Repository) ListExpired(ctx context.Context, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	today := domain.NormalizeDate(now)
	nowTime := types.NewTimeString(now)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.BookingStatusBooked}).
		Where(squirrel.Or{
			squirrel.Lt{"booking_date": today},
			squirrel.And{
				squirrel.Eq{"booking_date": today},
				squirrel.LtOrEq{"end_time": nowTime},
			},
		}).
		OrderBy("booking_date ASC, start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpired - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
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

// UpdateStatusByIDs обновляет статус сразу нескольких бронирований
func (r *Repository) UpdateStatusByIDs(ctx context.Context, ids []int64, status domain.BookingStatus) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusByIDs - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateStatusByIDs - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteFutureByRule удаляет будущие BOOKED бронирования, созданные правилом
// Связанные слоты и платежи удаляются каскадно (FK ON DELETE CASCADE)
// Прошедшие и завершённые бронирования сохраняются как история
func (r *Repository) DeleteFutureByRule(ctx context.Context, ruleID int64, from time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{
			"recurring_rule_id": ruleID,
			"status":            domain.BookingStatusBooked,
		}).
		Where(squirrel.GtOrEq{"booking_date": domain.NormalizeDate(from)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureByRule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureByRule - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFutureByRule - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanBooking сканирует одну строку результата в бронирование
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.SportType,
		&b.CourtID,
		&b.BookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.SlotCount,
		&b.BaseAmount,
		&b.Discount.Type,
		&b.Discount.Value,
		&b.FinalAmount,
		&b.Status,
		&b.Source,
		&b.RecurringRuleID,
		&b.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.CustomerName,
			&b.CustomerPhone,
			&b.SportType,
			&b.CourtID,
			&b.BookingDate,
			&b.StartTime,
			&b.EndTime,
			&b.SlotCount,
			&b.BaseAmount,
			&b.Discount.Type,
			&b.Discount.Value,
			&b.FinalAmount,
			&b.Status,
			&b.Source,
			&b.RecurringRuleID,
			&b.CreatedBy,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
