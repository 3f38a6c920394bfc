package bookingslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Repository репозиторий для работы со слотами бронирований
//
// Корректность конкурентного бронирования держится на частичном уникальном
// индексе booking_slots_active_uniq (court_id, booking_date, slot_time)
// WHERE status = 'BOOKED'. Предварительная проверка FindBooked нужна для
// внятного ответа клиенту, но не для корректности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает слоты бронирования одной вставкой
// Проигрыш гонки за слот (нарушение booking_slots_active_uniq) возвращается как ErrSlotTaken
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.BookingSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("booking_slots").
		Columns("court_id", "booking_id", "booking_date", "slot_time", "status")

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(
			slot.CourtID,
			slot.BookingID,
			slot.BookingDate,
			slot.SlotTime,
			slot.Status,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// FindBooked возвращает отсортированные занятые слоты из указанного набора
// для корта и даты. Слоты бронирования excludeBookingID не считаются занятыми
// (используется при редактировании и реактивации)
//
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) FindBooked(
	ctx context.Context,
	courtID int64,
	date time.Time,
	slotTimes []types.TimeString,
	excludeBookingID *int64,
) ([]types.TimeString, error) {
	if len(slotTimes) == 0 {
		return []types.TimeString{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	labels := make([]string, len(slotTimes))
	for i, s := range slotTimes {
		labels[i] = s.String()
	}

	selectBuilder := psqlbuilder.Select("DISTINCT slot_time").
		From("booking_slots").
		Where(squirrel.Eq{
			"court_id":     courtID,
			"booking_date": domain.NormalizeDate(date),
			"slot_time":    labels,
			"status":       domain.SlotStatusBooked,
		}).
		OrderBy("slot_time ASC")

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"booking_id": *excludeBookingID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBooked - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindBooked - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	booked := make([]types.TimeString, 0)
	for rows.Next() {
		var slotTime types.TimeString
		if err := rows.Scan(&slotTime); err != nil {
			return nil, fmt.Errorf("%w: FindBooked - scan slot_time: %v", ErrScanRow, err)
		}
		booked = append(booked, slotTime)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindBooked - rows error: %v", ErrScanRow, err)
	}

	return booked, nil
}

// DeleteStale удаляет неактивные (не BOOKED) строки слотов для указанного набора
// Чистая гигиена: история отменённых слотов не мешает уникальному индексу,
// но накапливается при повторных бронированиях одного и того же времени
func (r *Repository) DeleteStale(ctx context.Context, courtID int64, date time.Time, slotTimes []types.TimeString) error {
	if len(slotTimes) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	labels := make([]string, len(slotTimes))
	for i, s := range slotTimes {
		labels[i] = s.String()
	}

	query, args, err := psqlbuilder.Delete("booking_slots").
		Where(squirrel.Eq{
			"court_id":     courtID,
			"booking_date": domain.NormalizeDate(date),
			"slot_time":    labels,
		}).
		Where(squirrel.NotEq{"status": domain.SlotStatusBooked}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteStale - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteStale - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatusByBooking переводит все слоты бронирования в указанный статус
// Перевод в BOOKED может нарушить уникальный индекс активных слотов -
// возвращается как ErrSlotTaken (проигрыш гонки при реактивации)
func (r *Repository) UpdateStatusByBooking(ctx context.Context, bookingID int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("status", status).
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusByBooking - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateStatusByBooking - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatusByBookingIDs переводит слоты нескольких бронирований в указанный статус
func (r *Repository) UpdateStatusByBookingIDs(ctx context.Context, bookingIDs []int64, status domain.SlotStatus) error {
	if len(bookingIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_slots").
		Set("status", status).
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusByBookingIDs - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateStatusByBookingIDs - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteByBooking удаляет все слоты бронирования
func (r *Repository) DeleteByBooking(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByBooking - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBooking - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
