package settings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CourtService/internal/domain"
	"github.com/m04kA/SMC-CourtService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с настройками комплекса (singleton)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает единственную запись настроек
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_time",
		"close_time",
		"weekend_days",
		"currency",
		"created_at",
		"updated_at",
	).
		From("settings").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settings
	var weekendDays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.OpenTime,
		&s.CloseTime,
		&weekendDays,
		&s.Currency,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.WeekendDays = intsToWeekdays(weekendDays)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Create создает запись настроек
// Используется для ленивого создания дефолтов при первом чтении
func (r *Repository) Create(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("open_time", "close_time", "weekend_days", "currency").
		Values(s.OpenTime, s.CloseTime, pq.Array(weekdaysToInts(s.WeekendDays)), s.Currency).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Update обновляет запись настроек
func (r *Repository) Update(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("settings").
		Set("open_time", s.OpenTime).
		Set("close_time", s.CloseTime).
		Set("weekend_days", pq.Array(weekdaysToInts(s.WeekendDays))).
		Set("currency", s.Currency).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	s.UpdatedAt = updatedAt.Time

	return s, nil
}

func weekdaysToInts(days []time.Weekday) []int64 {
	ints := make([]int64, len(days))
	for i, d := range days {
		ints[i] = int64(d)
	}
	return ints
}

func intsToWeekdays(ints []int64) []time.Weekday {
	if len(ints) == 0 {
		return nil
	}
	days := make([]time.Weekday, len(ints))
	for i, v := range ints {
		days[i] = time.Weekday(v)
	}
	return days
}
