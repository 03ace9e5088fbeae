package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/dbmetrics"
	"github.com/strandly/booking-service/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания стилистов
//
// Расписание хранится в двух таблицах:
//   - stylist_availability: одна строка на стилиста (настройки)
//   - availability_blocks: интервалы открытых часов (weekday + position задают порядок)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStylistID получает недельное расписание стилиста
// Результат всегда содержит все 7 дней; день без блоков — закрыт
func (r *Repository) GetByStylistID(ctx context.Context, stylistID uuid.UUID) (*domain.WeeklyAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_granularity_minutes").
		From("stylist_availability").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistID - build settings query: %v", ErrBuildQuery, err)
	}

	av := domain.AllClosed(stylistID)

	err = executor.QueryRowContext(ctx, query, args...).Scan(&av.SlotGranularityMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistID - scan settings: %v", ErrScanRow, err)
	}

	query, args, err = psqlbuilder.Select("weekday", "start_time", "end_time").
		From("availability_blocks").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		OrderBy("weekday", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistID - build blocks query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStylistID - query blocks: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var block domain.OpenBlock
		if err := rows.Scan(&weekday, &block.Start, &block.End); err != nil {
			return nil, fmt.Errorf("%w: GetByStylistID - scan block: %v", ErrScanRow, err)
		}
		day := domain.Weekday(weekday)
		av.Rules[day] = append(av.Rules[day], block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByStylistID - iterate blocks: %v", ErrExecQuery, err)
	}

	return av, nil
}

// Replace полностью заменяет расписание стилиста
// Должен вызываться внутри транзакции (удаление + вставка)
func (r *Repository) Replace(ctx context.Context, av *domain.WeeklyAvailability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("stylist_availability").
		Columns("stylist_id", "slot_granularity_minutes").
		Values(av.StylistID, av.SlotGranularityMinutes).
		Suffix("ON CONFLICT (stylist_id) DO UPDATE SET slot_granularity_minutes = EXCLUDED.slot_granularity_minutes, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - upsert settings: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Delete("availability_blocks").
		Where(squirrel.Eq{"stylist_id": av.StylistID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - delete old blocks: %v", ErrExecQuery, err)
	}

	insert := psqlbuilder.Insert("availability_blocks").
		Columns("stylist_id", "weekday", "position", "start_time", "end_time")

	hasBlocks := false
	for day := domain.Sunday; day <= domain.Saturday; day++ {
		for position, block := range av.Rules[day] {
			insert = insert.Values(av.StylistID, int(day), position, block.Start, block.End)
			hasBlocks = true
		}
	}

	if !hasBlocks {
		return nil
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Replace - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Replace - insert blocks: %v", ErrExecQuery, err)
	}

	return nil
}
