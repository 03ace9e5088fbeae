package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/dbmetrics"
	"github.com/strandly/booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки Postgres для нарушения unique constraint
const uniqueViolation = "23505"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с отзывами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв. Второй отзыв на то же бронирование отклоняется
// unique constraint'ом по booking_id
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"id",
			"booking_id",
			"client_id",
			"client_name",
			"stylist_id",
			"rating",
			"comment",
		).
		Values(
			review.ID,
			review.BookingID,
			review.ClientID,
			review.ClientName,
			review.StylistID,
			review.Rating,
			review.Comment,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time

	return review, nil
}

// ListByStylist получает отзывы стилиста, новые первыми
func (r *Repository) ListByStylist(ctx context.Context, stylistID uuid.UUID) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"client_id",
		"client_name",
		"stylist_id",
		"rating",
		"comment",
		"created_at",
	).
		From("reviews").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStylist - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStylist - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		var createdAt sql.NullTime

		err := rows.Scan(
			&rv.ID,
			&rv.BookingID,
			&rv.ClientID,
			&rv.ClientName,
			&rv.StylistID,
			&rv.Rating,
			&rv.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStylist - scan review: %v", ErrScanRow, err)
		}

		rv.CreatedAt = createdAt.Time
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStylist - iterate rows: %v", ErrExecQuery, err)
	}

	return reviews, nil
}
