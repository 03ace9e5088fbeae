package stylist

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

// Repository репозиторий для работы со стилистами и их услугами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория стилистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var stylistColumns = []string{
	"id",
	"user_id",
	"name",
	"verified",
	"rating_avg",
	"rating_count",
	"bio",
	"public_location_label",
	"created_at",
	"updated_at",
}

// GetByID получает стилиста по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stylistColumns...).
		From("stylists").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	st, err := scanStylist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan stylist: %v", ErrScanRow, err)
	}

	return st, nil
}

// GetByUserID получает стилиста по ID пользователя-владельца
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(stylistColumns...).
		From("stylists").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	st, err := scanStylist(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan stylist: %v", ErrScanRow, err)
	}

	return st, nil
}

// GetService получает услугу стилиста по ID
func (r *Repository) GetService(ctx context.Context, stylistID, serviceID uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"stylist_id",
		"name",
		"price",
		"duration_minutes",
		"hair_included",
		"requires_deposit",
		"deposit_amount",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "stylist_id": stylistID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.StylistID,
		&svc.Name,
		&svc.Price,
		&svc.DurationMinutes,
		&svc.HairIncluded,
		&svc.RequiresDeposit,
		&svc.DepositAmount,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// UpdateRating обновляет агрегат рейтинга стилиста
// Вызывается внутри сериализуемой транзакции вместе с созданием отзыва
func (r *Repository) UpdateRating(ctx context.Context, stylistID uuid.UUID, ratingAvg float64, ratingCount int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("stylists").
		Set("rating_avg", ratingAvg).
		Set("rating_count", ratingCount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": stylistID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRating - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrStylistNotFound
	}

	return nil
}

func scanStylist(row *sql.Row) (*domain.Stylist, error) {
	var st domain.Stylist
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&st.ID,
		&st.UserID,
		&st.Name,
		&st.Verified,
		&st.RatingAvg,
		&st.RatingCount,
		&st.Bio,
		&st.PublicLocationLabel,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	st.CreatedAt = createdAt.Time
	st.UpdatedAt = updatedAt.Time

	return &st, nil
}
