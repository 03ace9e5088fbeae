package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/dbmetrics"
	"github.com/strandly/booking-service/pkg/psqlbuilder"
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
	"client_id",
	"stylist_id",
	"service_id",
	"start_at",
	"end_at",
	"status",
	"requested_at",
	"responded_at",
	"location_type",
	"mobile_location_note",
	"client_name",
	"stylist_name",
	"service_name",
	"service_price",
	"deposit_amount",
	"deposit_paid",
	"total_amount",
	"balance_paid",
	"reschedule_start_at",
	"reschedule_end_at",
	"reschedule_proposed_by",
	"reschedule_created_at",
	"review_id",
	"client_has_notification",
	"stylist_has_notification",
	"last_message_at",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"client_id",
			"stylist_id",
			"service_id",
			"start_at",
			"end_at",
			"status",
			"requested_at",
			"location_type",
			"mobile_location_note",
			"client_name",
			"stylist_name",
			"service_name",
			"service_price",
			"deposit_amount",
			"deposit_paid",
			"total_amount",
			"balance_paid",
			"client_has_notification",
			"stylist_has_notification",
		).
		Values(
			b.ID,
			b.ClientID,
			b.StylistID,
			b.ServiceID,
			b.StartAt,
			b.EndAt,
			b.Status,
			b.RequestedAt,
			b.LocationType,
			b.MobileLocationNote,
			b.ClientName,
			b.StylistName,
			b.ServiceName,
			b.ServicePrice,
			b.DepositAmount,
			b.DepositPaid,
			b.TotalAmount,
			b.BalancePaid,
			b.ClientHasNotification,
			b.StylistHasNotification,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListByUser получает бронирования, в которых пользователь участвует
// как клиент или как владелец профиля стилиста. Сортировка по start_at.
// По умолчанию отдаётся полная история, включая отклонённые и отменённые
func (r *Repository) ListByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"client_id": filter.UserID},
			squirrel.Expr("stylist_id IN (SELECT id FROM stylists WHERE user_id = ?)", filter.UserID),
		}).
		OrderBy("start_at ASC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		builder = builder.Where(squirrel.Eq{"status": domain.ActiveStatuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOverlapping получает активные бронирования стилиста, пересекающиеся
// с интервалом [startAt, endAt). Граничащие интервалы пересечением не считаются
func (r *Repository) ListOverlapping(ctx context.Context, stylistID uuid.UUID, startAt, endAt time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"stylist_id": stylistID}).
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		Where(squirrel.Lt{"start_at": endAt}).
		Where(squirrel.Gt{"end_at": startAt}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// respondedAt проставляется для ответов стилиста (confirmed/declined),
// notifyClient/notifyStylist поднимают флаг уведомления соответствующей стороне
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.BookingStatus,
	respondedAt *time.Time,
	notifyClient, notifyStylist bool,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if respondedAt != nil {
		builder = builder.Set("responded_at", *respondedAt)
	}
	if notifyClient {
		builder = builder.Set("client_has_notification", true)
	}
	if notifyStylist {
		builder = builder.Set("stylist_has_notification", true)
	}

	return r.execExpectingRow(ctx, executor, builder, "UpdateStatus")
}

// SetRescheduleProposal сохраняет предложение о переносе
func (r *Repository) SetRescheduleProposal(
	ctx context.Context,
	id uuid.UUID,
	proposal *domain.RescheduleProposal,
	notifyClient, notifyStylist bool,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("reschedule_start_at", proposal.ProposedStartAt).
		Set("reschedule_end_at", proposal.ProposedEndAt).
		Set("reschedule_proposed_by", proposal.ProposedBy).
		Set("reschedule_created_at", proposal.CreatedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if notifyClient {
		builder = builder.Set("client_has_notification", true)
	}
	if notifyStylist {
		builder = builder.Set("stylist_has_notification", true)
	}

	return r.execExpectingRow(ctx, executor, builder, "SetRescheduleProposal")
}

// ResolveReschedule снимает предложение о переносе
// При accept применяет предложенный интервал к start_at/end_at
func (r *Repository) ResolveReschedule(
	ctx context.Context,
	id uuid.UUID,
	newStartAt, newEndAt *time.Time,
	notifyClient, notifyStylist bool,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("reschedule_start_at", nil).
		Set("reschedule_end_at", nil).
		Set("reschedule_proposed_by", nil).
		Set("reschedule_created_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if newStartAt != nil && newEndAt != nil {
		builder = builder.
			Set("start_at", *newStartAt).
			Set("end_at", *newEndAt)
	}
	if notifyClient {
		builder = builder.Set("client_has_notification", true)
	}
	if notifyStylist {
		builder = builder.Set("stylist_has_notification", true)
	}

	return r.execExpectingRow(ctx, executor, builder, "ResolveReschedule")
}

// ClearNotification сбрасывает флаг уведомления одной из сторон
func (r *Repository) ClearNotification(ctx context.Context, id uuid.UUID, clientSide bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column := "stylist_has_notification"
	if clientSide {
		column = "client_has_notification"
	}

	builder := psqlbuilder.Update("bookings").
		Set(column, false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.execExpectingRow(ctx, executor, builder, "ClearNotification")
}

// SetReviewID привязывает отзыв к бронированию
func (r *Repository) SetReviewID(ctx context.Context, id uuid.UUID, reviewID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("bookings").
		Set("review_id", reviewID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.execExpectingRow(ctx, executor, builder, "SetReviewID")
}

// CompleteElapsed переводит подтверждённые бронирования с прошедшим end_at
// в статус service_complete и поднимает клиенту флаг уведомления.
// Возвращает количество обновлённых строк
func (r *Repository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusServiceComplete).
		Set("client_has_notification", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"end_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, builder squirrel.UpdateBuilder, op string) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var b domain.Booking
	var respondedAt, lastMessageAt, createdAt, updatedAt sql.NullTime
	var reschedStartAt, reschedEndAt, reschedCreatedAt sql.NullTime
	var reschedProposedBy uuid.NullUUID
	var reviewID uuid.NullUUID

	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.StylistID,
		&b.ServiceID,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.RequestedAt,
		&respondedAt,
		&b.LocationType,
		&b.MobileLocationNote,
		&b.ClientName,
		&b.StylistName,
		&b.ServiceName,
		&b.ServicePrice,
		&b.DepositAmount,
		&b.DepositPaid,
		&b.TotalAmount,
		&b.BalancePaid,
		&reschedStartAt,
		&reschedEndAt,
		&reschedProposedBy,
		&reschedCreatedAt,
		&reviewID,
		&b.ClientHasNotification,
		&b.StylistHasNotification,
		&lastMessageAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if respondedAt.Valid {
		b.RespondedAt = &respondedAt.Time
	}
	if lastMessageAt.Valid {
		b.LastMessageAt = &lastMessageAt.Time
	}
	if reviewID.Valid {
		id := reviewID.UUID
		b.ReviewID = &id
	}
	if reschedStartAt.Valid && reschedEndAt.Valid && reschedProposedBy.Valid {
		b.RescheduleProposal = &domain.RescheduleProposal{
			ProposedStartAt: reschedStartAt.Time,
			ProposedEndAt:   reschedEndAt.Time,
			ProposedBy:      reschedProposedBy.UUID,
			CreatedAt:       reschedCreatedAt.Time,
		}
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var respondedAt, lastMessageAt, createdAt, updatedAt sql.NullTime
		var reschedStartAt, reschedEndAt, reschedCreatedAt sql.NullTime
		var reschedProposedBy uuid.NullUUID
		var reviewID uuid.NullUUID

		err := rows.Scan(
			&b.ID,
			&b.ClientID,
			&b.StylistID,
			&b.ServiceID,
			&b.StartAt,
			&b.EndAt,
			&b.Status,
			&b.RequestedAt,
			&respondedAt,
			&b.LocationType,
			&b.MobileLocationNote,
			&b.ClientName,
			&b.StylistName,
			&b.ServiceName,
			&b.ServicePrice,
			&b.DepositAmount,
			&b.DepositPaid,
			&b.TotalAmount,
			&b.BalancePaid,
			&reschedStartAt,
			&reschedEndAt,
			&reschedProposedBy,
			&reschedCreatedAt,
			&reviewID,
			&b.ClientHasNotification,
			&b.StylistHasNotification,
			&lastMessageAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking row: %v", ErrScanRow, err)
		}

		if respondedAt.Valid {
			b.RespondedAt = &respondedAt.Time
		}
		if lastMessageAt.Valid {
			b.LastMessageAt = &lastMessageAt.Time
		}
		if reviewID.Valid {
			id := reviewID.UUID
			b.ReviewID = &id
		}
		if reschedStartAt.Valid && reschedEndAt.Valid && reschedProposedBy.Valid {
			b.RescheduleProposal = &domain.RescheduleProposal{
				ProposedStartAt: reschedStartAt.Time,
				ProposedEndAt:   reschedEndAt.Time,
				ProposedBy:      reschedProposedBy.UUID,
				CreatedAt:       reschedCreatedAt.Time,
			}
		}
		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate booking rows: %v", ErrExecQuery, err)
	}

	return bookings, nil
}
