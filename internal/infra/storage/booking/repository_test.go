package booking

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strandly/booking-service/internal/domain"
	"github.com/strandly/booking-service/pkg/ptr"
)

// errCaptured прерывает выполнение после построения запроса: тесты ниже
// проверяют сам SQL, а не работу с базой
var errCaptured = errors.New("query captured")

type captureExecutor struct {
	query string
	args  []interface{}
}

func (e *captureExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	panic("ExecContext not expected")
}

func (e *captureExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query = query
	e.args = args
	return nil, errCaptured
}

func (e *captureExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	panic("QueryRowContext not expected")
}

func TestListByUser_DefaultReturnsAllStatuses(t *testing.T) {
	executor := &captureExecutor{}
	repo := NewRepository(executor)

	_, err := repo.ListByUser(context.Background(), domain.UserBookingsFilter{
		UserID: uuid.New(),
	})
	require.ErrorIs(t, err, ErrExecQuery)

	// Полная история: никакой фильтрации по статусу по умолчанию
	// (колонка status в SELECT остаётся, поэтому проверяем формы WHERE)
	assert.NotContains(t, executor.query, "status IN")
	assert.NotContains(t, executor.query, "status = ")
	assert.Contains(t, executor.query, "ORDER BY start_at ASC")
}

func TestListByUser_ActiveOnlyNarrows(t *testing.T) {
	executor := &captureExecutor{}
	repo := NewRepository(executor)

	_, err := repo.ListByUser(context.Background(), domain.UserBookingsFilter{
		UserID:     uuid.New(),
		ActiveOnly: true,
	})
	require.ErrorIs(t, err, ErrExecQuery)

	assert.Contains(t, executor.query, "status IN")
	for _, status := range domain.ActiveStatuses {
		assert.Contains(t, executor.args, status)
	}
}

func TestListByUser_StatusFilterNarrows(t *testing.T) {
	executor := &captureExecutor{}
	repo := NewRepository(executor)

	_, err := repo.ListByUser(context.Background(), domain.UserBookingsFilter{
		UserID: uuid.New(),
		Status: ptr.Ptr(domain.StatusDeclined),
	})
	require.ErrorIs(t, err, ErrExecQuery)

	assert.True(t, strings.Contains(executor.query, "status = "))
	assert.Contains(t, executor.args, domain.StatusDeclined)
}
