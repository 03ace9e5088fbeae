package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDHeader заголовок с ID аутентифицированного пользователя.
// Заголовок проставляет API gateway после проверки токена
const UserIDHeader = "X-User-ID"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает ID пользователя из заголовка и кладет его в контекст запроса.
// Запросы без валидного заголовка отклоняются с 401
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, UserIDHeader)
				handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				logger.Warn("%s %s - Invalid %s header: %v", r.Method, r.URL.Path, UserIDHeader, err)
				handlers.RespondUnauthorized(w, "некорректный ID пользователя")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}
