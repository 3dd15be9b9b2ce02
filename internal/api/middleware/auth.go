package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fp-experiences/booking-service/internal/api/handlers"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// HeaderUserID заголовок аутентификации шлюза
// Шлюз проверяет токен и пробрасывает ID аутентифицированного
// пользователя; сервис доверяет заголовку внутри периметра
const HeaderUserID = "X-User-ID"

// Auth middleware аутентификации по заголовку X-User-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID извлекает ID пользователя из контекста запроса
// Возвращает 0, если запрос не проходил через Auth
func UserID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}
