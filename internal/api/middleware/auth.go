package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth требует заголовок X-User-ID с ID сотрудника
// Аутентификация как таковая живет снаружи сервиса; здесь только
// извлечение актора для createdBy
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "некорректный X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает ID сотрудника, положенный middleware Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
