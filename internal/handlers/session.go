package handlers

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const userIDKey contextKey = "userID"

// DefaultUserID используется, когда запрос пришёл без идентификации
const DefaultUserID = 1

// SessionMiddleware определяет текущего пользователя по cookie или заголовку
// и кладёт его ID в контекст запроса
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := DefaultUserID

		if header := r.Header.Get("X-User-ID"); header != "" {
			if id, err := strconv.Atoi(header); err == nil && id > 0 {
				userID = id
			}
		} else if cookie, err := r.Cookie("finance_user"); err == nil {
			if id, err := strconv.Atoi(cookie.Value); err == nil && id > 0 {
				userID = id
			}
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUserID возвращает ID пользователя из контекста запроса
func CurrentUserID(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return DefaultUserID
}
