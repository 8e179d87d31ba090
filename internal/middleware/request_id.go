package middleware

import (
	"net/http"

	"userhub/internal/reqctx"

	"github.com/google/uuid"
)

// RequestID присваивает каждому запросу uuid (или берёт его из X-Request-ID)
// и дублирует в ответ.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)

		ctx := reqctx.WithRequestID(r.Context(), rid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
