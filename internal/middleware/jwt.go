package middleware

import (
	"net/http"
	"strings"

	"userhub/internal/logger"
	"userhub/internal/reqctx"
	"userhub/internal/utils"

	"go.uber.org/zap"
)

// JWTAuth проверяет Bearer-токен и кладёт user_id в контекст запроса.
// Секрет подписи загружается один раз при старте и сюда передаётся готовым.
func JWTAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				http.Error(w, "Отсутствует access token", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := utils.ParseToken(jwtSecret, tokenString)
			if err != nil {
				// Просроченный и поддельный токены отвечают одинаково
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен", zap.Error(err))
				http.Error(w, "Неверный или просроченный токен", http.StatusUnauthorized)
				return
			}

			ctx := reqctx.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
