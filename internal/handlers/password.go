package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"userhub/internal/logger"
	"userhub/internal/reqctx"
	"userhub/internal/services"
	helpers "userhub/internal/utils/helpers"

	"go.uber.org/zap"
)

type PasswordHandler struct {
	authService *services.AuthService
}

func NewPasswordHandler(authService *services.AuthService) *PasswordHandler {
	return &PasswordHandler{authService: authService}
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type forgotResponse struct {
	// Токен возвращается напрямую, пока не подключён внешний канал доставки
	ResetToken string `json:"reset_token"`
}

type resetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Update godoc
// @Summary Смена пароля (авторизованный пользователь)
// @Tags password
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body updatePasswordRequest true "Старый и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 400 {string} string "Старый пароль не совпадает или новый совпадает с текущим"
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/auth/update-password [post]
func (h *PasswordHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	userID, ok := reqctx.GetUserID(r.Context())
	if !ok || userID == "" {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		log.Warn("Невалидный payload в Update")
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	err := h.authService.UpdatePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		helpers.JSON(w, http.StatusOK, map[string]string{"message": "Пароль изменён."})
	case errors.Is(err, services.ErrUserNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrOldPasswordIncorrect), errors.Is(err, services.ErrSamePassword):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("Не удалось сменить пароль", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// Forgot godoc
// @Summary Запрос токена сброса пароля
// @Tags password
// @Accept json
// @Produce json
// @Param input body forgotRequest true "Email пользователя"
// @Success 200 {object} forgotResponse
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/auth/forgot-password [post]
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		log.Warn("Невалидный payload в Forgot")
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	token, err := h.authService.ForgotPassword(r.Context(), req.Email)
	switch {
	case err == nil:
		helpers.JSON(w, http.StatusOK, forgotResponse{ResetToken: token})
	case errors.Is(err, services.ErrUserNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Error("Сбой при запросе восстановления пароля", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// Reset godoc
// @Summary Сброс пароля по одноразовому токену
// @Tags password
// @Accept json
// @Produce json
// @Param input body resetRequest true "Токен и новый пароль"
// @Success 200 {object} map[string]string
// @Failure 400 {string} string "Неверный или просроченный токен"
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/auth/reset-password [post]
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" || req.NewPassword == "" {
		log.Warn("Невалидный payload в Reset")
		helpers.Error(w, http.StatusBadRequest, "invalid payload")
		return
	}

	err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword)
	switch {
	case err == nil:
		helpers.JSON(w, http.StatusOK, map[string]string{"message": "Пароль сброшен."})
	case errors.Is(err, services.ErrInvalidOrExpiredToken):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Error("Не удалось сбросить пароль по токену", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
