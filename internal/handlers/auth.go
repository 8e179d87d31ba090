package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"userhub/internal/logger"
	"userhub/internal/models"
	"userhub/internal/reqctx"
	"userhub/internal/services"
	helpers "userhub/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *models.PublicUser `json:"user"`
	Token string             `json:"token"`
}

type logoutResponse struct {
	LogoutAt time.Time `json:"logout_at"`
}

// Signup godoc
// @Summary Регистрация нового пользователя
// @Tags auth
// @Accept json
// @Produce json
// @Param input body signupRequest true "Данные регистрации"
// @Success 201 {object} sessionResponse
// @Failure 400 {string} string "Email уже зарегистрирован"
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Ошибка декодирования JSON в Signup", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		helpers.Error(w, http.StatusBadRequest, "email и password обязательны")
		return
	}

	user, token, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Ошибка регистрации пользователя", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	helpers.JSON(w, http.StatusCreated, sessionResponse{User: user.Public(), Token: token})
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Данные для входа"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "Неверный email или пароль"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Ошибка декодирования JSON в Login", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Ошибка входа", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	helpers.JSON(w, http.StatusOK, sessionResponse{User: user.Public(), Token: token})
}

// Logout godoc
// @Summary Выход (клиент забывает токен)
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} logoutResponse
// @Failure 401 {string} string "Нет валидной сессии"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := reqctx.GetUserID(r.Context())
	if !ok || userID == "" {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	logoutAt := h.authService.Logout(r.Context(), userID)
	helpers.JSON(w, http.StatusOK, logoutResponse{LogoutAt: logoutAt})
}
