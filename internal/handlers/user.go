package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"userhub/internal/logger"
	"userhub/internal/models"
	"userhub/internal/repository"
	"userhub/internal/services"
	helpers "userhub/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// filterFromQuery собирает фильтр по полям из query-параметров.
// Служебные параметры (limit/offset/sort/order) фильтром не считаются.
func filterFromQuery(q url.Values) map[string]string {
	filter := make(map[string]string)
	for key, vals := range q {
		switch key {
		case "limit", "offset", "sort", "order":
			continue
		}
		if len(vals) > 0 {
			filter[key] = vals[0]
		}
	}
	return filter
}

// List godoc
// @Summary Список пользователей (фильтры через query)
// @Tags users
// @Produce json
// @Param limit query int false "Лимит (по умолчанию 10)"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.PublicUser
// @Router /api/users/all-user [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := repository.QueryOptions{
		Filter: filterFromQuery(q),
		SortBy: q.Get("sort"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		opts.Offset = v
	}
	if strings.EqualFold(q.Get("order"), "asc") {
		opts.SortAsc = true
	}

	users, err := h.userService.ListUsers(r.Context(), opts)
	if err != nil {
		logger.WithCtx(r.Context()).Error("Ошибка получения списка пользователей", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	public := make([]*models.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	helpers.JSON(w, http.StatusOK, public)
}

// Get godoc
// @Summary Пользователь по ID
// @Tags users
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} models.PublicUser
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/users/single-user/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}
	if user == nil {
		helpers.Error(w, http.StatusNotFound, "пользователь не найден")
		return
	}
	helpers.JSON(w, http.StatusOK, user.Public())
}

// Create godoc
// @Summary Создание пользователя (без выдачи сессии)
// @Tags users
// @Accept json
// @Produce json
// @Param input body createUserRequest true "Данные пользователя"
// @Success 201 {object} models.PublicUser
// @Failure 400 {string} string "Невалидные данные или email занят"
// @Router /api/users/create-user [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Ошибка декодирования JSON в Create", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		helpers.Error(w, http.StatusBadRequest, "email и password обязательны")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Ошибка создания пользователя", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	helpers.JSON(w, http.StatusCreated, user.Public())
}

// Update godoc
// @Summary Частичное обновление пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param input body models.UpdateUserRequest true "Обновляемые поля"
// @Success 200 {object} map[string]string
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/users/update-user/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id := mux.Vars(r)["id"]

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Ошибка декодирования JSON в Update", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	err := h.userService.UpdateUser(r.Context(), id, &req)
	switch {
	case err == nil:
		helpers.JSON(w, http.StatusOK, map[string]string{"message": "Пользователь обновлён."})
	case errors.Is(err, services.ErrUserNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Error("Ошибка обновления пользователя", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// Delete godoc
// @Summary Удаление пользователя
// @Tags users
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} map[string]string
// @Failure 404 {string} string "Пользователь не найден"
// @Router /api/users/delete-user/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id := mux.Vars(r)["id"]

	err := h.userService.DeleteUser(r.Context(), id)
	switch {
	case err == nil:
		helpers.JSON(w, http.StatusOK, map[string]string{"message": "Пользователь удалён."})
	case errors.Is(err, services.ErrUserNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	default:
		log.Error("Ошибка удаления пользователя", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// Count godoc
// @Summary Количество пользователей по фильтру
// @Tags users
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /api/users/count [get]
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.userService.CountUsers(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]int64{"count": count})
}

// Exists godoc
// @Summary Есть ли пользователи по фильтру
// @Tags users
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/users/exists [get]
func (h *UserHandler) Exists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.userService.UserExists(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// DistinctEmails godoc
// @Summary Уникальные email по фильтру
// @Tags users
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/users/distinct-emails [get]
func (h *UserHandler) DistinctEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.userService.DistinctEmails(r.Context(), filterFromQuery(r.URL.Query()))
	if err != nil {
		helpers.Error(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}
	helpers.JSON(w, http.StatusOK, map[string][]string{"emails": emails})
}
