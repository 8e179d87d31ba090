package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"userhub/internal/models"
	"userhub/internal/reqctx"
	"userhub/internal/services"
)

// Мок-репозиторий для прогона хендлеров без БД
type mockUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	nextID  int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, exists := m.byEmail[email]
	return exists, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return m.byID[id], nil
}

func (m *mockUserRepo) UpdateUserPassword(_ context.Context, userID string, passwordHash string) error {
	u, ok := m.byID[userID]
	if !ok {
		return fmt.Errorf("пользователь %s не найден", userID)
	}
	u.PasswordHash = passwordHash
	return nil
}

type nopDelivery struct{}

func (nopDelivery) SendPasswordReset(context.Context, string, string) error { return nil }

func newTestHandlers() (*AuthHandler, *PasswordHandler) {
	repo := newMockUserRepo()
	svc := services.NewAuthService(repo, services.NewResetTokenStore(time.Hour), nopDelivery{}, "test-secret", 15*time.Minute)
	return NewAuthHandler(svc), NewPasswordHandler(svc)
}

func doJSON(handler http.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSignupHandler(t *testing.T) {
	authH, _ := newTestHandlers()

	rec := doJSON(authH.Signup, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Alice", "email": "a@x.com", "password": "pw1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ожидался 201, получен %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			User  *models.PublicUser `json:"user"`
			Token string             `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("невалидный JSON ответа: %v", err)
	}
	if resp.Data.User == nil || resp.Data.User.Email != "a@x.com" || resp.Data.Token == "" {
		t.Fatalf("в ответе нет пользователя или токена: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("в ответе регистрации торчит что-то парольное: %s", rec.Body.String())
	}

	// Дубликат email — 400
	rec = doJSON(authH.Signup, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Bob", "email": "a@x.com", "password": "pw2"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("дубликат email: ожидался 400, получен %d", rec.Code)
	}
}

func TestLoginHandler(t *testing.T) {
	authH, _ := newTestHandlers()

	doJSON(authH.Signup, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Alice", "email": "a@x.com", "password": "pw1"})

	rec := doJSON(authH.Login, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "a@x.com", "password": "wrong"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("неверный пароль: ожидался 400, получен %d", rec.Code)
	}

	rec = doJSON(authH.Login, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "a@x.com", "password": "pw1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("валидный вход: ожидался 200, получен %d: %s", rec.Code, rec.Body.String())
	}
}

func TestForgotAndResetHandlers(t *testing.T) {
	authH, pwH := newTestHandlers()

	doJSON(authH.Signup, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Alice", "email": "a@x.com", "password": "pw1"})

	// Неизвестный email — 404
	rec := doJSON(pwH.Forgot, http.MethodPost, "/api/auth/forgot-password",
		map[string]string{"email": "nobody@x.com"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("неизвестный email: ожидался 404, получен %d", rec.Code)
	}

	rec = doJSON(pwH.Forgot, http.MethodPost, "/api/auth/forgot-password",
		map[string]string{"email": "a@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200 с токеном, получен %d", rec.Code)
	}

	var resp struct {
		Data struct {
			ResetToken string `json:"reset_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Data.ResetToken == "" {
		t.Fatalf("в ответе нет токена сброса: %s", rec.Body.String())
	}

	// Сброс с валидным токеном — 200
	rec = doJSON(pwH.Reset, http.MethodPost, "/api/auth/reset-password",
		map[string]string{"token": resp.Data.ResetToken, "new_password": "pw3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("сброс пароля: ожидался 200, получен %d: %s", rec.Code, rec.Body.String())
	}

	// Повторный сброс тем же токеном — 400
	rec = doJSON(pwH.Reset, http.MethodPost, "/api/auth/reset-password",
		map[string]string{"token": resp.Data.ResetToken, "new_password": "pw4"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("повторный сброс: ожидался 400, получен %d", rec.Code)
	}

	// Новый пароль действует
	rec = doJSON(authH.Login, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "a@x.com", "password": "pw3"})
	if rec.Code != http.StatusOK {
		t.Fatalf("вход с новым паролем: ожидался 200, получен %d", rec.Code)
	}
}

func TestUpdatePasswordHandler(t *testing.T) {
	authH, pwH := newTestHandlers()

	rec := doJSON(authH.Signup, http.MethodPost, "/api/auth/signup",
		map[string]string{"name": "Alice", "email": "a@x.com", "password": "pw1"})
	var resp struct {
		Data struct {
			User *models.PublicUser `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Data.User == nil {
		t.Fatalf("регистрация не вернула пользователя: %s", rec.Body.String())
	}

	do := func(userID, oldPw, newPw string) *httptest.ResponseRecorder {
		b, _ := json.Marshal(map[string]string{"old_password": oldPw, "new_password": newPw})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/update-password", bytes.NewReader(b))
		if userID != "" {
			req = req.WithContext(reqctx.WithUserID(req.Context(), userID))
		}
		r := httptest.NewRecorder()
		pwH.Update(r, req)
		return r
	}

	if code := do("", "pw1", "pw2").Code; code != http.StatusUnauthorized {
		t.Fatalf("без сессии: ожидался 401, получен %d", code)
	}
	if code := do("user-nope", "pw1", "pw2").Code; code != http.StatusNotFound {
		t.Fatalf("неизвестный пользователь: ожидался 404, получен %d", code)
	}
	if code := do(resp.Data.User.ID, "wrong", "pw2").Code; code != http.StatusBadRequest {
		t.Fatalf("неверный старый пароль: ожидался 400, получен %d", code)
	}
	if code := do(resp.Data.User.ID, "pw1", "pw1").Code; code != http.StatusBadRequest {
		t.Fatalf("тот же пароль: ожидался 400, получен %d", code)
	}
	if code := do(resp.Data.User.ID, "pw1", "pw2").Code; code != http.StatusOK {
		t.Fatalf("смена пароля: ожидался 200, получен %d", code)
	}
}

func TestResetHandler_InvalidPayload(t *testing.T) {
	_, pwH := newTestHandlers()

	rec := doJSON(pwH.Reset, http.MethodPost, "/api/auth/reset-password",
		map[string]string{"token": "", "new_password": "pw"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("пустой токен: ожидался 400, получен %d", rec.Code)
	}
}
