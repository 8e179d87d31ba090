package services

import (
	"context"
	"fmt"
	"testing"

	"userhub/internal/models"
	"userhub/internal/repository"
)

// Мок-коллекция для CRUD-сервиса
type mockCollection struct {
	byID     map[string]*models.User
	nextID   int
	lastOpts repository.QueryOptions
}

func newMockCollection() *mockCollection {
	return &mockCollection{byID: make(map[string]*models.User)}
}

func (m *mockCollection) FindUsers(_ context.Context, opts repository.QueryOptions) ([]*models.User, error) {
	m.lastOpts = opts
	var users []*models.User
	for _, u := range m.byID {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockCollection) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return m.byID[id], nil
}

func (m *mockCollection) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCollection) CreateUser(_ context.Context, user *models.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	m.byID[user.ID] = user
	return nil
}

func (m *mockCollection) UpdateUserByID(_ context.Context, id string, input *models.UpdateUserRequest) (bool, error) {
	u, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Email != nil {
		u.Email = *input.Email
	}
	return true, nil
}

func (m *mockCollection) DeleteUserByID(_ context.Context, id string) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *mockCollection) CountUsers(_ context.Context, _ map[string]string) (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *mockCollection) ExistsUsers(_ context.Context, _ map[string]string) (bool, error) {
	return len(m.byID) > 0, nil
}

func (m *mockCollection) DistinctEmails(_ context.Context, _ map[string]string) ([]string, error) {
	seen := make(map[string]struct{})
	var emails []string
	for _, u := range m.byID {
		if _, ok := seen[u.Email]; !ok {
			seen[u.Email] = struct{}{}
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}

func TestUserService_ListDefaultLimit(t *testing.T) {
	repo := newMockCollection()
	svc := NewUserService(repo)

	if _, err := svc.ListUsers(context.Background(), repository.QueryOptions{}); err != nil {
		t.Fatalf("ошибка выборки: %v", err)
	}
	if repo.lastOpts.Limit != 10 {
		t.Fatalf("лимит по умолчанию должен быть 10, получен %d", repo.lastOpts.Limit)
	}
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	repo := newMockCollection()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "Alice", "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "pw1" {
		t.Fatal("в коллекцию должен попадать хеш, а не пароль")
	}

	if _, err := svc.CreateUser(ctx, "Bob", "a@x.com", "pw2"); err != ErrEmailAlreadyExists {
		t.Fatalf("дубликат email: ожидался ErrEmailAlreadyExists, получено %v", err)
	}
}

func TestUserService_UpdateDeleteNotFound(t *testing.T) {
	repo := newMockCollection()
	svc := NewUserService(repo)
	ctx := context.Background()

	name := "Alice"
	if err := svc.UpdateUser(ctx, "user-nope", &models.UpdateUserRequest{Name: &name}); err != ErrUserNotFound {
		t.Fatalf("обновление несуществующего: ожидался ErrUserNotFound, получено %v", err)
	}
	if err := svc.DeleteUser(ctx, "user-nope"); err != ErrUserNotFound {
		t.Fatalf("удаление несуществующего: ожидался ErrUserNotFound, получено %v", err)
	}

	user, _ := svc.CreateUser(ctx, "Alice", "a@x.com", "pw1")
	newName := "Alice Updated"
	if err := svc.UpdateUser(ctx, user.ID, &models.UpdateUserRequest{Name: &newName}); err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}
	if repo.byID[user.ID].Name != "Alice Updated" {
		t.Fatal("имя не обновилось")
	}
	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
}
