package services

import (
	"context"

	"userhub/internal/logger"
	"userhub/internal/models"
	"userhub/internal/repository"
	"userhub/internal/utils"

	"go.uber.org/zap"
)

// UserCollection — обобщённый CRUD-контракт коллекции пользователей.
type UserCollection interface {
	FindUsers(ctx context.Context, opts repository.QueryOptions) ([]*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUserByID(ctx context.Context, id string, input *models.UpdateUserRequest) (bool, error)
	DeleteUserByID(ctx context.Context, id string) (bool, error)
	CountUsers(ctx context.Context, filter map[string]string) (int64, error)
	ExistsUsers(ctx context.Context, filter map[string]string) (bool, error)
	DistinctEmails(ctx context.Context, filter map[string]string) ([]string, error)
}

// UserService — тонкая CRUD-прослойка над коллекцией пользователей.
type UserService struct {
	repo UserCollection
}

func NewUserService(repo UserCollection) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) ListUsers(ctx context.Context, opts repository.QueryOptions) ([]*models.User, error) {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	return s.repo.FindUsers(ctx, opts)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.WithCtx(ctx).Warn("Пользователь не найден по ID (service)", zap.String("user_id", id), zap.Error(err))
	}
	return user, err
}

// CreateUser создаёт пользователя напрямую (админский CRUD). Правила те же,
// что и у регистрации: email уникален, в базу попадает только хеш пароля.
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание пользователя (service)", zap.String("email", email))

	exists, err := s.repo.IsEmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		log.Error("Ошибка создания пользователя (service)", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, input *models.UpdateUserRequest) error {
	log := logger.WithCtx(ctx)
	log.Info("Обновление пользователя (service)", zap.String("user_id", id))

	found, err := s.repo.UpdateUserByID(ctx, id, input)
	if err != nil {
		log.Error("Ошибка при обновлении пользователя (service)", zap.Error(err), zap.String("user_id", id))
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление пользователя (service)", zap.String("user_id", id))

	found, err := s.repo.DeleteUserByID(ctx, id)
	if err != nil {
		log.Error("Ошибка удаления пользователя (service)", zap.Error(err), zap.String("user_id", id))
		return err
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) CountUsers(ctx context.Context, filter map[string]string) (int64, error) {
	return s.repo.CountUsers(ctx, filter)
}

func (s *UserService) UserExists(ctx context.Context, filter map[string]string) (bool, error) {
	return s.repo.ExistsUsers(ctx, filter)
}

func (s *UserService) DistinctEmails(ctx context.Context, filter map[string]string) ([]string, error) {
	return s.repo.DistinctEmails(ctx, filter)
}
