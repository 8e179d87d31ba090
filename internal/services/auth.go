package services

import (
	"context"
	"errors"
	"time"

	"userhub/internal/logger"
	"userhub/internal/models"
	"userhub/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrEmailAlreadyExists    = errors.New("адрес электронной почты уже зарегистрирован")
	ErrInvalidCredentials    = errors.New("неверный email или пароль")
	ErrUserNotFound          = errors.New("пользователь не найден")
	ErrOldPasswordIncorrect  = errors.New("старый пароль не совпадает")
	ErrSamePassword          = errors.New("новый пароль совпадает с текущим")
	ErrInvalidOrExpiredToken = errors.New("неверный или просроченный токен сброса")
)

type UserRepo interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID string, passwordHash string) error
}

// AuthService — воркфлоу аутентификации: регистрация, вход, смена и сброс пароля.
//
// Сессионные токены stateless: logout и смена пароля не отзывают уже выданные
// токены — они живут до истечения exp.
type AuthService struct {
	repo        UserRepo
	resetTokens *ResetTokenStore
	delivery    ResetDelivery
	jwtSecret   string
	sessionTTL  time.Duration
}

func NewAuthService(repo UserRepo, resetTokens *ResetTokenStore, delivery ResetDelivery, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		repo:        repo,
		resetTokens: resetTokens,
		delivery:    delivery,
		jwtSecret:   jwtSecret,
		sessionTTL:  sessionTTL,
	}
}

// Signup регистрирует пользователя и сразу выдаёт сессионный токен.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*models.User, string, error) {
	log := logger.WithCtx(ctx)
	log.Info("Регистрация пользователя (service)", zap.String("email", email))

	exists, err := s.repo.IsEmailTaken(ctx, email)
	if err != nil {
		log.Error("Ошибка проверки email", zap.Error(err))
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Error("Ошибка хеширования пароля", zap.Error(err))
		return nil, "", err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		log.Error("Ошибка создания пользователя", zap.Error(err))
		return nil, "", err
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, s.sessionTTL)
	if err != nil {
		log.Error("Ошибка генерации сессионного токена", zap.Error(err))
		return nil, "", err
	}

	log.Info("Пользователь зарегистрирован (service)", zap.String("user_id", user.ID))
	return user, token, nil
}

// Login проверяет учётные данные и выдаёт сессионный токен. Неизвестный email
// и неверный пароль снаружи неразличимы — обе ветки дают ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	log := logger.WithCtx(ctx)
	log.Info("Попытка входа (service)", zap.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		log.Error("Ошибка поиска пользователя по email", zap.Error(err))
		return nil, "", err
	}
	if user == nil {
		log.Warn("Пользователь не найден при входе (service)", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		log.Warn("Неверный пароль (service)", zap.String("user_id", user.ID))
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, s.sessionTTL)
	if err != nil {
		log.Error("Ошибка генерации сессионного токена", zap.Error(err))
		return nil, "", err
	}

	log.Info("Вход выполнен (service)", zap.String("user_id", user.ID))
	return user, token, nil
}

// Logout ничего не отзывает (stateless-токен живёт до exp) — фиксируем только
// момент выхода, клиент обязан забыть токен сам.
func (s *AuthService) Logout(ctx context.Context, userID string) time.Time {
	logger.WithCtx(ctx).Info("Выход пользователя (service)", zap.String("user_id", userID))
	return time.Now().UTC()
}

// UpdatePassword меняет пароль авторизованного пользователя по старому паролю.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	log := logger.WithCtx(ctx)
	log.Info("Смена пароля (service)", zap.String("user_id", userID))

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		log.Error("Ошибка получения пользователя при смене пароля", zap.Error(err))
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		log.Warn("Старый пароль не совпадает (service)", zap.String("user_id", userID))
		return ErrOldPasswordIncorrect
	}

	// Смена пароля на самого себя — это no-op, отклоняем
	if utils.CheckPasswordHash(newPassword, user.PasswordHash) {
		return ErrSamePassword
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Error("Ошибка генерации нового хеша пароля", zap.Error(err))
		return err
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, newHash); err != nil {
		log.Error("Ошибка обновления пароля пользователя", zap.Error(err))
		return err
	}

	log.Info("Пароль успешно изменён", zap.String("user_id", userID))
	return nil
}

// ForgotPassword выдаёт одноразовый токен сброса. Токен возвращается вызывающему
// (временно, пока нет полноценного канала доставки) и параллельно уходит письмом.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	log := logger.WithCtx(ctx)
	log.Info("Запрос на сброс пароля", zap.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		log.Error("Ошибка поиска пользователя при запросе сброса", zap.Error(err))
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	token, err := s.resetTokens.IssueFor(user.ID)
	if err != nil {
		log.Error("Ошибка генерации токена сброса", zap.Error(err), zap.String("user_id", user.ID))
		return "", err
	}

	// Доставка не должна ронять запрос: токен уже выдан
	if err := s.delivery.SendPasswordReset(ctx, user.Email, token); err != nil {
		log.Error("Ошибка отправки письма для сброса пароля", zap.Error(err), zap.String("user_id", user.ID))
	}

	log.Info("Токен сброса пароля выдан", zap.String("user_id", user.ID))
	return token, nil
}

// ResetPassword подтверждает токен и устанавливает новый пароль. Токен изымается
// до обновления пароля: повтор с тем же токеном не пройдёт, даже если сама
// запись пароля упала.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	log := logger.WithCtx(ctx)
	log.Info("Попытка сброса пароля по токену")

	userID, err := s.resetTokens.Consume(token)
	if err != nil {
		log.Warn("Неверный или просроченный токен при сбросе пароля", zap.Error(err))
		return ErrInvalidOrExpiredToken
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		log.Error("Ошибка получения пользователя при сбросе пароля", zap.Error(err))
		return err
	}
	if user == nil {
		log.Warn("Пользователь из токена сброса больше не существует", zap.String("user_id", userID))
		return ErrUserNotFound
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Error("Ошибка генерации хеша пароля", zap.Error(err), zap.String("user_id", userID))
		return err
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, newHash); err != nil {
		log.Error("Ошибка обновления пароля пользователя", zap.Error(err), zap.String("user_id", userID))
		return err
	}

	log.Info("Пароль успешно сброшен", zap.String("user_id", userID))
	return nil
}
