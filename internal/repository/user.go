package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"userhub/internal/logger"
	"userhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// QueryOptions — обобщённые параметры выборки по коллекции пользователей:
// фильтр по полям, сортировка, limit/offset.
type QueryOptions struct {
	Filter  map[string]string
	SortBy  string
	SortAsc bool
	Limit   int
	Offset  int
}

// Колонки, по которым разрешены фильтр и сортировка. Всё остальное игнорируем,
// чтобы произвольный query-параметр не попал в SQL.
var allowedColumns = map[string]bool{
	"name":  true,
	"email": true,
}

var allowedSort = map[string]bool{
	"name":       true,
	"email":      true,
	"created_at": true,
}

func (o QueryOptions) whereClause(argNum *int) (string, []interface{}) {
	var conds []string
	var args []interface{}
	for field, value := range o.Filter {
		if !allowedColumns[field] {
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", field, *argNum))
		args = append(args, value)
		*argNum++
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.Log.Info("Создание пользователя (repo)", zap.String("email", user.Email))
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
	INSERT INTO users (id, name, email, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		logger.Log.Error("Ошибка создания пользователя (repo)", zap.Error(err))
	}
	return err
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	logger.Log.Debug("Проверка email на уникальность (repo)", zap.String("email", email))
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		logger.Log.Error("Ошибка проверки email (repo)", zap.Error(err))
	}
	return exists, err
}

// GetUserByEmail возвращает (nil, nil), если пользователя с таким email нет.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по email (repo)", zap.String("email", email))
	query := `SELECT id, name, email, password_hash, created_at, updated_at
	FROM users
	WHERE email = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по email (repo)", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// GetUserByID возвращает (nil, nil), если пользователя с таким id нет.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	logger.Log.Debug("Получение пользователя по ID (repo)", zap.String("user_id", id))
	query := `SELECT id, name, email, password_hash, created_at, updated_at
	FROM users
	WHERE id = $1`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log.Error("Ошибка получения пользователя по ID (repo)", zap.String("user_id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindUsers(ctx context.Context, opts QueryOptions) ([]*models.User, error) {
	logger.Log.Debug("Выборка пользователей (repo)", zap.Int("limit", opts.Limit), zap.Int("offset", opts.Offset))

	query := `SELECT id, name, email, password_hash, created_at, updated_at FROM users`
	argNum := 1
	where, args := opts.whereClause(&argNum)
	query += where

	sortBy := opts.SortBy
	if !allowedSort[sortBy] {
		sortBy = "created_at"
	}
	dir := "DESC"
	if opts.SortAsc {
		dir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, dir)

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, opts.Limit)
		argNum++
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, opts.Offset)
		argNum++
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка выборки пользователей (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			logger.Log.Error("Ошибка сканирования пользователя (repo)", zap.Error(err))
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// UpdateUserByID обновляет только переданные поля. Возвращает false, если
// пользователя с таким id нет.
func (r *UserRepository) UpdateUserByID(ctx context.Context, id string, input *models.UpdateUserRequest) (bool, error) {
	logger.Log.Info("Обновление пользователя (repo)", zap.String("user_id", id))
	query := `UPDATE users SET`
	var args []interface{}
	argNum := 1

	if input.Name != nil {
		query += fmt.Sprintf(" name = $%d,", argNum)
		args = append(args, *input.Name)
		argNum++
	}
	if input.Email != nil {
		query += fmt.Sprintf(" email = $%d,", argNum)
		args = append(args, *input.Email)
		argNum++
	}

	if len(args) == 0 {
		logger.Log.Warn("Нет полей для обновления пользователя (repo)", zap.String("user_id", id))
		// Пустой PATCH — проверим только существование
		return r.ExistsByID(ctx, id)
	}

	query += fmt.Sprintf(" updated_at = now() WHERE id = $%d", argNum)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка обновления пользователя (repo)", zap.Error(err), zap.String("user_id", id))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteUserByID возвращает false, если пользователя с таким id нет.
func (r *UserRepository) DeleteUserByID(ctx context.Context, id string) (bool, error) {
	logger.Log.Info("Удаление пользователя (repo)", zap.String("user_id", id))
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Log.Error("Ошибка удаления пользователя (repo)", zap.Error(err), zap.String("user_id", id))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepository) CountUsers(ctx context.Context, filter map[string]string) (int64, error) {
	query := `SELECT count(*) FROM users`
	argNum := 1
	where, args := QueryOptions{Filter: filter}.whereClause(&argNum)
	query += where

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		logger.Log.Error("Ошибка подсчёта пользователей (repo)", zap.Error(err))
	}
	return count, err
}

func (r *UserRepository) ExistsUsers(ctx context.Context, filter map[string]string) (bool, error) {
	query := `SELECT 1 FROM users`
	argNum := 1
	where, args := QueryOptions{Filter: filter}.whereClause(&argNum)
	query += where + ` LIMIT 1`

	var one int
	err := r.db.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.Log.Error("Ошибка проверки существования пользователей (repo)", zap.Error(err))
		return false, err
	}
	return true, nil
}

func (r *UserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *UserRepository) DistinctEmails(ctx context.Context, filter map[string]string) ([]string, error) {
	query := `SELECT DISTINCT email FROM users`
	argNum := 1
	where, args := QueryOptions{Filter: filter}.whereClause(&argNum)
	query += where + ` ORDER BY email`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Log.Error("Ошибка выборки distinct email (repo)", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

// UpdateUserPassword заменяет хеш пароля и обновляет updated_at.
func (r *UserRepository) UpdateUserPassword(ctx context.Context, userID string, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		logger.Log.Error("Ошибка обновления пароля пользователя (repo)", zap.Error(err), zap.String("user_id", userID))
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("пользователь %s не найден", userID)
	}
	return nil
}
