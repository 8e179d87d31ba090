package utils

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword хеширует пароль bcrypt-ом (соль генерируется на каждый вызов).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash сравнивает пароль с хешем. Несовпадение — это false, а не ошибка.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
