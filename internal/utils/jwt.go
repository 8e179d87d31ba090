package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken — единый класс отказа: подделка, мусор и просроченный токен
// снаружи неразличимы, чтобы не подсказывать атакующему причину.
var ErrInvalidToken = errors.New("неверный или просроченный токен")

// GenerateToken создаёт подписанный сессионный JWT с user_id и сроком жизни.
func GenerateToken(secret string, userID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(), // issued at — доп. уникальность
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок жизни, возвращает user_id из claims.
func ParseToken(secret, tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
