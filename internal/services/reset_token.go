package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrTokenNotFound = errors.New("токен сброса не найден")
	ErrTokenExpired  = errors.New("токен сброса истёк")
)

type resetEntry struct {
	userID    string
	expiresAt time.Time
}

// ResetTokenStore — одноразовые токены сброса пароля, живущие в памяти процесса.
// Хранилище инжектируется в AuthService явно, а не лежит глобально: так его можно
// изолировать в тестах и при необходимости заменить на внешнее.
//
// Просроченные записи не выметаются фоном — срок перепроверяется при каждом
// Consume, а объём таких токенов мал.
type ResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetEntry
	ttl    time.Duration
}

func NewResetTokenStore(ttl time.Duration) *ResetTokenStore {
	return &ResetTokenStore{
		tokens: make(map[string]resetEntry),
		ttl:    ttl,
	}
}

// IssueFor генерирует криптостойкий токен (256 бит) и запоминает его за пользователем.
func (s *ResetTokenStore) IssueFor(userID string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	s.mu.Lock()
	s.tokens[token] = resetEntry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return token, nil
}

// Consume атомарно изымает токен: из двух конкурентных вызовов пользователя
// получит ровно один, второй увидит ErrTokenNotFound. Просроченный токен
// удаляется и возвращает ErrTokenExpired.
func (s *ResetTokenStore) Consume(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return "", ErrTokenNotFound
	}
	delete(s.tokens, token)

	if time.Now().After(entry.expiresAt) {
		return "", ErrTokenExpired
	}
	return entry.userID, nil
}

// Len — количество живых записей (для тестов).
func (s *ResetTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
