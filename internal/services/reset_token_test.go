package services

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestResetTokenStore_ConsumeOnce(t *testing.T) {
	store := NewResetTokenStore(time.Hour)

	token, err := store.IssueFor("user-1")
	if err != nil {
		t.Fatalf("ошибка выдачи токена: %v", err)
	}
	if len(token) != 64 { // 32 байта в hex
		t.Fatalf("ожидался токен из 64 hex-символов, получено %d", len(token))
	}

	userID, err := store.Consume(token)
	if err != nil {
		t.Fatalf("ошибка изъятия токена: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("ожидался user-1, получен %q", userID)
	}

	if _, err := store.Consume(token); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("повторное изъятие должно давать ErrTokenNotFound, получено %v", err)
	}
}

func TestResetTokenStore_TokensAreUnique(t *testing.T) {
	store := NewResetTokenStore(time.Hour)

	t1, _ := store.IssueFor("user-1")
	t2, _ := store.IssueFor("user-1")
	if t1 == t2 {
		t.Fatal("два выданных токена совпали")
	}
	if store.Len() != 2 {
		t.Fatalf("ожидалось 2 живых токена, получено %d", store.Len())
	}
}

func TestResetTokenStore_Expired(t *testing.T) {
	store := NewResetTokenStore(10 * time.Millisecond)

	token, _ := store.IssueFor("user-1")
	time.Sleep(30 * time.Millisecond)

	if _, err := store.Consume(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("просроченный токен должен давать ErrTokenExpired, получено %v", err)
	}

	// Просроченная запись изъята: второй заход — уже not found
	if _, err := store.Consume(token); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("после просроченного изъятия ожидался ErrTokenNotFound, получено %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("просроченная запись осталась в хранилище")
	}
}

func TestResetTokenStore_NotFound(t *testing.T) {
	store := NewResetTokenStore(time.Hour)

	if _, err := store.Consume("никогда не выдавался"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("ожидался ErrTokenNotFound, получено %v", err)
	}
}

// Из N конкурентных Consume одного токена успеть должен ровно один.
func TestResetTokenStore_ConcurrentConsume(t *testing.T) {
	store := NewResetTokenStore(time.Hour)
	token, _ := store.IssueFor("user-1")

	const goroutines = 50
	var wg sync.WaitGroup
	results := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Consume(token)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, notFound int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrTokenNotFound):
			notFound++
		default:
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	if ok != 1 {
		t.Fatalf("токен изъят %d раз, должен ровно один", ok)
	}
	if notFound != goroutines-1 {
		t.Fatalf("ожидалось %d отказов ErrTokenNotFound, получено %d", goroutines-1, notFound)
	}
}
