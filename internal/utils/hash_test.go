package utils

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if hash == "secret" {
		t.Fatal("хеш совпадает с исходным паролем")
	}
	if !CheckPasswordHash("secret", hash) {
		t.Fatal("пароль не прошёл проверку против собственного хеша")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("чужой пароль прошёл проверку")
	}
}

func TestHashPassword_SaltIsRandom(t *testing.T) {
	h1, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	h2, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("ошибка хеширования: %v", err)
	}
	if h1 == h2 {
		t.Fatal("два хеша одного пароля совпали — соль не рандомизируется")
	}
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	if CheckPasswordHash("secret", "не-bcrypt-хеш") {
		t.Fatal("мусорный хеш прошёл проверку")
	}
}
