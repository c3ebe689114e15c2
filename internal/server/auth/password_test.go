package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "hunter2" || strings.Contains(hash, "hunter2") {
		t.Fatalf("hash must not contain the plaintext: %q", hash)
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !CheckPassword(hash, "correct horse") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Fatalf("expected mismatching password to fail")
	}
	if CheckPassword("not-a-hash", "anything") {
		t.Fatalf("expected malformed hash to fail")
	}
}
