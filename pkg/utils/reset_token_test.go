package utils

import (
	"testing"
	"time"
)

func TestGenerateResetToken(t *testing.T) {
	plaintext, hashed, expiresAt, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}

	if plaintext == "" || hashed == "" {
		t.Fatal("GenerateResetToken() returned empty token")
	}
	if plaintext == hashed {
		t.Error("plaintext and hash must differ")
	}

	if got := HashResetToken(plaintext); got != hashed {
		t.Errorf("HashResetToken(plaintext) = %q, want %q", got, hashed)
	}

	window := time.Until(expiresAt)
	if window < 14*time.Minute || window > 16*time.Minute {
		t.Errorf("expiry window = %v, want about 15 minutes", window)
	}
}

func TestGenerateResetToken_Unique(t *testing.T) {
	first, _, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}
	second, _, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}

	if first == second {
		t.Error("consecutive reset tokens must not repeat")
	}
}

func TestHashResetToken_Deterministic(t *testing.T) {
	if HashResetToken("abc") != HashResetToken("abc") {
		t.Error("hash is not deterministic")
	}
	if HashResetToken("abc") == HashResetToken("abd") {
		t.Error("distinct tokens must not collide")
	}
}
