package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErrors "ecommerce-backend/pkg/errors"
)

const testSecret = "test-secret-key-at-least-32-chars"

func TestGenerateToken_RoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, testSecret, 1)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, userID)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), testSecret, 1)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	_, err = ValidateToken(token, "another-secret")
	if !errors.Is(err, appErrors.ErrTokenInvalid) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := ValidateToken(token, testSecret); !errors.Is(err, appErrors.ErrTokenInvalid) {
			t.Errorf("ValidateToken(%q) error = %v, want ErrTokenInvalid", token, err)
		}
	}
}

func TestValidateToken_Expired(t *testing.T) {
	now := time.Now()
	claims := &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	_, err = ValidateToken(token, testSecret)
	if !errors.Is(err, appErrors.ErrTokenExpired) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	// An unsigned token must never pass verification.
	claims := &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ValidateToken(token, testSecret); !errors.Is(err, appErrors.ErrTokenInvalid) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenInvalid", err)
	}
}
