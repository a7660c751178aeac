package utils

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	passwords := []string{
		"password123",
		"a longer passphrase with spaces",
		"пароль-unicode",
	}

	for _, password := range passwords {
		hash, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword(%q) error = %v", password, err)
		}

		if hash == password {
			t.Errorf("HashPassword(%q) returned the plaintext", password)
		}

		if !CheckPassword(hash, password) {
			t.Errorf("CheckPassword() = false for matching password %q", password)
		}

		if CheckPassword(hash, password+"x") {
			t.Errorf("CheckPassword() = true for non-matching password")
		}
	}
}

func TestHashPassword_DistinctHashes(t *testing.T) {
	// bcrypt salts every hash, so two hashes of the same input must differ.
	first, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("expected salted hashes to differ between invocations")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "password1", false},
		{"exactly eight", "12345678", false},
		{"too short", "1234567", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
