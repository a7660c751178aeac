package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/database"
	"ecommerce-backend/internal/logger"
	"ecommerce-backend/internal/mail"
	"ecommerce-backend/internal/user/model"
	"ecommerce-backend/internal/user/repository"
	appErrors "ecommerce-backend/pkg/errors"
	"ecommerce-backend/pkg/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret-key-at-least-32-chars"

type fakeDispatcher struct {
	messages []mail.Message
	fail     bool
}

func (f *fakeDispatcher) Enqueue(_ context.Context, msg mail.Message) error {
	if f.fail {
		return errors.New("queue unavailable")
	}
	f.messages = append(f.messages, msg)
	return nil
}

func newTestService(t *testing.T) (*UserService, *fakeDispatcher, *gorm.DB) {
	t.Helper()

	if logger.Logger == nil {
		if err := logger.Init("development"); err != nil {
			t.Fatalf("failed to init logger: %v", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: testSecret, ExpiryHours: 1},
		Cookie: config.CookieConfig{Name: "token", ExpireDays: 5},
	}

	dispatcher := &fakeDispatcher{}
	repo := repository.NewRepository(&database.Database{DB: db})

	return NewService(repo, dispatcher, cfg), dispatcher, db
}

func registerTestUser(t *testing.T, svc *UserService, email string) *model.AuthResponse {
	t.Helper()

	auth, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "alice",
		Email:    email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return auth
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered := registerTestUser(t, svc, "alice@example.com")

	auth, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if auth.User.ID != registered.User.ID {
		t.Errorf("login resolved to user %v, want %v", auth.User.ID, registered.User.ID)
	}

	// The issued token must resolve back to the same identity.
	claims, err := utils.ValidateToken(auth.Token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != registered.User.ID {
		t.Errorf("token resolved to %v, want %v", claims.UserID, registered.User.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	registerTestUser(t, svc, "alice@example.com")

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "other alice",
		Email:    "alice@example.com",
		Password: "password456",
	})
	if !errors.Is(err, appErrors.ErrUserAlreadyExists) {
		t.Errorf("Register() error = %v, want ErrUserAlreadyExists", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "short",
	})

	var appErr *appErrors.AppError
	if !errors.As(err, &appErr) {
		t.Errorf("Register() error = %v, want validation AppError", err)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registerTestUser(t, svc, "alice@example.com")

	tests := []struct {
		name    string
		request model.LoginRequest
	}{
		{"wrong password", model.LoginRequest{Email: "alice@example.com", Password: "wrong-password"}},
		{"unknown email", model.LoginRequest{Email: "bob@example.com", Password: "password123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &tt.request)
			if !errors.Is(err, appErrors.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestForgotPassword_ResetRoundTrip(t *testing.T) {
	svc, dispatcher, db := newTestService(t)
	ctx := context.Background()

	registered := registerTestUser(t, svc, "alice@example.com")

	err := svc.ForgotPassword(ctx, &model.ForgotPasswordRequest{Email: "alice@example.com"}, "http://example.com")
	if err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}

	if len(dispatcher.messages) != 1 {
		t.Fatalf("got %d queued messages, want 1", len(dispatcher.messages))
	}

	var stored model.User
	if err := db.First(&stored, "id = ?", registered.User.ID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if stored.ResetPasswordToken == nil || stored.ResetPasswordExpiry == nil {
		t.Fatal("reset token fields were not persisted")
	}

	// The mail body carries the plaintext token; only its hash is stored.
	body := dispatcher.messages[0].Body
	marker := "/password/reset/"
	idx := strings.Index(body, marker)
	if idx < 0 {
		t.Fatalf("mail body %q does not contain reset link", body)
	}
	token := strings.Fields(body[idx+len(marker):])[0]

	if token == *stored.ResetPasswordToken {
		t.Error("plaintext token must not be stored directly")
	}
	if utils.HashResetToken(token) != *stored.ResetPasswordToken {
		t.Error("stored value is not the hash of the delivered token")
	}

	auth, err := svc.ResetPassword(ctx, token, &model.ResetPasswordRequest{
		Password:        "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}
	if auth.User.ID != registered.User.ID {
		t.Errorf("reset resolved to %v, want %v", auth.User.ID, registered.User.ID)
	}

	if _, err := svc.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "brand-new-pass"}); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}

	// The token is single use.
	if _, err := svc.ResetPassword(ctx, token, &model.ResetPasswordRequest{
		Password:        "yet-another-pass",
		ConfirmPassword: "yet-another-pass",
	}); !errors.Is(err, appErrors.ErrResetTokenInvalid) {
		t.Errorf("second ResetPassword() error = %v, want ErrResetTokenInvalid", err)
	}
}

func TestForgotPassword_DispatchFailureRollsBack(t *testing.T) {
	svc, dispatcher, db := newTestService(t)
	ctx := context.Background()

	registered := registerTestUser(t, svc, "alice@example.com")
	dispatcher.fail = true

	err := svc.ForgotPassword(ctx, &model.ForgotPasswordRequest{Email: "alice@example.com"}, "http://example.com")
	if !errors.Is(err, appErrors.ErrMailDispatchFailed) {
		t.Fatalf("ForgotPassword() error = %v, want ErrMailDispatchFailed", err)
	}

	var stored model.User
	if err := db.First(&stored, "id = ?", registered.User.ID).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if stored.ResetPasswordToken != nil || stored.ResetPasswordExpiry != nil {
		t.Error("reset token fields must be cleared when dispatch fails")
	}
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	svc, _, db := newTestService(t)
	ctx := context.Background()

	registered := registerTestUser(t, svc, "alice@example.com")

	plaintext, hashed, _, err := utils.GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}

	expired := time.Now().Add(-time.Minute)
	err = db.Model(&model.User{}).Where("id = ?", registered.User.ID).Updates(map[string]interface{}{
		"reset_password_token":  hashed,
		"reset_password_expiry": expired,
	}).Error
	if err != nil {
		t.Fatalf("failed to seed expired token: %v", err)
	}

	_, err = svc.ResetPassword(ctx, plaintext, &model.ResetPasswordRequest{
		Password:        "brand-new-pass",
		ConfirmPassword: "brand-new-pass",
	})
	if !errors.Is(err, appErrors.ErrResetTokenInvalid) {
		t.Errorf("ResetPassword() error = %v, want ErrResetTokenInvalid", err)
	}
}

func TestResetPassword_ConfirmMismatch(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ResetPassword(context.Background(), "whatever", &model.ResetPasswordRequest{
		Password:        "brand-new-pass",
		ConfirmPassword: "different-pass",
	})
	if !errors.Is(err, appErrors.ErrPasswordMismatch) {
		t.Errorf("ResetPassword() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered := registerTestUser(t, svc, "alice@example.com")

	_, err := svc.ChangePassword(ctx, registered.User.ID, &model.ChangePasswordRequest{
		OldPassword:     "wrong-password",
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-1",
	})
	if !errors.Is(err, appErrors.ErrInvalidCredentials) {
		t.Fatalf("ChangePassword() with wrong old password error = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.ChangePassword(ctx, registered.User.ID, &model.ChangePasswordRequest{
		OldPassword:     "password123",
		NewPassword:     "new-password-1",
		ConfirmPassword: "new-password-1",
	})
	if err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "new-password-1"}); err != nil {
		t.Errorf("Login() with changed password error = %v", err)
	}
}
