package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/database"
	"ecommerce-backend/internal/user/model"
	"ecommerce-backend/internal/user/repository"
	"ecommerce-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret-key-at-least-32-chars"

func newAuthTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	users := repository.NewRepository(&database.Database{DB: db})

	router := gin.New()
	router.GET("/protected", AuthMiddleware(cfg, users), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	router.GET("/admin", AuthMiddleware(cfg, users), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, db, cfg
}

func seedUser(t *testing.T, db *gorm.DB, role string) *model.User {
	t.Helper()

	user := &model.User{
		ID:       uuid.New(),
		Name:     "alice",
		Email:    role + "@example.com",
		Password: "irrelevant-hash",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_ValidCookie(t *testing.T) {
	router, db, cfg := newAuthTestRouter(t)
	user := seedUser(t, db, model.RoleUser)

	token, err := utils.GenerateToken(user.ID, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	router, db, cfg := newAuthTestRouter(t)
	user := seedUser(t, db, model.RoleUser)

	token, err := utils.GenerateToken(user.ID, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router, db, cfg := newAuthTestRouter(t)
	user := seedUser(t, db, model.RoleUser)

	claims := &utils.Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	router, db, cfg := newAuthTestRouter(t)
	user := seedUser(t, db, model.RoleUser)

	token, err := utils.GenerateToken(user.ID, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// A token is only proof of identity while the account still exists.
	if err := db.Delete(&model.User{}, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: token})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"regular user is rejected", model.RoleUser, http.StatusForbidden},
		{"admin is allowed", model.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, db, cfg := newAuthTestRouter(t)
			user := seedUser(t, db, tt.role)

			token, err := utils.GenerateToken(user.ID, cfg.JWT.Secret, cfg.JWT.ExpiryHours)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.AddCookie(&http.Cookie{Name: cfg.Cookie.Name, Value: token})
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
