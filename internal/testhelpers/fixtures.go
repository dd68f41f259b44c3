package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pantrykeep/backend/internal/models"
	"github.com/pantrykeep/backend/internal/service"
	"github.com/pantrykeep/backend/internal/types"
)

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// CreateTestUser inserts a user with the given password and returns it
func CreateTestUser(t *testing.T, db *gorm.DB, password string) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	userID := uuid.New()
	user := &models.User{
		ID:           userID,
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", userID),
		PasswordHash: string(hashed),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	profile := &models.UserProfile{
		ID:       uuid.New(),
		UserID:   userID,
		Username: fmt.Sprintf("testuser_%s", userID),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}

	return user
}

// AuthToken returns a valid token for the user signed with TestJWTSecret
func AuthToken(t *testing.T, db *gorm.DB, email, password string) string {
	auth := service.NewAuthService(db, TestJWTSecret)
	token, err := auth.Login(email, password)
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}
	return token
}

// MockTokenValidator satisfies middleware.TokenValidator with canned
// claims, so handler tests skip real JWT verification.
type MockTokenValidator struct {
	Claims *types.TokenClaims
	Error  error
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Claims, nil
}
