package services_test

import (
	"io"
	"log"
	"os"
	"testing"
	"time"

	"storeup/internal/models"
	"storeup/internal/repositories"
	"storeup/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret)
}

func registerMerchant(t *testing.T, svc *services.AuthService, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	}
	assert.NoError(t, svc.RegisterUser(user))
	return user
}

func TestRegisterMerchantHashesPassword(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := newAuthService(repo)

	user := registerMerchant(t, svc, "alice")
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password123", user.Password)

	stored, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestRegisterMerchantRejectsDuplicates(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := newAuthService(repo)
	registerMerchant(t, svc, "alice")

	sameUsername := &models.User{Username: "alice", Email: "other@example.com", Password: "pw12345"}
	err := svc.RegisterUser(sameUsername)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")

	sameEmail := &models.User{Username: "alice2", Email: "alice@example.com", Password: "pw12345"}
	err = svc.RegisterUser(sameEmail)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLoginIssuesTokenWithMerchantClaims(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := newAuthService(repo)
	user := registerMerchant(t, svc, "alice")

	token, err := svc.LoginUser("alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	exp, ok := claims["exp"].(float64)
	assert.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := newAuthService(repo)
	registerMerchant(t, svc, "alice")

	_, err := svc.LoginUser("alice", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestGetMerchantStripsPasswordHash(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := newAuthService(repo)
	user := registerMerchant(t, svc, "alice")

	merchant, err := svc.GetMerchant(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, merchant.ID)
	assert.Empty(t, merchant.Password)

	_, err = svc.GetMerchant("missing-id")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateTokenRejectsBadTokens(t *testing.T) {
	svc := newAuthService(repositories.NewMockUserRepository())

	_, err := svc.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, signErr := expired.SignedString([]byte(testJWTSecret))
	assert.NoError(t, signErr)
	_, err = svc.ValidateToken(expiredString)
	assert.Error(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	foreignString, signErr := foreign.SignedString([]byte("another-secret"))
	assert.NoError(t, signErr)
	_, err = svc.ValidateToken(foreignString)
	assert.Error(t, err)
}
