package unit

import (
	"context"
	"testing"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/security"
	"brickvest-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "alice@example.com").Return(nil, domain.ErrUserNotFound)
		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
		tokens.On("GenerateAccessToken", mock.AnythingOfType("uuid.UUID"), "alice@example.com", domain.UserRoleMember).Return("access", nil)
		tokens.On("GenerateRefreshToken", mock.AnythingOfType("uuid.UUID"), "alice@example.com").Return("refresh", nil)

		user, access, refresh, err := svc.Signup(ctx, "Alice", "Alice@Example.com ", "hunter2hunter2")
		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, domain.UserRoleMember, user.Role)
		assert.Equal(t, "access", access)
		assert.Equal(t, "refresh", refresh)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")))
	})

	t.Run("EmailTaken", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "alice@example.com").Return(&domain.User{Email: "alice@example.com"}, nil)

		_, _, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, service.ErrEmailTaken)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		_, _, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "short")
		assert.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("error hashing password: %v", err)
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		Name:         "Alice",
		Role:         domain.UserRoleMember,
	}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)
		tokens.On("GenerateAccessToken", user.ID, user.Email, user.Role).Return("access", nil)
		tokens.On("GenerateRefreshToken", user.ID, user.Email).Return("refresh", nil)

		access, refresh, err := svc.Login(ctx, "alice@example.com", "hunter2hunter2")
		assert.NoError(t, err)
		assert.Equal(t, "access", access)
		assert.Equal(t, "refresh", refresh)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "alice@example.com").Return(user, nil)

		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		users.On("GetByEmail", ctx, "bob@example.com").Return(nil, domain.ErrUserNotFound)

		_, _, err := svc.Login(ctx, "bob@example.com", "hunter2hunter2")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &domain.User{ID: userID, Email: "alice@example.com", Role: domain.UserRoleAdmin}

	t.Run("Success", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		claims := &security.UserClaims{UserID: userID, Email: user.Email, Type: security.TokenTypeRefresh}
		tokens.On("ValidateToken", "old-refresh").Return(claims, nil)
		users.On("GetByID", ctx, userID).Return(user, nil)
		tokens.On("GenerateAccessToken", userID, user.Email, domain.UserRoleAdmin).Return("access", nil)
		tokens.On("GenerateRefreshToken", userID, user.Email).Return("refresh", nil)

		access, refresh, err := svc.RefreshToken(ctx, "old-refresh")
		assert.NoError(t, err)
		assert.Equal(t, "access", access)
		assert.Equal(t, "refresh", refresh)
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		claims := &security.UserClaims{UserID: userID, Type: security.TokenTypeAccess}
		tokens.On("ValidateToken", "access-token").Return(claims, nil)

		_, _, err := svc.RefreshToken(ctx, "access-token")
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		users := new(MockUserRepo)
		tokens := new(MockTokenManager)
		svc := service.NewAuthService(users, tokens)

		tokens.On("ValidateToken", "garbage").Return(nil, security.ErrInvalidToken)

		_, _, err := svc.RefreshToken(ctx, "garbage")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
