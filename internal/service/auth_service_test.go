package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"finmov/internal/auth"
	"finmov/internal/model"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register(t *testing.T) {
	jwts := auth.NewJWTService("test-secret")

	t.Run("new accounts start as USER", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)
		svc := NewAuthService(userRepo, jwts, tokenStore)

		userRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "new@example.com" && u.Role == model.RoleUser && u.PasswordHash != "password123"
		})).Return(nil)

		user, err := svc.Register(context.Background(), "new@example.com", "password123", "New User")

		assert.NoError(t, err)
		assert.Equal(t, model.RoleUser, user.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)
		svc := NewAuthService(userRepo, jwts, tokenStore)

		userRepo.On("FindByEmail", mock.Anything, "taken@example.com").
			Return(&model.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

		_, err := svc.Register(context.Background(), "taken@example.com", "password123", "Someone")

		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		userRepo.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Login(t *testing.T) {
	jwts := auth.NewJWTService("test-secret")

	t.Run("unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, jwts, new(MockTokenStore))

		userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewAuthService(userRepo, jwts, new(MockTokenStore))

		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
			ID:           uuid.New(),
			Email:        "ada@example.com",
			PasswordHash: hashPassword(t, "correct-password"),
		}, nil)

		_, _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success issues tokens carrying the role", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)
		svc := NewAuthService(userRepo, jwts, tokenStore)

		user := &model.User{
			ID:           uuid.New(),
			Name:         "Ada",
			Email:        "ada@example.com",
			PasswordHash: hashPassword(t, "correct-password"),
			Role:         model.RoleAdmin,
		}
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		tokenStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), user.ID.String(), user.Email, auth.RefreshTokenExpiry).Return(nil)

		accessToken, refreshToken, got, err := svc.Login(context.Background(), "ada@example.com", "correct-password")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.ID, got.ID)

		claims, err := jwts.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, claims.Role)
		tokenStore.AssertExpectations(t)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwts := auth.NewJWTService("test-secret")

	t.Run("garbage token rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwts, new(MockTokenStore))

		_, err := svc.RefreshToken(context.Background(), "not-a-token")

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("revoked token rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)
		svc := NewAuthService(userRepo, jwts, tokenStore)

		user := &model.User{ID: uuid.New(), Email: "ada@example.com", Role: model.RoleUser}
		tokenID, refreshToken, err := jwts.GenerateRefreshToken(user)
		assert.NoError(t, err)

		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return("", "", assert.AnError)

		_, err = svc.RefreshToken(context.Background(), refreshToken)

		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("new access token reflects a role change", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		tokenStore := new(MockTokenStore)
		svc := NewAuthService(userRepo, jwts, tokenStore)

		user := &model.User{ID: uuid.New(), Email: "uma@example.com", Role: model.RoleUser}
		tokenID, refreshToken, err := jwts.GenerateRefreshToken(user)
		assert.NoError(t, err)

		tokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(user.ID.String(), user.Email, nil)

		// Promoted since the refresh token was issued.
		promoted := *user
		promoted.Role = model.RoleAdmin
		userRepo.On("FindByID", mock.Anything, user.ID).Return(&promoted, nil)

		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		claims, err := jwts.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwts := auth.NewJWTService("test-secret")

	t.Run("deletes refresh and blacklists access token", func(t *testing.T) {
		tokenStore := new(MockTokenStore)
		svc := NewAuthService(new(MockUserRepository), jwts, tokenStore)

		user := &model.User{ID: uuid.New(), Email: "ada@example.com", Role: model.RoleAdmin}
		tokenID, refreshToken, err := jwts.GenerateRefreshToken(user)
		assert.NoError(t, err)
		accessToken, err := jwts.GenerateAccessToken(user)
		assert.NoError(t, err)

		tokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		tokenStore.On("BlacklistAccessToken", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

		assert.NoError(t, svc.Logout(context.Background(), refreshToken, accessToken))
		tokenStore.AssertExpectations(t)
	})

	t.Run("invalid refresh token rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwts, new(MockTokenStore))

		assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-token", ""), ErrInvalidRefreshToken)
	})
}
