package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilia-retail/concilia-api/internal/domain/entity"
	"github.com/concilia-retail/concilia-api/pkg/apperror"
	"github.com/concilia-retail/concilia-api/pkg/oauth"
	"github.com/concilia-retail/concilia-api/pkg/utils"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	repo := &fakeUserRepo{}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(repo, jwtManager), repo
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()

	_, err := svc.Register(ctx, &RegisterInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Password: "s3nha-forte",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		out, err := svc.Login(ctx, &LoginInput{Email: "maria@example.com", Password: "s3nha-forte"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)
		assert.NotEmpty(t, out.RefreshToken)
		assert.Equal(t, "maria@example.com", out.User.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{Email: "maria@example.com", Password: "errada"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginInput{Email: "ninguem@example.com", Password: "s3nha-forte"})
		assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the operator role", func(t *testing.T) {
		svc, _ := newAuthFixture()
		user, err := svc.Register(ctx, &RegisterInput{
			Name:     "Maria",
			Email:    "maria@example.com",
			Password: "s3nha-forte",
			Role:     "superuser",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleOperador, user.Role)
		assert.Equal(t, "local", user.Provider)
		assert.NotEqual(t, "s3nha-forte", user.Password)
	})

	t.Run("admin role is honored", func(t *testing.T) {
		svc, _ := newAuthFixture()
		user, err := svc.Register(ctx, &RegisterInput{
			Name:     "Chefe",
			Email:    "chefe@example.com",
			Password: "s3nha-forte",
			Role:     entity.RoleAdmin,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, user.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newAuthFixture()
		_, err := svc.Register(ctx, &RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "x12345678"})
		require.NoError(t, err)
		_, err = svc.Register(ctx, &RegisterInput{Name: "Outra", Email: "maria@example.com", Password: "y12345678"})
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture()

	_, err := svc.Register(ctx, &RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "s3nha-forte"})
	require.NoError(t, err)
	out, err := svc.Login(ctx, &LoginInput{Email: "maria@example.com", Password: "s3nha-forte"})
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Equal(t, out.User.ID, refreshed.User.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-token")
		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()
	info := &oauth.GoogleUserInfo{
		ID:    "google-123",
		Email: "maria@example.com",
		Name:  "Maria",
	}

	t.Run("creates an operator on first login", func(t *testing.T) {
		svc, repo := newAuthFixture()
		out, err := svc.LoginWithGoogle(ctx, info)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleOperador, out.User.Role)
		assert.Equal(t, "google", out.User.Provider)
		assert.Len(t, repo.users, 1)
	})

	t.Run("links an existing local account by email", func(t *testing.T) {
		svc, repo := newAuthFixture()
		_, err := svc.Register(ctx, &RegisterInput{Name: "Maria", Email: "maria@example.com", Password: "s3nha-forte"})
		require.NoError(t, err)

		out, err := svc.LoginWithGoogle(ctx, info)
		require.NoError(t, err)
		assert.Equal(t, "google", out.User.Provider)
		require.NotNil(t, out.User.ProviderID)
		assert.Equal(t, "google-123", *out.User.ProviderID)
		assert.Len(t, repo.users, 1)
	})

	t.Run("subsequent logins find the linked account", func(t *testing.T) {
		svc, repo := newAuthFixture()
		first, err := svc.LoginWithGoogle(ctx, info)
		require.NoError(t, err)

		second, err := svc.LoginWithGoogle(ctx, info)
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, second.User.ID)
		assert.Len(t, repo.users, 1)
	})
}
