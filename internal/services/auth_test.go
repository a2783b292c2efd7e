package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tuning-portal/internal/dto"
	"tuning-portal/internal/entities"
	apperrors "tuning-portal/pkg/errors"
	"tuning-portal/pkg/service"
)

func newAuthFixture(t *testing.T) (AuthServiceInterface, service.JWTService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUserRepo{users: map[string]entities.User{
		"client-1": {
			ID: "client-1", Email: "client@exemple.fr", Role: entities.RoleClient,
			PasswordHash: string(hash), IsActive: true,
		},
		"inactive-1": {
			ID: "inactive-1", Email: "parti@exemple.fr", Role: entities.RoleClient,
			PasswordHash: string(hash), IsActive: false,
		},
	}}
	jwtSvc := service.NewJWTService("test-secret", time.Minute, time.Hour)
	return NewAuthService(users, jwtSvc, zap.NewNop()), jwtSvc
}

func TestLoginIssuesTokens(t *testing.T) {
	auth, jwtSvc := newAuthFixture(t)

	tokens, err := auth.Login(context.Background(), dto.LoginDTO{
		Email: "client@exemple.fr", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", tokens.TokenType)

	claims, err := jwtSvc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims.UserID)
	assert.Equal(t, entities.RoleClient, claims.Role)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := jwtSvc.ValidateToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Login(ctx, dto.LoginDTO{Email: "client@exemple.fr", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = auth.Login(ctx, dto.LoginDTO{Email: "inconnu@exemple.fr", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = auth.Login(ctx, dto.LoginDTO{Email: "parti@exemple.fr", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
