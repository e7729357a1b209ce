package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusbridge/portal-api/internal/models"
	"github.com/campusbridge/portal-api/pkg/config"
)

func signTestToken(t *testing.T, secret, issuer string, role models.UserRole) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthServiceValidateToken(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "secret", Issuer: "campusbridge"}, zap.NewNop())

	claims, err := svc.ValidateToken(signTestToken(t, "secret", "campusbridge", models.RoleStudent))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "secret"}, zap.NewNop())

	_, err := svc.ValidateToken(signTestToken(t, "other-secret", "", models.RoleStudent))
	require.Error(t, err)
}

func TestAuthServiceValidateTokenWrongIssuer(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "secret", Issuer: "campusbridge"}, zap.NewNop())

	_, err := svc.ValidateToken(signTestToken(t, "secret", "somewhere-else", models.RoleStudent))
	require.Error(t, err)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(config.JWTConfig{Secret: "secret"}, zap.NewNop())

	claims := &models.JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}
