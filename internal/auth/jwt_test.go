package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ouveo-backend/internal/config"
	"ouveo-backend/internal/models"
)

func testManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "ouveo-backend"
	return NewJWTManager(cfg)
}

func TestTokenRoundTrip(t *testing.T) {
	m := testManager()
	user := &models.User{
		ID:    7,
		Name:  "Marie Dupont",
		Email: "marie@example.com",
		Role:  models.RoleArtisan,
	}

	token, err := m.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "marie@example.com", claims.Email)
	assert.Equal(t, models.RoleArtisan, claims.Role)
	assert.Equal(t, "ouveo-backend", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := testManager()

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = m.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testManager().GenerateToken(&models.User{ID: 1, Role: models.RoleClient})
	require.NoError(t, err)

	other := &config.Config{}
	other.JWT.Secret = "different-secret"
	other.JWT.ExpirationHours = 1

	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}
