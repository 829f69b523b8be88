package server

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkatore/gitCompass/internal/config"
)

func testJWTService(ttl time.Duration) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", TTL: ttl})
}

func TestJWTRoundTrip(t *testing.T) {
	svc := testJWTService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := testJWTService(time.Hour).GenerateToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different", TTL: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsEmptyAndGarbage(t *testing.T) {
	svc := testJWTService(time.Hour)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
