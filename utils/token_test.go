package utils

import (
	"testing"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	user := models.User{ID: "f-1", Name: "John Doe", Email: "john@example.com", Role: models.RoleFarmer}

	token, err := GenerateToken(user, "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "f-1", claims["user_id"])
	assert.Equal(t, "John Doe", claims["name"])
	assert.Equal(t, "john@example.com", claims["email"])
	assert.Equal(t, models.RoleFarmer, claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, 5*time.Second)
}

func TestParseTokenRejects(t *testing.T) {
	user := models.User{ID: "c-1", Role: models.RoleCustomer}

	_, err := GenerateToken(user, "", time.Hour)
	assert.Error(t, err)

	wrongKey, err := GenerateToken(user, "one", time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(wrongKey, "two")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateToken(user, "one", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, "one")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "c-1"}).SignedString([]byte("one"))
	require.NoError(t, err)
	_, err = ParseToken(noExpiry, "one")
	assert.ErrorIs(t, err, jwt.ErrTokenRequiredClaimMissing)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "c-1", "exp": time.Now().Add(time.Hour).Unix()}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(none, "one")
	assert.Error(t, err)
}
