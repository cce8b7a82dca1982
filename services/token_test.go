package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"caretrack/apperr"
	"caretrack/config"
	"caretrack/models"
	"caretrack/role"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "test-secret-test-secret-test-secret",
		TokenTTL:      24 * time.Hour,
		MaxReportSize: 5 * 1024 * 1024,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	Cfg = testConfig()

	user := models.User{
		ID:      primitive.NewObjectID(),
		LoginID: "asha",
		Role:    role.Patient,
		UserID:  primitive.NewObjectID(),
	}

	token, err := SignToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, "asha", claims.LoginID)
	assert.Equal(t, role.Patient, claims.Role)
	assert.Equal(t, user.UserID.Hex(), claims.UserID)
}

func TestVerifyToken_Expired(t *testing.T) {
	Cfg = testConfig()
	Cfg.TokenTTL = -time.Minute

	token, err := SignToken(models.User{ID: primitive.NewObjectID(), LoginID: "x", Role: role.Admin})
	require.NoError(t, err)

	_, err = VerifyToken(token)
	assert.Equal(t, apperr.KindTokenExpired, apperr.KindOf(err))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	Cfg = testConfig()
	token, err := SignToken(models.User{ID: primitive.NewObjectID(), LoginID: "x", Role: role.Admin})
	require.NoError(t, err)

	Cfg = testConfig()
	Cfg.JWTSecret = "another-secret-entirely"

	_, err = VerifyToken(token)
	assert.Equal(t, apperr.KindTokenInvalid, apperr.KindOf(err))
}

func TestVerifyToken_Garbage(t *testing.T) {
	Cfg = testConfig()
	_, err := VerifyToken("not-a-token")
	assert.Equal(t, apperr.KindTokenInvalid, apperr.KindOf(err))
}
