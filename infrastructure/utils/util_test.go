package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-frame/infrastructure/utils"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	token, err := utils.GenerateSessionToken("2Ab3cD", "secret", time.Hour)
	require.NoError(t, err)

	sessionID, err := utils.ParseSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "2Ab3cD", sessionID)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := utils.GenerateSessionToken("2Ab3cD", "secret", time.Hour)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken(token, "other-secret")
	assert.Error(t, err)
}

func TestSessionToken_Expired(t *testing.T) {
	token, err := utils.GenerateSessionToken("2Ab3cD", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = utils.ParseSessionToken(token, "secret")
	assert.Error(t, err)
}

func TestSessionToken_Garbage(t *testing.T) {
	_, err := utils.ParseSessionToken("not-a-token", "secret")
	assert.Error(t, err)

	token, err := utils.GenerateToken(map[string]interface{}{"user": "x"}, "secret")
	require.NoError(t, err)
	_, err = utils.ParseSessionToken(token, "secret")
	assert.Error(t, err, "token without session id")
}
