package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hakim-livs-backend/internal/apperr"
)

var secret = []byte("test-secret")

func TestSignParseRoundTrip(t *testing.T) {
	token, err := Sign("abc123", secret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "abc123", claims.UserID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := Sign("abc123", secret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, secret)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Sign("abc123", secret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, []byte("other-secret"))
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestFromHeader(t *testing.T) {
	got, err := FromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	for _, header := range []string{"", "abc.def.ghi", "Bearer", "Bearer ", "Basic abc"} {
		_, err := FromHeader(header)
		require.Error(t, err, "header %q", header)
		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
	}
}
