// Package authsvc - test tạo và parse JWT token.
package authsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanjeevkuinkel/shopOnly/internal/common"
)

const testSecret = "test-secret-key"

func TestCreateAndParseToken_RoundTrip(t *testing.T) {
	token, err := CreateToken(testSecret, "64f1b2c3d4e5f6a7b8c9d0e1", "buyer", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "64f1b2c3d4e5f6a7b8c9d0e1", claims.UserID)
	assert.Equal(t, "buyer", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := CreateToken(testSecret, "user-1", "admin", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("secret-khác", token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	// TTL âm: token hết hạn ngay khi tạo
	token, err := CreateToken(testSecret, "user-1", "seller", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSecret, "không-phải-jwt")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}
