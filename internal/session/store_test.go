package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// Tokens that never make it past signature or expiry checks must read as
// "not logged in", without touching the database.
func TestGetSessionRejectsBadTokensWithoutLookup(t *testing.T) {
	store := NewGormStore(nil, testSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong signature", signedToken(t, "u1", time.Now().Add(time.Hour)) + "tampered"},
		{"expired token", signedToken(t, "u1", time.Now().Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := store.GetSession(context.Background(), tt.token)
			assert.NoError(t, err)
			assert.Nil(t, sess)
		})
	}
}
