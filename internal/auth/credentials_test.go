package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	creds := NewCredentials("test-secret", time.Hour)

	hash, err := creds.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, creds.VerifyPassword("s3cret-pass", hash))
	assert.False(t, creds.VerifyPassword("wrong-pass", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	creds := NewCredentials("test-secret", time.Hour)
	id := uuid.New()

	token, err := creds.IssueToken(id, RoleTutor)
	require.NoError(t, err)

	subject, role, err := creds.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, subject)
	assert.Equal(t, RoleTutor, role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewCredentials("secret-a", time.Hour).IssueToken(uuid.New(), RoleStudent)
	require.NoError(t, err)

	_, _, err = NewCredentials("secret-b", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	creds := NewCredentials("test-secret", -time.Minute)

	token, err := creds.IssueToken(uuid.New(), RoleStudent)
	require.NoError(t, err)

	_, _, err = creds.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	creds := NewCredentials("test-secret", time.Hour)

	_, _, err := creds.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
