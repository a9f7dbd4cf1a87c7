package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourhostel/stat-syncer/internal/domain"
)

const testSecret = "test-secret-key-for-token-service-tests"

func TestTokenRoundTrip(t *testing.T) {
	ts, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := ts.GenerateToken("alice", []string{"ROLE_USER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := ts.SubjectFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	claims, err := ts.ValidateToken(token, &domain.User{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)
}

func TestTokenRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)
}

func TestTokenRejectsMalformed(t *testing.T) {
	ts, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ts.SubjectFromToken("not.a.token")
	assert.Error(t, err)

	_, err = ts.SubjectFromToken("")
	assert.Error(t, err)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService("a-completely-different-secret-value", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateToken("alice", nil)
	require.NoError(t, err)

	_, err = verifier.SubjectFromToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	ts, err := NewTokenService(testSecret, -time.Minute)
	require.NoError(t, err)

	token, err := ts.GenerateToken("alice", nil)
	require.NoError(t, err)

	_, err = ts.SubjectFromToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsSubjectMismatch(t *testing.T) {
	ts, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := ts.GenerateToken("alice", nil)
	require.NoError(t, err)

	_, err = ts.ValidateToken(token, &domain.User{Username: "bob"})
	assert.Error(t, err)
}
