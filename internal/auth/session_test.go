package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newManager() *SessionManager {
	return NewSessionManager("test-secret", time.Hour, "admin", "correct-horse")
}

func TestLoginIssuesValidSession(t *testing.T) {
	m := newManager()

	token, err := m.Login("admin", "correct-horse")

	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.NotEmpty(t, claims.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := newManager()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "guess"},
		{"wrong username", "root", "correct-horse"},
		{"both wrong", "root", "guess"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := m.Login(tc.username, tc.password)
			require.ErrorIs(t, err, ErrInvalidCredentials)
			require.Empty(t, token)
		})
	}
}

func TestLoginAcceptsBcryptHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	m := NewSessionManager("test-secret", time.Hour, "admin", string(hash))

	_, err = m.Login("admin", "correct-horse")
	require.NoError(t, err)

	_, err = m.Login("admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateRejectsEmptyToken(t *testing.T) {
	m := newManager()

	_, err := m.Validate("")
	require.ErrorIs(t, err, ErrMissingSession)

	_, err = m.Validate("   ")
	require.ErrorIs(t, err, ErrMissingSession)
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	m := newManager()

	_, err := m.Validate("not-a-token")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	m := newManager()
	other := NewSessionManager("other-secret", time.Hour, "admin", "correct-horse")

	token, err := other.Login("admin", "correct-horse")
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsExpiredSession(t *testing.T) {
	m := NewSessionManager("test-secret", -time.Minute, "admin", "correct-horse")

	token, err := m.Login("admin", "correct-horse")
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}
