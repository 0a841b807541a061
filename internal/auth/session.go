package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingSession     = errors.New("missing session")
	ErrInvalidSession     = errors.New("invalid session")
)

type Claims struct {
	jwt.RegisteredClaims
}

// SessionManager checks the configured admin credentials and issues the
// signed session marker carried in the admin cookie. It holds no database
// state; the token itself is the session.
type SessionManager struct {
	secret   []byte
	ttl      time.Duration
	username string
	password string
}

func NewSessionManager(secret string, ttl time.Duration, adminUsername, adminPassword string) *SessionManager {
	return &SessionManager{
		secret:   []byte(secret),
		ttl:      ttl,
		username: adminUsername,
		password: adminPassword,
	}
}

// Login verifies the supplied credentials and returns a new session token.
// On mismatch it returns ErrInvalidCredentials and issues nothing, so any
// session the caller already holds is left as it was.
func (m *SessionManager) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
	if !verifyPassword(m.password, password) || !userOK {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   m.username,
			Issuer:    "portfolio-admin",
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate is the isAuthenticated predicate: it reports whether the token is
// a live session marker issued by Login.
func (m *SessionManager) Validate(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingSession
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// TTL reports the configured session lifetime, used for the cookie expiry.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// verifyPassword accepts either a bcrypt hash (the recommended form for
// ADMIN_PASSWORD) or a plain value compared in constant time.
func verifyPassword(configured, supplied string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(supplied)) == 1
}
