// Package auth implements the credential collaborator: password
// hashing and session token issuance. The workflows only call it at
// the registration and login boundaries.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role scopes a token to one side of the platform.
type Role string

const (
	RoleTutor   Role = "tutor"
	RoleStudent Role = "student"
)

// ErrInvalidToken covers malformed, expired and wrongly-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Credentials hashes passwords and signs session tokens.
type Credentials struct {
	secret []byte
	ttl    time.Duration
}

// NewCredentials creates the collaborator around a signing secret.
func NewCredentials(secret string, ttl time.Duration) *Credentials {
	return &Credentials{secret: []byte(secret), ttl: ttl}
}

// HashPassword hashes a plaintext password with bcrypt.
func (c *Credentials) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
func (c *Credentials) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token carrying the identity and its role.
func (c *Credentials) IssueToken(subject uuid.UUID, role Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ParseToken verifies a token and returns the identity and role.
func (c *Credentials) ParseToken(tokenString string) (uuid.UUID, Role, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	subject, err := uuid.Parse(parsed.Subject)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	if parsed.Role != RoleTutor && parsed.Role != RoleStudent {
		return uuid.Nil, "", ErrInvalidToken
	}

	return subject, parsed.Role, nil
}
