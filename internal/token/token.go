package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by a session token. The password hash is never part
// of it.
type Claims struct {
	UserID        uint
	Email         string
	Role          string
	CodeApporteur string
}

// Issuer signs and verifies session tokens. Secret and lifetime are
// fixed at construction instead of being read from the environment on
// every call.
type Issuer struct {
	Secret []byte
	TTL    time.Duration
}

// Default is the process-wide issuer, set once from config at startup.
var Default *Issuer

func Init(secret string, ttl time.Duration) {
	Default = &Issuer{Secret: []byte(secret), TTL: ttl}
}

func (i *Issuer) Issue(c Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":        c.UserID,
		"email":          c.Email,
		"role":           c.Role,
		"code_apporteur": c.CodeApporteur,
		"exp":            time.Now().Add(i.TTL).Unix(),
	})
	return t.SignedString(i.Secret)
}

func (i *Issuer) Verify(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var c Claims
	if v, ok := mc["user_id"].(float64); ok {
		c.UserID = uint(v)
	}
	if v, ok := mc["email"].(string); ok {
		c.Email = v
	}
	if v, ok := mc["role"].(string); ok {
		c.Role = v
	}
	if v, ok := mc["code_apporteur"].(string); ok {
		c.CodeApporteur = v
	}
	return c, nil
}
