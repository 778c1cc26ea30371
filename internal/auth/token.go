// Package auth signs and verifies the bearer tokens issued at login.
package auth

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"hakim-livs-backend/internal/apperr"
)

type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

// Sign issues an HS256 token for the given user id.
func Sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse validates a token string and returns its claims. Expired, malformed
// or wrongly signed tokens all come back as Unauthorized.
func Parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Unauthorized, "Ogiltig token")
		}
		return secret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, "Ogiltig token", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.Unauthorized, "Ogiltig token")
	}
	return claims, nil
}

// FromHeader extracts the raw token from an Authorization header value.
func FromHeader(header string) (string, error) {
	if header == "" {
		return "", apperr.New(apperr.Unauthorized, "Ingen token tillhandahållen")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperr.New(apperr.Unauthorized, "Ogiltig token")
	}
	return parts[1], nil
}
