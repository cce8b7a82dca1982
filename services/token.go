package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"caretrack/apperr"
	"caretrack/models"
)

// Claims is the session claim issued at login: which account authenticated,
// its role, and the linked profile id, bounded by the configured TTL.
type Claims struct {
	jwt.RegisteredClaims
	LoginID string `json:"loginId"`
	Role    string `json:"role"`
	UserID  string `json:"userId,omitempty"`
}

func SignToken(user models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Cfg.TokenTTL)),
		},
		LoginID: user.LoginID,
		Role:    user.Role,
	}
	if !user.UserID.IsZero() {
		claims.UserID = user.UserID.Hex()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(Cfg.JWTSecret))
	if err != nil {
		return "", apperr.Internal(err)
	}
	return signed, nil
}

func VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(Cfg.JWTSecret), nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.New(apperr.KindTokenExpired, "token has expired")
		}
		return nil, apperr.New(apperr.KindTokenInvalid, "token is invalid")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.New(apperr.KindTokenInvalid, "token is invalid")
	}
	return claims, nil
}
