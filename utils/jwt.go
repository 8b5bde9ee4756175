package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unisale-backend/dtos"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirror the identity fields of a Firebase ID token so locally issued
// tokens resolve to users the same way.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier issues and verifies HS256 tokens for local development and tests.
type JWTVerifier struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	return &JWTVerifier{secret: []byte(secret), ttl: 2 * time.Hour}, nil
}

// GenerateToken signs a token for uid and email. No route issues tokens: with
// AUTH_PROVIDER=local, development and test clients mint their own bearer
// tokens with this and the shared JWT_SECRET.
func (v *JWTVerifier) GenerateToken(uid, email string) (string, error) {
	claims := Claims{
		UID:   uid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "unisale-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func (v *JWTVerifier) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UID != "" {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// VerifyToken satisfies middleware.TokenVerifier.
func (v *JWTVerifier) VerifyToken(_ context.Context, tokenString string) (*dtos.Identity, error) {
	claims, err := v.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &dtos.Identity{UID: claims.UID, Email: claims.Email}, nil
}
