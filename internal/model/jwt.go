package model

import "github.com/golang-jwt/jwt/v5"

// JWTClaims are the claims carried by an access token. Subject is the user ID.
type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
