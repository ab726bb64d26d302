package model

import "github.com/golang-jwt/jwt"

// UserClaims are the JWT claims accepted by the optional API auth middleware.
type UserClaims struct {
	UserName string `json:"user_name"`
	jwt.StandardClaims
}
