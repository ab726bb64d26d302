package utils

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"instagram-gateway/infrastructure/logger"

	"github.com/golang-jwt/jwt"
)

// GenerateToken signs an HS256 token for the tool API.
func GenerateToken(payload map[string]interface{}, secretKey string) (string, error) {
	var claims jwt.MapClaims = payload
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generate token")
		return "", err
	}
	return tokenString, nil
}

// RandomState returns a hex string for OAuth CSRF state values.
func RandomState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while generating random state")
		return hex.EncodeToString([]byte(time.Now().String()))[:32]
	}
	return hex.EncodeToString(buf)
}
