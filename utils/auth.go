package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key
var JwtKey = []byte("your_secret_key") // This will be loaded from .env

// SessionClaims identifies an anonymous shopper session and its cart.
type SessionClaims struct {
	CartID string `json:"cart_id"`
	jwt.StandardClaims
}

// GenerateSessionToken signs a session token carrying the cart ID.
func GenerateSessionToken(cartID string) (string, error) {
	expirationTime := time.Now().Add(30 * 24 * time.Hour)
	claims := &SessionClaims{
		CartID: cartID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseSessionToken validates a session token and returns its claims.
func ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid session token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
