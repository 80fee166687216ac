package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

// ParseStaffJWT extracts the acting staff name from a session token issued by
// the identity service.
func ParseStaffJWT(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if staffName, ok := claims["staff_name"].(string); ok {
			return staffName, nil
		}
	}

	return "", errors.New("invalid token")
}
