package utils

import (
	"errors"
	"os"
	"time"

	"feegate/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "feegate-api"

// GenerateSessionToken signs a per-session token for the storefront.
// The JWT secret is expected in the JWT_SECRET environment variable.
func GenerateSessionToken(claims *models.SessionClaims) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   claims.SessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseSessionToken parses and validates a session token.
func ParseSessionToken(tokenStr string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	if err := parseInto(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}

// GenerateAdminToken signs a short-lived token for the settings surface.
func GenerateAdminToken(username string) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	claims := models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   username,
		},
		Username: username,
		Role:     "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// ParseAdminToken parses and validates an admin token.
func ParseAdminToken(tokenStr string) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}
	if err := parseInto(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Role != "admin" {
		return nil, errors.New("invalid admin claims")
	}
	return claims, nil
}

func parseInto(tokenStr string, claims jwt.Claims) error {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
