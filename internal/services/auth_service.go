package services

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/evalsec/cyberassess/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// VerifyAdminPassword checks the supplied password against the configured
// credential. A bcrypt hash takes precedence; the plaintext fallback exists
// for development setups and is compared in constant time.
func VerifyAdminPassword(cfg *config.Config, password string) error {
	if cfg.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte(password)); err != nil {
			return fmt.Errorf("invalid password")
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(cfg.AdminPassword), []byte(password)) != 1 {
		return fmt.Errorf("invalid password")
	}
	return nil
}

// IssueSessionToken creates a signed admin session token. The admin role is
// the only role in the system.
func IssueSessionToken(cfg *config.Config) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(cfg.SessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken parses and verifies an admin session token.
func ValidateSessionToken(cfg *config.Config, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.SessionSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return fmt.Errorf("session validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("session is not valid")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return fmt.Errorf("session lacks the admin role")
	}

	return nil
}
