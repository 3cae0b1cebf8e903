package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/evalsec/cyberassess/internal/config"
)

func TestVerifyAdminPasswordPlain(t *testing.T) {
	cfg := &config.Config{AdminPassword: "correct-horse"}

	if err := VerifyAdminPassword(cfg, "correct-horse"); err != nil {
		t.Errorf("Expected correct password to verify, got %v", err)
	}
	if err := VerifyAdminPassword(cfg, "wrong"); err == nil {
		t.Error("Expected wrong password to fail")
	}
	if err := VerifyAdminPassword(cfg, ""); err == nil {
		t.Error("Expected empty password to fail")
	}
}

func TestVerifyAdminPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	cfg := &config.Config{
		AdminPasswordHash: string(hash),
		// The hash takes precedence even when a plaintext is also set
		AdminPassword: "something-else",
	}

	if err := VerifyAdminPassword(cfg, "correct-horse"); err != nil {
		t.Errorf("Expected hashed password to verify, got %v", err)
	}
	if err := VerifyAdminPassword(cfg, "something-else"); err == nil {
		t.Error("Expected plaintext fallback to be ignored when a hash is set")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret", SessionTTL: time.Hour}

	token, err := IssueSessionToken(cfg)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}
	if err := ValidateSessionToken(cfg, token); err != nil {
		t.Errorf("Expected issued token to validate, got %v", err)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	issuer := &config.Config{SessionSecret: "issuer-secret", SessionTTL: time.Hour}
	verifier := &config.Config{SessionSecret: "other-secret", SessionTTL: time.Hour}

	token, err := IssueSessionToken(issuer)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	if err := ValidateSessionToken(verifier, token); err == nil {
		t.Error("Expected token signed with a different secret to fail")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret", SessionTTL: -time.Minute}

	token, err := IssueSessionToken(cfg)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	if err := ValidateSessionToken(cfg, token); err == nil {
		t.Error("Expected expired token to fail")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	cfg := &config.Config{SessionSecret: "test-secret", SessionTTL: time.Hour}

	if err := ValidateSessionToken(cfg, "not-a-token"); err == nil {
		t.Error("Expected garbage token to fail")
	}
	if err := ValidateSessionToken(cfg, ""); err == nil {
		t.Error("Expected empty token to fail")
	}
}
