package utils

import (
	"strings"
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SetSecret("test-secret")
	defer SetSecret("secret")

	token, err := GenerateToken("demo-user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "demo-user" {
		t.Errorf("UserID = %q, want demo-user", claims.UserID)
	}
	if claims.ExpiresAt == nil {
		t.Errorf("token carries no expiry")
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	SetSecret("test-secret")
	defer SetSecret("secret")

	token, err := GenerateToken("demo-user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAA"
	if _, err := ValidateToken(tampered); err == nil {
		t.Errorf("tampered token was accepted")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	SetSecret("one-secret")
	token, err := GenerateToken("demo-user")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	SetSecret("another-secret")
	defer SetSecret("secret")
	if _, err := ValidateToken(token); err == nil {
		t.Errorf("token signed with a different secret was accepted")
	}
}
