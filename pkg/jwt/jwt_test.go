package jwt

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("asha@example.com", 42, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if claims["email"] != "asha@example.com" {
		t.Errorf("unexpected email claim: %v", claims["email"])
	}
	if userID, ok := claims["user_id"].(float64); !ok || uint(userID) != 42 {
		t.Errorf("unexpected user_id claim: %v", claims["user_id"])
	}
	if isAdmin, ok := claims["is_admin"].(bool); !ok || !isAdmin {
		t.Errorf("unexpected is_admin claim: %v", claims["is_admin"])
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateToken("asha@example.com", 42, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "different-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}
