package auth

import (
	"errors"
	"strings"
	"testing"

	"staffing-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "staffing-backend", 1)
	user := &models.User{ID: "u-1", Name: "Meera", Role: models.RoleAccountant}

	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != models.RoleAccountant {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenRejectedWithOtherSecretOrIssuer(t *testing.T) {
	user := &models.User{ID: "u-1", Role: models.RoleAdmin}
	token, _ := NewJWTManager("secret", "staffing-backend", 1).GenerateToken(user)

	if _, err := NewJWTManager("other", "staffing-backend", 1).ValidateToken(token); err == nil {
		t.Fatal("token accepted with wrong secret")
	}
	if _, err := NewJWTManager("secret", "someone-else", 1).ValidateToken(token); err == nil {
		t.Fatal("token accepted with wrong issuer")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("catering123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(hash, "catering123") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "catering124") {
		t.Fatal("wrong password accepted")
	}
}

func TestPasswordPolicy(t *testing.T) {
	hash, err := HashPassword("catering123")
	if err != nil {
		t.Fatal(err)
	}
	if NeedsRehash(hash) {
		t.Error("fresh hash flagged for rehash")
	}

	old, err := bcrypt.GenerateFromPassword([]byte("catering123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if !NeedsRehash(string(old)) {
		t.Error("min-cost hash not flagged for rehash")
	}

	if _, err := HashPassword(strings.Repeat("x", MaxPasswordBytes+1)); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("long password: err = %v, want ErrPasswordTooLong", err)
	}
}

func TestSessionHasRole(t *testing.T) {
	s := Session{UserID: "u-1", Role: models.RoleCaptain}
	if !s.HasRole(models.RoleOperationalManager, models.RoleCaptain) {
		t.Fatal("expected captain to match")
	}
	if s.HasRole(models.RoleAdmin) || s.IsAdmin() {
		t.Fatal("captain is not admin")
	}
}
