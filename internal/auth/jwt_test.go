package auth

import (
	"hospital/internal/entity/db"
	"testing"
	"time"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	user := &db.User{ID: 42, Username: "drbob", Role: db.UserRoleDoctor}
	token, expiresAt, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %d, got %d", user.ID, claims.UserID)
	}
	if claims.Username != user.Username {
		t.Fatalf("expected username %s, got %s", user.Username, claims.Username)
	}
	if claims.Role != user.Role {
		t.Fatalf("expected role %s, got %s", user.Role, claims.Role)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	issuer, err := NewManager("secret-a", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}
	verifier, err := NewManager("secret-b", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	token, _, err := issuer.GenerateToken(&db.User{ID: 1, Username: "alice", Role: db.UserRolePatient})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	mgr := &Manager{secret: []byte("secret"), issuer: "issuer", expiry: -time.Minute}
	token, _, err := mgr.GenerateToken(&db.User{ID: 1, Username: "alice", Role: db.UserRolePatient})
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if _, err := mgr.ParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
