package services

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "A@Example.com", "alice", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "a@example.com" {
		t.Errorf("Email = %q, want normalized %q", user.Email, "a@example.com")
	}
	if user.LastManualReset.IsZero() {
		t.Error("new user has no reset boundary")
	}

	token, err := svc.Login(ctx, "a@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("login returned empty token")
	}

	if _, err := svc.Login(ctx, "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@example.com", "alice", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	var dup *DuplicateNameError
	if _, err := svc.Register(ctx, "a@example.com", "alice2", "pw"); !errors.As(err, &dup) {
		t.Errorf("duplicate email error = %v, want DuplicateNameError", err)
	}
}
