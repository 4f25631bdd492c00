package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"runcoach/internal/domain"

	"github.com/golang-jwt/jwt/v4"
)

func newAuthFixture() (AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(repo, "test-secret", time.Hour), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	profile := domain.Profile{FirstName: "Claire", LastName: "Martin", Level: domain.LevelBeginner}
	user, err := svc.Register(ctx, "claire", "correct horse battery", profile)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID.IsZero() {
		t.Error("registered user has no ID")
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in register response")
	}

	token, logged, err := svc.Login(ctx, "claire", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.PasswordHash != "" {
		t.Error("password hash leaked in login response")
	}

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Errorf("token uid = %q, want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Issuer != "runcoach" {
		t.Errorf("token issuer = %q", claims.Issuer)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "claire", "password-one", domain.Profile{}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "claire", "password-two", domain.Profile{})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("err = %v, want ErrUserAlreadyExists", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "claire", "the right password", domain.Profile{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "claire", "the wrong password"},
		{"unknown user", "nobody", "whatever"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, user, err := svc.Login(ctx, tc.username, tc.password)
			if !errors.Is(err, ErrAuthenticationFailed) {
				t.Errorf("err = %v, want ErrAuthenticationFailed", err)
			}
			if token != "" || user != nil {
				t.Error("failed login must not return a token or user")
			}
		})
	}
}
