package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aevi-next/internal/config"
	"github.com/aevi-next/internal/constants"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAccountServiceTest(t *testing.T) (*AccountService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:account_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.Auth.SecretKey = "account-service-test-secret-key-0123456789"
	cfg.Auth.SessionExpireHours = 24
	cfg.Auth.ResetExpireMinutes = 30
	cfg.Auth.ConfirmExpireHours = 48
	cfg.Auth.ConfirmEmailEnabled = true
	svc := NewAccountService(cfg, repository.NewUserRepository(db), nil)
	return svc, db
}

func TestSignUpAndSignIn(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	user, err := svc.SignUp(SignUpInput{
		Email:     "New@Example.com",
		Password:  "hunter22",
		FirstName: "Nora",
		LastName:  "Lind",
	})
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if user.Email != "new@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}

	signedIn, token, expiresAt, err := svc.SignIn("new@example.com", "hunter22")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if signedIn.ID != user.ID || token == "" {
		t.Fatalf("unexpected sign in result")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("session expiry should be in the future")
	}

	claims, err := svc.ParseToken(token, constants.TokenPurposeSession)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims carry wrong user: %d", claims.UserID)
	}
}

func TestSignUpDuplicateEmailConflicts(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	if _, err := svc.SignUp(SignUpInput{Email: "dup@example.com", Password: "pw-one"}); err != nil {
		t.Fatalf("first sign up failed: %v", err)
	}
	_, err := svc.SignUp(SignUpInput{Email: "dup@example.com", Password: "pw-two"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got: %v", err)
	}

	// The original credentials keep working.
	if _, _, _, err := svc.SignIn("dup@example.com", "pw-one"); err != nil {
		t.Fatalf("original credentials broken: %v", err)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	if _, err := svc.SignUp(SignUpInput{Email: "auth@example.com", Password: "right-pw"}); err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if _, _, _, err := svc.SignIn("auth@example.com", "wrong-pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got: %v", err)
	}
	if _, _, _, err := svc.SignIn("ghost@example.com", "any"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got: %v", err)
	}
}

func TestTokenPurposeIsEnforced(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	user, err := svc.SignUp(SignUpInput{Email: "tok@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	resetToken, _, err := svc.GenerateToken(user, constants.TokenPurposePasswordReset)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	if _, err := svc.ParseToken(resetToken, constants.TokenPurposeSession); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("reset token must not pass as a session, got: %v", err)
	}
	if _, err := svc.ParseToken(resetToken, constants.TokenPurposePasswordReset); err != nil {
		t.Fatalf("reset token should parse for its own purpose: %v", err)
	}
	if _, err := svc.ParseToken("garbage", constants.TokenPurposeSession); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for garbage, got: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	user, err := svc.SignUp(SignUpInput{Email: "reset@example.com", Password: "old-pw"})
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	token, _, err := svc.GenerateToken(user, constants.TokenPurposePasswordReset)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	if err := svc.ResetPassword(token, "new-pw"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, _, _, err := svc.SignIn("reset@example.com", "old-pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should stop working, got: %v", err)
	}
	if _, _, _, err := svc.SignIn("reset@example.com", "new-pw"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
	if err := svc.ResetPassword(token, ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got: %v", err)
	}
}

func TestRequestPasswordResetHidesUnknownEmails(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	if err := svc.RequestPasswordReset("nobody@example.com"); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if err := svc.RequestPasswordReset(""); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got: %v", err)
	}
}

func TestUpdateProfilePartialEdit(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	user, err := svc.SignUp(SignUpInput{
		Email:     "profile@example.com",
		Password:  "pw",
		FirstName: "Old",
		LastName:  "Name",
	})
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	first := "New"
	subscribed := true
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{FirstName: &first, Subscribed: &subscribed})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FirstName != "New" {
		t.Fatalf("first name not updated: %q", updated.FirstName)
	}
	if updated.LastName != "Name" {
		t.Fatalf("untouched field changed: %q", updated.LastName)
	}
	if !updated.IsSubscribed {
		t.Fatalf("subscribe flag not updated")
	}

	if _, err := svc.UpdateProfile(99999, UpdateProfileInput{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestConfirmEmail(t *testing.T) {
	svc, _ := setupAccountServiceTest(t)

	user, err := svc.SignUp(SignUpInput{Email: "confirm@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}
	if user.Confirmed {
		t.Fatalf("fresh account should start unconfirmed")
	}
	token, _, err := svc.GenerateToken(user, constants.TokenPurposeEmailConfirm)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	confirmed, err := svc.ConfirmEmail(token)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if !confirmed.Confirmed || confirmed.ConfirmedAt == nil {
		t.Fatalf("user should be confirmed: %+v", confirmed)
	}

	// Confirming again is harmless.
	if _, err := svc.ConfirmEmail(token); err != nil {
		t.Fatalf("repeat confirm failed: %v", err)
	}
}
