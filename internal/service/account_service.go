package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/aevi-next/internal/cache"
	"github.com/aevi-next/internal/config"
	"github.com/aevi-next/internal/constants"
	"github.com/aevi-next/internal/logger"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionClaims is the JWT payload for every token the storefront
// issues. Purpose separates sign-in sessions from reset and confirm
// links so one token can never stand in for another.
type SessionClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// SignUpInput registers a new account.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Subscribe bool
}

// UpdateProfileInput edits the signed-in user's details.
type UpdateProfileInput struct {
	FirstName  *string
	LastName   *string
	Subscribed *bool
}

// AccountService owns registration, sign in, tokens and profile edits.
type AccountService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	notification *NotificationService
}

// NewAccountService creates the account service.
func NewAccountService(cfg *config.Config, userRepo repository.UserRepository, notification *NotificationService) *AccountService {
	return &AccountService{
		cfg:          cfg,
		userRepo:     userRepo,
		notification: notification,
	}
}

// HashPassword hashes with bcrypt at the default cost.
func (s *AccountService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its hash.
func (s *AccountService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// GenerateToken signs a token for the given purpose with a
// purpose-specific lifetime.
func (s *AccountService) GenerateToken(user *models.User, purpose string) (string, time.Time, error) {
	var lifetime time.Duration
	switch purpose {
	case constants.TokenPurposePasswordReset:
		lifetime = time.Duration(s.cfg.Auth.ResetExpireMinutes) * time.Minute
	case constants.TokenPurposeEmailConfirm:
		lifetime = time.Duration(s.cfg.Auth.ConfirmExpireHours) * time.Hour
	default:
		purpose = constants.TokenPurposeSession
		lifetime = time.Duration(s.cfg.Auth.SessionExpireHours) * time.Hour
	}
	now := time.Now()
	expiresAt := now.Add(lifetime)

	claims := SessionClaims{
		UserID:  user.ID,
		Email:   user.Email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken validates a token and checks it carries the expected
// purpose. A reset link can never act as a session.
func (s *AccountService) ParseToken(tokenString, expectedPurpose string) (*SessionClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Auth.SecretKey), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Purpose != expectedPurpose {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// SignUp registers an account. The email is the identity and must be
// unused; a taken address is a conflict, not an update.
func (s *AccountService) SignUp(input SignUpInput) (*models.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, ErrPasswordRequired
	}
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}
	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsSubscribed: input.Subscribe,
	}
	if !s.cfg.Auth.ConfirmEmailEnabled {
		now := time.Now()
		user.Confirmed = true
		user.ConfirmedAt = &now
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	if s.cfg.Auth.ConfirmEmailEnabled {
		token, _, err := s.GenerateToken(user, constants.TokenPurposeEmailConfirm)
		if err != nil {
			logger.Warnw("signup_confirm_token_failed", "user_id", user.ID, "error", err)
		} else if s.notification != nil {
			s.notification.NotifyAccountConfirm(user.ID, user.Email, token)
		}
	}
	return user, nil
}

// SignIn checks credentials and returns the user with a session token.
// Missing account and wrong password are indistinguishable to the
// caller.
func (s *AccountService) SignIn(email, password string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, expiresAt, err := s.GenerateToken(user, constants.TokenPurposeSession)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	cache.SetAuthState(context.Background(), buildAuthState(user))
	return user, token, expiresAt, nil
}

// GetProfile loads the signed-in user.
func (s *AccountService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies partial edits; nil fields stay untouched.
func (s *AccountService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Subscribed != nil {
		user.IsSubscribed = *input.Subscribed
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	cache.InvalidateAuthState(context.Background(), user.ID)
	return user, nil
}

// RequestPasswordReset mails a reset link when the address has an
// account. The caller gets the same answer either way so the endpoint
// does not leak which emails are registered.
func (s *AccountService) RequestPasswordReset(email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token, _, err := s.GenerateToken(user, constants.TokenPurposePasswordReset)
	if err != nil {
		return err
	}
	if s.notification != nil {
		s.notification.NotifyPasswordReset(user.ID, user.Email, token)
	}
	return nil
}

// ResetPassword sets a new password from a valid reset token.
func (s *AccountService) ResetPassword(token, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return ErrPasswordRequired
	}
	claims, err := s.ParseToken(token, constants.TokenPurposePasswordReset)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrTokenInvalid
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	cache.InvalidateAuthState(context.Background(), user.ID)
	return nil
}

// ConfirmEmail marks the account confirmed from a valid confirm token.
// Confirming twice is harmless.
func (s *AccountService) ConfirmEmail(token string) (*models.User, error) {
	claims, err := s.ParseToken(token, constants.TokenPurposeEmailConfirm)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}
	if user.Confirmed {
		return user, nil
	}
	now := time.Now()
	user.Confirmed = true
	user.ConfirmedAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	cache.InvalidateAuthState(context.Background(), user.ID)
	return user, nil
}

func buildAuthState(user *models.User) *cache.AuthState {
	if user == nil {
		return nil
	}
	return &cache.AuthState{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Confirmed: user.Confirmed,
	}
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrEmailRequired
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", ErrEmailInvalid
	}
	return trimmed, nil
}
