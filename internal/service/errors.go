package service

import "errors"

// Service-level sentinels. Handlers match these with errors.Is to pick
// the HTTP status.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrQuantityInvalid  = errors.New("quantity must be positive")
	ErrProductRequired  = errors.New("product id required")

	ErrWishlistDuplicate = errors.New("product already in wishlist")
	ErrWishlistNotFound  = errors.New("wishlist item not found")

	ErrEmailRequired      = errors.New("email required")
	ErrEmailInvalid       = errors.New("email invalid")
	ErrPasswordRequired   = errors.New("password required")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenInvalid       = errors.New("token invalid or expired")

	ErrMessageRequired = errors.New("message required")
	ErrNameRequired    = errors.New("name required")

	ErrEmailServiceDisabled      = errors.New("email sending disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("recipient rejected by mail server")
)
