package public

import (
	"errors"
	"time"

	"github.com/aevi-next/internal/http/response"
	"github.com/aevi-next/internal/logger"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SignUpRequest registers an account.
type SignUpRequest struct {
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Subscribe bool   `json:"subscribe" form:"subscribe"`
}

// SignInRequest carries credentials.
type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// UpdateProfileRequest edits profile fields; absent fields stay as they
// are.
type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Subscribed *bool   `json:"is_subscribed"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

// ResetPasswordRequest completes the reset flow.
type ResetPasswordRequest struct {
	Token    string `json:"token" form:"token"`
	Password string `json:"password" form:"password"`
}

func profilePayload(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"is_subscribed": user.IsSubscribed,
		"confirmed":     user.Confirmed,
	}
}

// SignUp registers an account, signs the user in and folds any
// anonymous cart into the new account.
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.AccountService.SignUp(service.SignUpInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Subscribe: req.Subscribe,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrEmailInvalid):
			response.BadRequest(c, "a valid email is required")
		case errors.Is(err, service.ErrPasswordRequired):
			response.BadRequest(c, "password is required")
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, "email already registered")
		default:
			response.Internal(c, "sign up failed")
		}
		return
	}
	h.startSession(c, user)
	finishForm(c, "/", gin.H{"user": profilePayload(user)})
}

// SignIn checks credentials, sets the session cookie and folds any
// anonymous cart into the account.
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, token, expiresAt, err := h.AccountService.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.Internal(c, "sign in failed")
		return
	}
	h.setAuthCookie(c, token, cookieMaxAge(expiresAt))
	h.mergeAnonymousCart(c, user.ID)
	finishForm(c, "/", gin.H{"user": profilePayload(user)})
}

// Logout clears the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	h.clearAuthCookie(c)
	finishForm(c, "/", gin.H{"logged_out": true})
}

// GetProfile returns the signed-in user.
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AccountService.GetProfile(uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "authentication required")
			return
		}
		response.Internal(c, "failed to load profile")
		return
	}
	response.Success(c, profilePayload(user))
}

// UpdateProfile applies partial edits to the signed-in user.
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.AccountService.UpdateProfile(uid, service.UpdateProfileInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Subscribed: req.Subscribed,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "authentication required")
			return
		}
		response.Internal(c, "failed to update profile")
		return
	}
	response.Success(c, profilePayload(user))
}

// ForgotPassword mails a reset link. The answer never reveals whether
// the address has an account.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.AccountService.RequestPasswordReset(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailRequired) || errors.Is(err, service.ErrEmailInvalid) {
			response.BadRequest(c, "a valid email is required")
			return
		}
		response.Internal(c, "failed to start password reset")
		return
	}
	finishForm(c, "/signin", gin.H{"sent": true})
}

// ResetPassword sets a new password from a reset token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.AccountService.ResetPassword(req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordRequired):
			response.BadRequest(c, "password is required")
		case errors.Is(err, service.ErrTokenInvalid):
			response.BadRequest(c, "reset link is invalid or expired")
		default:
			response.Internal(c, "failed to reset password")
		}
		return
	}
	finishForm(c, "/signin", gin.H{"reset": true})
}

// ConfirmEmail marks the account confirmed from the emailed link.
func (h *Handler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	user, err := h.AccountService.ConfirmEmail(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) {
			response.BadRequest(c, "confirmation link is invalid or expired")
			return
		}
		response.Internal(c, "failed to confirm account")
		return
	}
	response.Success(c, gin.H{"confirmed": true, "email": user.Email})
}

// startSession issues a token and cookie for a freshly registered
// user, then merges their anonymous cart.
func (h *Handler) startSession(c *gin.Context, user *models.User) {
	token, expiresAt, err := h.AccountService.GenerateToken(user, "")
	if err != nil {
		logger.Warnw("signup_session_token_failed", "user_id", user.ID, "error", err)
		return
	}
	h.setAuthCookie(c, token, cookieMaxAge(expiresAt))
	h.mergeAnonymousCart(c, user.ID)
}

func cookieMaxAge(expiresAt time.Time) int {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = 3600
	}
	return maxAge
}

// mergeAnonymousCart folds the cookie-identified cart into the user's.
// Failure is logged; sign in still succeeds.
func (h *Handler) mergeAnonymousCart(c *gin.Context, userID uint) {
	value, ok := c.Get(ContextCartSession)
	if !ok {
		return
	}
	sessionID, ok := value.(string)
	if !ok || sessionID == "" {
		return
	}
	if err := h.CartService.MergeSession(sessionID, userID); err != nil {
		logger.Warnw("cart_merge_failed", "user_id", userID, "error", err)
	}
}
