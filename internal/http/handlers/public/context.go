package public

import (
	"net/http"
	"strings"

	"github.com/aevi-next/internal/http/response"
	"github.com/aevi-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// Context keys shared with the router middleware.
const (
	ContextUserID      = "user_id"
	ContextCartSession = "cart_session"
)

func getUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get(ContextUserID)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return 0, false
	}
	uid, ok := value.(uint)
	if !ok || uid == 0 {
		response.Unauthorized(c, "authentication required")
		return 0, false
	}
	return uid, true
}

// cartOwner resolves the caller's cart identity: the signed-in user
// when present, the anonymous session cookie otherwise.
func (h *Handler) cartOwner(c *gin.Context) repository.CartOwner {
	if value, ok := c.Get(ContextUserID); ok {
		if uid, ok := value.(uint); ok && uid != 0 {
			return repository.UserOwner(uid)
		}
	}
	if value, ok := c.Get(ContextCartSession); ok {
		if sid, ok := value.(string); ok && sid != "" {
			return repository.SessionOwner(sid)
		}
	}
	return repository.CartOwner{}
}

// isFormRequest reports whether the client posted a browser form; form
// posts get redirects, JSON clients get JSON.
func isFormRequest(c *gin.Context) bool {
	contentType := strings.ToLower(c.ContentType())
	return strings.Contains(contentType, "application/x-www-form-urlencoded") ||
		strings.Contains(contentType, "multipart/form-data")
}

// finishForm answers a form post with a see-other redirect and a JSON
// post with the payload.
func finishForm(c *gin.Context, redirectTo string, data interface{}) {
	if isFormRequest(c) {
		c.Redirect(http.StatusSeeOther, redirectTo)
		return
	}
	response.Success(c, data)
}

// setAuthCookie drops the http-only session cookie.
func (h *Handler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	session := h.Config.Session
	c.SetCookie(session.AuthCookie, token, maxAge, "/", session.CookieDomain, session.CookieSecure, true)
}

// clearAuthCookie removes the session cookie.
func (h *Handler) clearAuthCookie(c *gin.Context) {
	session := h.Config.Session
	c.SetCookie(session.AuthCookie, "", -1, "/", session.CookieDomain, session.CookieSecure, true)
}
