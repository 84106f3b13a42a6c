package public

import (
	"errors"

	"github.com/aevi-next/internal/http/response"
	"github.com/aevi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// NewsletterRequest carries a subscription email.
type NewsletterRequest struct {
	Email string `json:"email" form:"email"`
}

// SubmitContact stores a lead and notifies staff. The lead is kept even
// when the notification cannot go out.
func (h *Handler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	_, err := h.IntakeService.SubmitContact(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			response.BadRequest(c, "name is required")
		case errors.Is(err, service.ErrEmailRequired), errors.Is(err, service.ErrEmailInvalid):
			response.BadRequest(c, "a valid email is required")
		case errors.Is(err, service.ErrMessageRequired):
			response.BadRequest(c, "message is required")
		default:
			response.Internal(c, "failed to submit message")
		}
		return
	}
	finishForm(c, "/contact", gin.H{"submitted": true, "message": "Thanks for reaching out. We'll get back to you soon."})
}

// SubscribeNewsletter records a subscription. An address already on
// file, active or not, reads as already subscribed.
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	created, err := h.IntakeService.SubscribeNewsletter(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrEmailRequired) || errors.Is(err, service.ErrEmailInvalid) {
			response.BadRequest(c, "a valid email is required")
			return
		}
		response.Internal(c, "failed to subscribe")
		return
	}
	message := "You're subscribed. Welcome aboard."
	if !created {
		message = "You're already subscribed."
	}
	finishForm(c, "/", gin.H{"subscribed": created, "message": message})
}

// UnsubscribeNewsletter deactivates a subscription, idempotently.
func (h *Handler) UnsubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.IntakeService.UnsubscribeNewsletter(req.Email); err != nil {
		if errors.Is(err, service.ErrEmailRequired) || errors.Is(err, service.ErrEmailInvalid) {
			response.BadRequest(c, "a valid email is required")
			return
		}
		response.Internal(c, "failed to unsubscribe")
		return
	}
	response.Success(c, gin.H{"unsubscribed": true})
}
