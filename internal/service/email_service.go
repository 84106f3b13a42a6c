package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/aevi-next/internal/config"
)

// EmailService delivers storefront notifications over SMTP.
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates the email service.
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SetConfig swaps the runtime SMTP settings.
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.cfg = cfg
}

// ContactNoticeInput is a contact-form lead bound for the staff inbox.
type ContactNoticeInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SendContactNotice forwards a lead to the configured staff address.
func (s *EmailService) SendContactNotice(input ContactNoticeInput) error {
	if s.cfg == nil || strings.TrimSpace(s.cfg.ContactTo) == "" {
		return ErrEmailServiceNotConfigured
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = "General enquiry"
	}
	subject = fmt.Sprintf("New contact message: %s", subject)
	body := fmt.Sprintf("From: %s <%s>\n", strings.TrimSpace(input.Name), strings.TrimSpace(input.Email))
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		body += fmt.Sprintf("Phone: %s\n", phone)
	}
	body += "\n" + input.Message
	return s.sendTextEmail(s.cfg.ContactTo, subject, body)
}

// SendNewsletterWelcome greets a new subscriber.
func (s *EmailService) SendNewsletterWelcome(toEmail string) error {
	subject := "Welcome to the AEVI newsletter"
	body := "Thanks for subscribing.\n\nYou will hear from us when new products and offers land. You can unsubscribe at any time from your account page."
	return s.sendTextEmail(toEmail, subject, body)
}

// SendAccountConfirm sends the confirmation link for a fresh account.
func (s *EmailService) SendAccountConfirm(toEmail, token string) error {
	subject := "Confirm your AEVI account"
	body := fmt.Sprintf("Welcome to AEVI.\n\nConfirm your email address by visiting:\n%s\n\nIf you did not create this account, ignore this message.", s.buildLink("/confirm", token))
	return s.sendTextEmail(toEmail, subject, body)
}

// SendPasswordReset sends the reset link.
func (s *EmailService) SendPasswordReset(toEmail, token string) error {
	subject := "Reset your AEVI password"
	body := fmt.Sprintf("A password reset was requested for this address.\n\nSet a new password by visiting:\n%s\n\nThe link expires shortly. If you did not request this, ignore this message.", s.buildLink("/reset-password", token))
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) buildLink(path, token string) string {
	base := "http://localhost:8080"
	if s.cfg != nil && strings.TrimSpace(s.cfg.SiteURL) != "" {
		base = strings.TrimRight(strings.TrimSpace(s.cfg.SiteURL), "/")
	}
	return fmt.Sprintf("%s%s?token=%s", base, path, token)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrEmailInvalid
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return normalizeEmailSendError(sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	if s.cfg.UseTLS {
		return normalizeEmailSendError(sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
	}
	return normalizeEmailSendError(sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg)))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}

	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func normalizeEmailSendError(err error) error {
	if err == nil {
		return nil
	}
	if isEmailRecipientRejected(err) {
		return ErrEmailRecipientRejected
	}
	return err
}

func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	if message == "" {
		return false
	}
	directKeywords := []string{
		"no such recipient",
		"no such user",
		"recipient not found",
		"recipient address rejected",
		"invalid recipient",
		"user unknown",
		"unknown user",
		"unknown mailbox",
		"mailbox unavailable",
	}
	for _, keyword := range directKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	if strings.Contains(message, "550") {
		hints := []string{"recipient", "user", "mailbox", "address", "rcpt"}
		for _, hint := range hints {
			if strings.Contains(message, hint) {
				return true
			}
		}
	}
	return false
}
