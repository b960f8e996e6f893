package services

import (
	"bytes"
	"fmt"
	"log"
	"mime/multipart"
	"net/smtp"
	"time"

	"fieldops-server/config"
)

// EmailSender submits a single message to the configured relay. Delivery is
// best-effort: callers log failures and move on, they never retry.
type EmailSender interface {
	Send(to, subject, textBody, htmlBody string) error
}

// SMTPEmailService sends mail through a plain SMTP relay
type SMTPEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPEmailService creates an email service from SMTP configuration
func NewSMTPEmailService(cfg config.SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send submits the message. With no SMTP host configured the service is
// disabled and Send is a logged no-op, so local setups still persist
// notifications without a relay.
func (s *SMTPEmailService) Send(to, subject, textBody, htmlBody string) error {
	if s.host == "" {
		log.Printf("📧 SMTP disabled, skipping email to %s: %s", to, subject)
		return nil
	}

	msg, err := buildMessage(s.from, to, subject, textBody, htmlBody)
	if err != nil {
		return fmt.Errorf("failed to build email message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}

// buildMessage renders RFC 822 headers plus either a plain text body or a
// multipart/alternative body when an HTML variant is supplied
func buildMessage(from, to, subject, textBody, htmlBody string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if htmlBody == "" {
		buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		buf.WriteString(textBody)
		return buf.Bytes(), nil
	}

	writer := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())

	textPart, err := writer.CreatePart(map[string][]string{
		"Content-Type": {"text/plain; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(textBody)); err != nil {
		return nil, err
	}

	htmlPart, err := writer.CreatePart(map[string][]string{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
