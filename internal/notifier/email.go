package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"fxsentinel/internal/logger"
	"fxsentinel/internal/model"
)

// Message is one outbound plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Transport delivers a single message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// DeliveryError reports a failed alert delivery.
type DeliveryError struct {
	Recipient string
	Reason    string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver alert to %q: %s", e.Recipient, e.Reason)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// EmailNotifier formats trade alerts and hands them to a Transport.
type EmailNotifier struct {
	From      string
	Transport Transport
}

// NewEmailNotifier creates a notifier sending as from.
func NewEmailNotifier(from string, transport Transport) *EmailNotifier {
	return &EmailNotifier{From: from, Transport: transport}
}

// Notify sends exactly one alert for the report. There is no retry: a
// failure comes back as a *DeliveryError.
func (n *EmailNotifier) Notify(ctx context.Context, report model.SignalReport, latestClose float64, risk model.RiskLevels, recipient string) error {
	if recipient == "" {
		return &DeliveryError{Reason: "no recipient configured"}
	}
	msg := Message{
		From:    n.From,
		To:      recipient,
		Subject: FormatAlertSubject(report.Decision),
		Body:    FormatAlertBody(report, latestClose, risk),
	}
	if err := n.Transport.Send(ctx, msg); err != nil {
		return &DeliveryError{Recipient: recipient, Reason: err.Error(), Err: err}
	}
	logger.L().Info().
		Str("recipient", recipient).
		Str("decision", string(report.Decision)).
		Msg("trade alert sent")
	return nil
}

// SMTPTransport delivers mail over an authenticated SMTP session. gomail
// upgrades the connection with STARTTLS when the server offers it and only
// authenticates over an encrypted connection.
type SMTPTransport struct {
	dialer *gomail.Dialer
}

// NewSMTPTransport creates a transport for server:port with the given credentials.
func NewSMTPTransport(server string, port int, username, password string) *SMTPTransport {
	return &SMTPTransport{dialer: gomail.NewDialer(server, port, username, password)}
}

// Send opens a session, sends msg and closes the session.
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if err := t.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
