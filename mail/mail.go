package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"

	"hackacure-backend/log"
)

type Mailer struct {
	mg   *mailgun.MailgunImpl
	from string
}

// New returns nil when no domain is configured; a nil Mailer skips sending.
func New(domain, apiKey, from string) *Mailer {
	if domain == "" || apiKey == "" {
		log.Logger.Info("mailgun not configured, welcome emails disabled")
		return nil
	}

	return &Mailer{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

// SendWelcome mails signup confirmation to a freshly registered team.
func (m *Mailer) SendWelcome(ctx context.Context, to, name, teamName string) error {
	if m == nil {
		return nil
	}

	subject := "Welcome to HackACure"
	body := fmt.Sprintf(
		"Hi %s,\n\nteam %q is registered. You have 10 evaluation submissions, spend them wisely.\n",
		name, teamName,
	)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := m.mg.NewMessage(m.from, subject, body, to)
	_, _, err := m.mg.Send(ctx, msg)
	if err != nil {
		log.Logger.Error("error sending email", zap.Error(err), zap.String("to", to))
		return err
	}

	return nil
}
