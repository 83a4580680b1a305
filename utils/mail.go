package utils

import (
	"context"
	"donow/models"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SignupNotifier is told about every successfully registered user.
type SignupNotifier interface {
	NotifySignup(ctx context.Context, user models.User) error
}

type NopNotifier struct{}

func (NopNotifier) NotifySignup(context.Context, models.User) error { return nil }

// SendGridNotifier mails an operator address through SendGrid.
type SendGridNotifier struct {
	client *sendgrid.Client
	from   *mail.Email
	to     *mail.Email
}

func NewSendGridNotifier(apiKey, from, to string) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Donow", from),
		to:     mail.NewEmail("", to),
	}
}

func (n *SendGridNotifier) NotifySignup(ctx context.Context, user models.User) error {
	return n.send(ctx, SignupMessage(n.from, n.to, user))
}

// SendTest sends a fixed message, used to check the SendGrid setup.
func (n *SendGridNotifier) SendTest(ctx context.Context) error {
	plain := "and easy to do anywhere, even with Go"
	message := mail.NewSingleEmail(n.from, "Donow mail check", n.to, plain, "<strong>"+plain+"</strong>")
	return n.send(ctx, message)
}

func (n *SendGridNotifier) send(ctx context.Context, message *mail.SGMailV3) error {
	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected email: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func SignupMessage(from, to *mail.Email, user models.User) *mail.SGMailV3 {
	subject := "New Donow account"
	plainTextContent := fmt.Sprintf("A new account was registered: %s (id %d)", user.Username, user.ID)
	htmlContent := fmt.Sprintf("<strong>A new account was registered:</strong> %s (id %d)", html.EscapeString(user.Username), user.ID)
	return mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
}
