package notifier

import (
	"context"
	"fmt"
	"html"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/shared/mailer"
)

const welcomeSubject = "Welcome aboard"

// WelcomeMailer sends a welcome email to newly registered users.
type WelcomeMailer struct {
	mailer *mailer.Mailer
}

// NewWelcomeMailer creates a WelcomeMailer on top of m.
func NewWelcomeMailer(m *mailer.Mailer) *WelcomeMailer {
	return &WelcomeMailer{mailer: m}
}

// SendWelcome sends the welcome email. The context is unused because gomail
// has no cancellation support.
func (w *WelcomeMailer) SendWelcome(_ context.Context, user *model.User) error {
	name := html.EscapeString(user.DisplayName())

	htmlBody := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account has been created. You can now sign in with %s.</p>
		<p>Thank you!</p>
	`, name, html.EscapeString(user.Email))
	textBody := fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now sign in with %s.\n\nThank you!\n",
		user.DisplayName(), user.Email)

	return w.mailer.SendHTML([]string{user.Email}, welcomeSubject, htmlBody, textBody)
}
