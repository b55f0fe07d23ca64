package notifier

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
	"github.com/vasapolrittideah/account-api/shared/mailer"
)

type recordingSender struct {
	messages []*gomail.Message
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	s.messages = append(s.messages, m...)
	return nil
}

func TestWelcomeMailer_SendWelcome(t *testing.T) {
	sender := &recordingSender{}
	m := mailer.NewMailerWithSender(mailer.Config{Host: "smtp", Port: 25, From: "noreply@example.com"}, sender)
	w := NewWelcomeMailer(m)

	name := "<Ada>"
	err := w.SendWelcome(context.Background(), &model.User{Email: "a@x.com", FirstName: &name})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{welcomeSubject}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<p>Hi <Ada>")
}
