package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPicksLogSenderWithoutHost(t *testing.T) {
	assert.IsType(t, LogSender{}, New(Config{}))
	assert.IsType(t, &SMTPSender{}, New(Config{Host: "smtp.example.com", Port: 587, Username: "shop@example.com"}))
}

func TestSMTPSenderDefaultsFromToUsername(t *testing.T) {
	s := NewSMTPSender(Config{Host: "smtp.example.com", Port: 587, Username: "shop@example.com"})
	assert.Equal(t, "shop@example.com", s.from)
}

func TestMessageValidation(t *testing.T) {
	ctx := context.Background()
	sender := LogSender{}

	assert.Error(t, sender.Send(ctx, Message{Subject: "Hi", TextBody: "x"}))
	assert.Error(t, sender.Send(ctx, Message{To: []string{"a@example.com"}, TextBody: "x"}))
	assert.Error(t, sender.Send(ctx, Message{To: []string{"a@example.com"}, Subject: "Hi"}))
	assert.NoError(t, sender.Send(ctx, Message{To: []string{"a@example.com"}, Subject: "Hi", HTMLBody: "<p>x</p>"}))
}
