package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/mailer"
)

type Store interface {
	Create(ctx context.Context, msg *Message) error
	List(ctx context.Context, limit int) ([]Message, error)
	MarkRead(ctx context.Context, id uint) error
}

// Service persists submissions and forwards them to the shop inbox
type Service struct {
	repo   Store
	mailer mailer.Sender
	inbox  string
}

func NewService(repo Store, sender mailer.Sender, inbox string) *Service {
	return &Service{repo: repo, mailer: sender, inbox: inbox}
}

// Submit stores the message first. A failed notification fails the request but the row stays.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Message, error) {
	msg := &Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, apperr.Validation("name, email, subject and message are required")
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return nil, apperr.Validation("email is invalid")
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	err := s.mailer.Send(ctx, mailer.Message{
		To:       []string{s.inbox},
		ReplyTo:  msg.Email,
		Subject:  "New Contact Form Submission: " + msg.Subject,
		TextBody: fmt.Sprintf("You have received a new message from %s (%s):\n\n%s", msg.Name, msg.Email, msg.Message),
	})
	if err != nil {
		logger.Error(ctx).Err(err).Uint("message_id", msg.ID).Msg("Contact notification failed")
		return nil, apperr.External("Failed to save message or send email", err)
	}

	logger.Info(ctx).Uint("message_id", msg.ID).Str("subject", msg.Subject).Msg("Contact message received")
	return msg, nil
}

func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.list(ctx, 0)
}

func (s *Service) Recent(ctx context.Context) ([]Message, error) {
	return s.list(ctx, RecentLimit)
}

func (s *Service) list(ctx context.Context, limit int) ([]Message, error) {
	msgs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

func (s *Service) MarkRead(ctx context.Context, id uint) error {
	if id == 0 {
		return apperr.Validation("invalid message id")
	}
	return s.repo.MarkRead(ctx, id)
}
