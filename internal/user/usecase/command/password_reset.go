package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/logger"
	"github.com/tair/nutribakery/pkg/mailer"
)

// ResetTokenTTL is how long a forgot-password token stays valid
const ResetTokenTTL = time.Hour

var ErrInvalidResetToken = apperr.Validation("Invalid or expired token")

// ForgotPasswordHandler issues a reset token and mails it to the account
type ForgotPasswordHandler struct {
	repo   domain.UserRepository
	mailer mailer.Sender
	now    func() time.Time
}

func NewForgotPasswordHandler(repo domain.UserRepository, sender mailer.Sender) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{repo: repo, mailer: sender, now: time.Now}
}

// Handle stores the token before mailing it; a mail failure is returned and the token stays valid
func (h *ForgotPasswordHandler) Handle(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperr.Validation("email is required")
	}

	user, err := h.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.NotFound("User not found")
		}
		return err
	}

	token := uuid.NewString()
	expires := h.now().Add(ResetTokenTTL)
	user.ResetToken = token
	user.ResetExpires = &expires
	if err := h.repo.Update(ctx, user); err != nil {
		return err
	}

	err = h.mailer.Send(ctx, mailer.Message{
		To:       []string{user.Email},
		Subject:  "Password Reset",
		TextBody: "Please use the following token to reset your password: " + token,
	})
	if err != nil {
		return apperr.External("Error sending reset email", err)
	}

	logger.Info(ctx).Str("user_id", user.UserID).Msg("Password reset token issued")
	return nil
}

type ResetPasswordCommand struct {
	Token       string
	NewPassword string
}

// ResetPasswordHandler swaps the password for a valid reset token and burns the token
type ResetPasswordHandler struct {
	repo domain.UserRepository
	now  func() time.Time
}

func NewResetPasswordHandler(repo domain.UserRepository) *ResetPasswordHandler {
	return &ResetPasswordHandler{repo: repo, now: time.Now}
}

func (h *ResetPasswordHandler) Handle(ctx context.Context, cmd ResetPasswordCommand) error {
	if cmd.Token == "" {
		return ErrInvalidResetToken
	}
	if len(cmd.NewPassword) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}

	user, err := h.repo.FindByResetToken(ctx, cmd.Token)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if !user.ResetValid(cmd.Token, h.now()) {
		return ErrInvalidResetToken
	}

	hashed, err := auth.HashPassword(cmd.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetExpires = nil
	if err := h.repo.Update(ctx, user); err != nil {
		return err
	}

	logger.Info(ctx).Str("user_id", user.UserID).Msg("Password reset")
	return nil
}
