package command

import (
	"context"
	"strings"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/logger"
)

// PromoteUserCommand makes the named account an admin
type PromoteUserCommand struct {
	Username string
}

// PromoteUserHandler handles admin promotion
type PromoteUserHandler struct {
	repo domain.UserRepository
}

// NewPromoteUserHandler creates a new promote user handler
func NewPromoteUserHandler(repo domain.UserRepository) *PromoteUserHandler {
	return &PromoteUserHandler{repo: repo}
}

// Handle is idempotent: promoting an admin again succeeds without a write
func (h *PromoteUserHandler) Handle(ctx context.Context, cmd PromoteUserCommand) (*domain.User, error) {
	username := strings.TrimSpace(cmd.Username)
	if username == "" {
		return nil, apperr.Validation("username is required")
	}

	user, err := h.repo.FindByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("User " + username + " not found.")
		}
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}

	user.Role = domain.RoleAdmin
	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx).Str("user_id", user.UserID).Msg("User promoted to admin")
	return user, nil
}
