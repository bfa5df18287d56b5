package command

import (
	"context"
	"strings"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// UpdateUserCommand is an admin edit; nil fields are left untouched
type UpdateUserCommand struct {
	UserID      string
	Username    *string
	Email       *string
	Role        *string
	Address     *string
	PhoneNumber *string
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	repo domain.UserRepository
}

// NewUpdateUserHandler creates a new update user handler
func NewUpdateUserHandler(repo domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{repo: repo}
}

// Handle applies the patch. The display ID itself is never reassigned.
func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	if cmd.UserID == "" {
		return nil, apperr.Validation("user id is required")
	}

	user, err := h.repo.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Username != nil {
		name := strings.TrimSpace(*cmd.Username)
		if name == "" {
			return nil, apperr.Validation("username must not be empty")
		}
		user.Username = name
	}
	if cmd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*cmd.Email))
		if email == "" {
			return nil, apperr.Validation("email must not be empty")
		}
		user.Email = email
	}
	if cmd.Role != nil {
		if !domain.ValidRole(*cmd.Role) {
			return nil, apperr.Validation("invalid role")
		}
		user.Role = *cmd.Role
	}
	if cmd.Address != nil {
		user.Address = strings.TrimSpace(*cmd.Address)
	}
	if cmd.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*cmd.PhoneNumber)
	}

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAddressCommand is the caller's own delivery details
type UpdateAddressCommand struct {
	UserID      string
	Address     string
	PhoneNumber string
}

type UpdateAddressHandler struct {
	repo domain.UserRepository
}

func NewUpdateAddressHandler(repo domain.UserRepository) *UpdateAddressHandler {
	return &UpdateAddressHandler{repo: repo}
}

func (h *UpdateAddressHandler) Handle(ctx context.Context, cmd UpdateAddressCommand) (*domain.User, error) {
	address := strings.TrimSpace(cmd.Address)
	phone := strings.TrimSpace(cmd.PhoneNumber)
	if address == "" || phone == "" {
		return nil, apperr.Validation("Address and phone number are required")
	}

	user, err := h.repo.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	user.Address = address
	user.PhoneNumber = phone

	if err := h.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
