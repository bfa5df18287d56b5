package command

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	seqdomain "github.com/tair/nutribakery/internal/sequence/domain"
	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/apperr"
	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/logger"
)

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
	ids  domain.IDAllocator
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository, ids domain.IDAllocator) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, ids: ids}
}

// Handle validates the signup, allocates an NBU_ display ID and stores the bcrypt hash
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	cmd.Username = strings.TrimSpace(cmd.Username)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	cmd.PhoneNumber = strings.TrimSpace(cmd.PhoneNumber)

	// Validation
	if cmd.Username == "" {
		return nil, apperr.Validation("username is required")
	}
	if cmd.Email == "" {
		return nil, apperr.Validation("email is required")
	}
	if _, err := mail.ParseAddress(cmd.Email); err != nil {
		return nil, apperr.Validation("email is invalid")
	}
	if len(cmd.Password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}
	if cmd.PhoneNumber == "" {
		return nil, apperr.Validation("phone number is required")
	}

	// Check if user already exists
	if existing, _ := h.repo.FindByEmail(ctx, cmd.Email); existing != nil {
		return nil, apperr.Conflict("User with this email already exists", nil)
	}
	if existing, _ := h.repo.FindByUsername(ctx, cmd.Username); existing != nil {
		return nil, apperr.Conflict("User with this username already exists", nil)
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := h.ids.Allocate(ctx, seqdomain.PrefixUser)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserID:      userID,
		Username:    cmd.Username,
		Email:       cmd.Email,
		Password:    hashedPassword,
		Role:        domain.RoleUser,
		PhoneNumber: cmd.PhoneNumber,
	}
	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("user_id", user.UserID).
		Str("username", user.Username).
		Msg("User registered")
	return user, nil
}
