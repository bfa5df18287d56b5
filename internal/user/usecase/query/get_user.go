package query

import (
	"context"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// GetUserQuery represents the query to get a user by display ID
type GetUserQuery struct {
	UserID string
}

// GetUserHandler handles get user query
type GetUserHandler struct {
	repo domain.UserRepository
}

// NewGetUserHandler creates a new get user handler
func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(ctx context.Context, query GetUserQuery) (*domain.User, error) {
	if query.UserID == "" {
		return nil, apperr.Validation("userID is required.")
	}
	return h.repo.FindByUserID(ctx, query.UserID)
}

// UserExistsHandler answers the public existence probe
type UserExistsHandler struct {
	repo domain.UserRepository
}

func NewUserExistsHandler(repo domain.UserRepository) *UserExistsHandler {
	return &UserExistsHandler{repo: repo}
}

func (h *UserExistsHandler) Handle(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, apperr.Validation("userID is required.")
	}
	_, err := h.repo.FindByUserID(ctx, userID)
	if err == nil {
		return true, nil
	}
	if apperr.Is(err, apperr.KindNotFound) {
		return false, nil
	}
	return false, err
}

// CountUsersHandler returns the number of registered accounts
type CountUsersHandler struct {
	repo domain.UserRepository
}

func NewCountUsersHandler(repo domain.UserRepository) *CountUsersHandler {
	return &CountUsersHandler{repo: repo}
}

func (h *CountUsersHandler) Handle(ctx context.Context) (int64, error) {
	return h.repo.Count(ctx)
}
