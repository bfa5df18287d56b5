package query

import (
	"context"

	"github.com/tair/nutribakery/internal/user/domain"
)

// PageSize is the fixed admin user listing page size
const PageSize = 8

// ListUsersQuery represents the query to list users, Page is 1-based
type ListUsersQuery struct {
	Page int
}

type UserPage struct {
	Users       []domain.User `json:"users"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int64         `json:"total"`
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(ctx context.Context, query ListUsersQuery) (*UserPage, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := h.repo.FindAll(ctx, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}

	return &UserPage{
		Users:       users,
		TotalPages:  int((total + PageSize - 1) / PageSize),
		CurrentPage: page,
		Total:       total,
	}, nil
}
