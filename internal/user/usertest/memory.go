// Package usertest provides an in-memory account store and fakes for tests.
package usertest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/apperr"
)

// Repository is a goroutine safe in-memory domain.UserRepository
type Repository struct {
	mu     sync.Mutex
	users  map[string]domain.User
	nextID uint
}

func NewRepository(users ...domain.User) *Repository {
	r := &Repository{users: map[string]domain.User{}}
	for _, u := range users {
		u := u
		_ = r.Create(context.Background(), &u)
	}
	return r
}

func (r *Repository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserID == user.UserID || u.Email == user.Email || u.Username == user.Username {
			return apperr.Conflict("user already exists", nil)
		}
	}
	r.nextID++
	user.ID = r.nextID
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	r.users[user.UserID] = *user
	return nil
}

func (r *Repository) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

func (r *Repository) FindByUserID(_ context.Context, userID string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.UserID == userID })
}

func (r *Repository) FindByUserIDs(_ context.Context, userIDs []string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, id := range userIDs {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Repository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *Repository) FindByResetToken(_ context.Context, token string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ResetToken != "" && u.ResetToken == token })
}

func (r *Repository) FindAll(_ context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return []domain.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *Repository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UserID]; !ok {
		return apperr.NotFound("user not found")
	}
	r.users[user.UserID] = *user
	return nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

// IDs allocates NBU_001, NBU_002, ... without a database
type IDs struct {
	mu   sync.Mutex
	next int
}

func (a *IDs) Allocate(_ context.Context, prefix string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.next++
	return fmt.Sprintf("%s_%03d", prefix, a.next), nil
}
