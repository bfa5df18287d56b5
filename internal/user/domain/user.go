package domain

import (
	"context"
	"time"
)

// Role types
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the account entity. UserID is the NBU_ display ID every other module references.
type User struct {
	ID           uint       `json:"-" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"uniqueIndex;not null;size:32"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Password     string     `json:"-" gorm:"not null"` // Never expose password in JSON
	Role         string     `json:"role" gorm:"not null;default:'user'"`
	Address      string     `json:"address"`
	PhoneNumber  string     `json:"phone_number" gorm:"not null"`
	ResetToken   string     `json:"-" gorm:"index"`
	ResetExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// ResetValid reports whether token matches an unexpired reset request
func (u *User) ResetValid(token string, now time.Time) bool {
	return u.ResetToken != "" && u.ResetToken == token && u.ResetExpires != nil && now.Before(*u.ResetExpires)
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByUserID(ctx context.Context, userID string) (*User, error)
	FindByUserIDs(ctx context.Context, userIDs []string) ([]User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	FindAll(ctx context.Context, limit, offset int) ([]User, error)
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}

// IDAllocator hands out NBU_ display IDs
type IDAllocator interface {
	Allocate(ctx context.Context, prefix string) (string, error)
}

// TokenIssuer signs login tokens
type TokenIssuer interface {
	GenerateToken(userID, username, role string) (string, error)
}
