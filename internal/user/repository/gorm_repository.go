package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tair/nutribakery/internal/user/domain"
	"github.com/tair/nutribakery/pkg/database"
)

const entity = "user"

// GormUserRepository implements UserRepository interface using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user; duplicate user_id, username or email surface as Conflict
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	return database.MapError(r.db.WithContext(ctx).Create(user).Error, entity)
}

func (r *GormUserRepository) findOne(ctx context.Context, column string, value interface{}) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&user).Error; err != nil {
		return nil, database.MapError(err, entity)
	}
	return &user, nil
}

// FindByUserID retrieves a user by display ID
func (r *GormUserRepository) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, "user_id", userID)
}

// FindByUserIDs retrieves every user whose display ID is listed; unknown IDs are skipped
func (r *GormUserRepository) FindByUserIDs(ctx context.Context, userIDs []string) ([]domain.User, error) {
	var users []domain.User
	if len(userIDs) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&users).Error
	return users, database.MapError(err, entity)
}

// FindByUsername retrieves a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username", username)
}

// FindByEmail retrieves a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email", email)
}

// FindByResetToken retrieves the user holding a password reset token
func (r *GormUserRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, "reset_token", token)
}

// FindAll retrieves users in signup order with pagination
func (r *GormUserRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	query := r.db.WithContext(ctx).Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&users).Error
	return users, database.MapError(err, entity)
}

// Update saves every column of user
func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	return database.MapError(r.db.WithContext(ctx).Save(user).Error, entity)
}

// Count returns the total number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, database.MapError(err, entity)
}

// AutoMigrate runs database migrations
func (r *GormUserRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.User{})
}
