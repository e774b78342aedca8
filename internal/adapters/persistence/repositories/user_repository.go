package repositories

import (
	"context"

	"mylibrary/internal/adapters/persistence/models"
	"mylibrary/internal/core/domain"

	"gorm.io/gorm"
)

// UserRepository handles borrower database operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	db := dbFromContext(ctx, r.db)
	return translateError(db.Create(user).Error, domain.ErrUserNotFound)
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	db := dbFromContext(ctx, r.db)
	if err := db.First(&user, id).Error; err != nil {
		return nil, translateError(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

// Delete removes a user by ID. Deleting a non-existent ID is not an error.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)
	return translateError(db.Delete(&models.User{}, id).Error, domain.ErrUserNotFound)
}

// List returns a page of users ordered by ID with the total row count
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	db := dbFromContext(ctx, r.db)
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
