package user

import (
	"context"
	"errors"

	userdomain "budget-app-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *userdomain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// The unique index on email is the race backstop for
		// concurrent registrations.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return userdomain.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	var found userdomain.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
