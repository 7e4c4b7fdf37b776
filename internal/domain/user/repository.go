package user

import "context"

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
}
