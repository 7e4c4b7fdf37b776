package inmemory

import (
	"context"

	userdomain "budget-app-go/internal/domain/user"
)

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(ctx context.Context, u *userdomain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return userdomain.ErrEmailTaken
		}
	}

	u.ID = r.store.sequence()
	copied := *u
	r.store.users[u.ID] = &copied
	return nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.users {
		if existing.Email == email {
			copied := *existing
			return &copied, nil
		}
	}
	return nil, userdomain.ErrUserNotFound
}

func (r *userRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, existing := range r.store.users {
		if existing.Email == email {
			count++
		}
	}
	return count, nil
}
