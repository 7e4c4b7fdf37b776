package user

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	r.nextID++
	u.ID = r.nextID
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	if _, ok := r.byEmail[email]; ok {
		return 1, nil
	}
	return 0, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	created, err := svc.Register(context.Background(), "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotContains(t, created.PasswordHash, "s3cret-password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "another-password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	// Differently-cased email is a distinct account.
	_, err = svc.Register(context.Background(), "Alice@example.com", "s3cret-password")
	assert.NoError(t, err)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	for _, tc := range []struct{ email, password string }{
		{"", "s3cret-password"},
		{"not-an-email", "s3cret-password"},
		{"@example.com", "s3cret-password"},
		{"alice@", "s3cret-password"},
		{"alice@example.com", "short"},
	} {
		_, err := svc.Register(context.Background(), tc.email, tc.password)
		assert.ErrorIs(t, err, ErrInvalidInput, "email=%q password=%q", tc.email, tc.password)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret-password")
	require.NoError(t, err)

	authed, err := svc.Authenticate(context.Background(), "alice@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", authed.Email)

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "s3cret-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserJSONOmitsPasswordHash(t *testing.T) {
	raw, err := json.Marshal(User{ID: 1, Email: "alice@example.com", PasswordHash: "bcrypt-material"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "bcrypt-material")
	assert.NotContains(t, string(raw), "password")
}
