package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhive/internal/domain/entity"
	"taskhive/pkg/errors"
)

type fakeAuthClient struct {
	seq      int
	byToken  map[string]string // token -> uid
	byEmail  map[string]string // email -> uid
	signInFn func(email, password string) (string, error)
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		byToken: make(map[string]string),
		byEmail: make(map[string]string),
	}
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.seq++
	uid := fmt.Sprintf("uid-%d", f.seq)
	f.byEmail[email] = uid
	return uid, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := f.byToken[token]
	if !ok {
		return "", errors.Unauthorized("Invalid token", nil)
	}
	return uid, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.signInFn != nil {
		return f.signInFn(email, password)
	}
	uid, ok := f.byEmail[email]
	if !ok {
		return "", errors.Unauthorized("Invalid credentials", nil)
	}
	token := "token-" + uid
	f.byToken[token] = uid
	return token, nil
}

func (f *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	return nil
}

func TestRegister(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewAuthUseCase(userRepo, newFakeAuthClient())

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
		Name:     "Dev",
		Role:     entity.RoleFreelancer,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, entity.RoleFreelancer, result.User.Role)

	stored, err := userRepo.GetByEmail(context.Background(), "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, stored.ID)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), newFakeAuthClient())

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
		Role:     "admin",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "uid-0", Email: "taken@example.com"})
	uc := NewAuthUseCase(userRepo, newFakeAuthClient())

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Password: "hunter2hunter2",
		Role:     entity.RoleTaskPoster,
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	authClient := newFakeAuthClient()
	uc := NewAuthUseCase(userRepo, authClient)
	ctx := context.Background()

	registered, err := uc.Register(ctx, RegisterInput{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
		Name:     "Dev",
		Role:     entity.RoleFreelancer,
	})
	require.NoError(t, err)

	result, err := uc.Login(ctx, "dev@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLoginBadCredentials(t *testing.T) {
	authClient := newFakeAuthClient()
	authClient.signInFn = func(email, password string) (string, error) {
		return "", errors.Unauthorized("Invalid credentials", nil)
	}
	uc := NewAuthUseCase(newFakeUserRepo(), authClient)

	_, err := uc.Login(context.Background(), "dev@example.com", "wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}
