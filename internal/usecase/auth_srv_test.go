package usecase

import (
	"context"
	"testing"

	"travel-agency/internal/data/entity"
	"travel-agency/internal/data/repository"
	"travel-agency/internal/dto/request"
	"travel-agency/internal/dto/response"
	"travel-agency/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestService(users *fakeUserRepo) AuthService {
	return NewAuthService(&repository.Repository{User: users}, testConfig(), nop)
}

func storedUser(t *testing.T, id int64, email, password string, role entity.UserRole) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entity.User{BaseSimple: entity.BaseSimple{ID: id}, Name: "Sara", Email: email, PasswordHash: hash, Role: role}
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthTestService(users)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     " Sara ",
		Email:    "Sara@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "sara@example.com", resp.User.Email)
	assert.Equal(t, "Sara", resp.User.Name)
	assert.Equal(t, entity.RoleCustomer, resp.User.Role)

	claims, err := utils.ParseToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	require.Len(t, users.created, 1)
	assert.NotEqual(t, "secret123", users.created[0].PasswordHash)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Other",
		Email:    "sara@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.EqualError(t, err, "email already registered")
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthTestService(newFakeUserRepo())
	_, err := svc.Register(context.Background(), &request.RegisterRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo(
		storedUser(t, 1, "sara@example.com", "secret123", entity.RoleCustomer),
		storedUser(t, 2, "admin@example.com", "admin-pass", entity.RoleAdmin),
	)
	svc := newAuthTestService(users)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func(context.Context, *request.LoginRequest) error
		req     request.LoginRequest
		wantErr error
	}{
		{"customer login", login(svc.Login), request.LoginRequest{Email: "sara@example.com", Password: "secret123"}, nil},
		{"wrong password", login(svc.Login), request.LoginRequest{Email: "sara@example.com", Password: "nope"}, ErrInvalidCredentials},
		{"unknown email", login(svc.Login), request.LoginRequest{Email: "ghost@example.com", Password: "secret123"}, ErrInvalidCredentials},
		{"admin on customer login", login(svc.Login), request.LoginRequest{Email: "admin@example.com", Password: "admin-pass"}, ErrInvalidCredentials},
		{"admin login", login(svc.AdminLogin), request.LoginRequest{Email: "admin@example.com", Password: "admin-pass"}, nil},
		{"customer on admin login", login(svc.AdminLogin), request.LoginRequest{Email: "sara@example.com", Password: "secret123"}, ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(ctx, &tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func login(fn func(context.Context, *request.LoginRequest) (*response.AuthResponse, error)) func(context.Context, *request.LoginRequest) error {
	return func(ctx context.Context, req *request.LoginRequest) error {
		_, err := fn(ctx, req)
		return err
	}
}

func TestEnsureAdmin(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthTestService(users)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "Admin@Example.com", "admin-pass"))
	require.Len(t, users.created, 1)
	assert.Equal(t, entity.RoleAdmin, users.created[0].Role)
	assert.Equal(t, "admin@example.com", users.created[0].Email)

	// second start keeps the existing account
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@example.com", "other"))
	assert.Len(t, users.created, 1)

	require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
	assert.Len(t, users.created, 1)
}
