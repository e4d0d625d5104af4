package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyjourney/internal/domain"
	"skyjourney/internal/repository"
)

func newService() (*AuthService, *repository.MemStore) {
	store := repository.NewMemStore()
	return NewAuthService(store.Users()), store
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{
		Username: "ada",
		Password: "engine1843",
		Email:    "ada@example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	// Stored password is a bcrypt hash, never the plaintext.
	assert.NotEqual(t, "engine1843", user.Password)

	loggedIn, err := service.Login(ctx, "ada", "engine1843")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "ada", Password: "engine1843", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = service.Login(ctx, "ada", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	service, _ := newService()

	_, err := service.Login(context.Background(), "nobody", "whatever")
	// Unknown user and bad password are indistinguishable to the caller.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{Username: "ada", Password: "engine1843", Email: "ada@example.com"})
	require.NoError(t, err)

	_, err = service.Register(ctx, RegisterInput{Username: "ada", Password: "different1", Email: "other@example.com"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestAuthService_Register_Validation(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	testCases := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{
			name:  "short username",
			input: RegisterInput{Username: "ab", Password: "engine1843", Email: "a@example.com"},
			field: "username",
		},
		{
			name:  "short password",
			input: RegisterInput{Username: "ada", Password: "12345", Email: "a@example.com"},
			field: "password",
		},
		{
			name:  "bad email",
			input: RegisterInput{Username: "ada", Password: "engine1843", Email: "not-an-email"},
			field: "email",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(ctx, tc.input)

			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
}

func TestAuthService_Register_NeverCreatesAdmins(t *testing.T) {
	service, store := newService()
	ctx := context.Background()

	user, err := service.Register(ctx, RegisterInput{Username: "mallory", Password: "letmein1", Email: "m@example.com"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)

	stored, err := store.GetByUsername(ctx, "mallory")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, stored.Role)
}
