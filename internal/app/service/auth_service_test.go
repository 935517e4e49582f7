package service

import (
	"context"
	"testing"
	"time"

	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/internal/db"
	"github.com/delishapp/delish-backend/internal/session"
	"github.com/delishapp/delish-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *session.MemoryStore) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	sessions := session.NewMemoryStore(time.Hour)
	authService := NewAuthService(userRepo, sessions, util.NewBcryptVerifier())

	return authService, sessions
}

func TestAuthService_Register(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			email:    "test@example.com",
			password: "password123",
			userName: "Test User",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			email:    "test@example.com",
			password: "password456",
			userName: "Another User",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, sess, err := authService.Register(ctx, tt.email, tt.password, tt.userName)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, sess)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, sess)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.NotEmpty(t, sess.Token)
				assert.Equal(t, user.ID, sess.UserID)

				// Password is stored hashed, never verbatim.
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.True(t, util.VerifyPassword(user.PasswordHash, tt.password))
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService, sessions := setupAuthServiceTest(t)
	ctx := context.Background()

	email := "test@example.com"
	password := "password123"
	_, _, err := authService.Register(ctx, email, password, "Test User")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid credentials",
			email:    email,
			password: password,
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    email,
			password: "wrong-password",
			wantErr:  ErrInvalidCredentials,
		},
		{
			// Same error as a wrong password: the caller cannot probe for
			// which accounts exist.
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, sess, err := authService.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, sess)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, sess)
				assert.Equal(t, tt.email, user.Email)

				got, err := sessions.Get(ctx, sess.Token)
				require.NoError(t, err)
				assert.Equal(t, user.ID, got.UserID)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	authService, sessions := setupAuthServiceTest(t)
	ctx := context.Background()

	_, sess, err := authService.Register(ctx, "test@example.com", "password123", "Test User")
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, sess.Token))

	_, err = sessions.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// Logging out again, or with a token that never existed, is fine.
	assert.NoError(t, authService.Logout(ctx, sess.Token))
	assert.NoError(t, authService.Logout(ctx, "no-such-token"))
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)
	ctx := context.Background()

	user, _, err := authService.Register(ctx, "test@example.com", "password123", "Test User")
	require.NoError(t, err)

	got, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
