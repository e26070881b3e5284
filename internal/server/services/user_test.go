package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophstore/internal/common"
	"github.com/dmitrijs2005/gophstore/internal/server/auth"
	"github.com/dmitrijs2005/gophstore/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	c.SecretKey = "test-secret"
	c.AccessTokenValidityDuration = time.Minute
	return &c
}

func newTestUserService() (*UserService, *fakeRepoManager) {
	m := newFakeRepoManager()
	return NewUserService(nil, m, testConfig()), m
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	u, err := svc.Register(ctx, "alice@example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEmpty(t, u.Salt)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	_, err := svc.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "otherpassword")
	assert.ErrorIs(t, err, common.ErrorEmailTaken)
}

func TestUserService_Register_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"no at sign", "aliceexample.com", "password123"},
		{"no domain dot", "alice@example", "password123"},
		{"whitespace in email", "alice @example.com", "password123"},
		{"short password", "alice@example.com", "short"},
		{"empty password", "alice@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	u, err := svc.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cfg := testConfig()
	userID, err := auth.GetUserIDFromToken(token, []byte(cfg.SecretKey), cfg.TokenIssuer, cfg.TokenAudience)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	_, err := svc.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	_, err := svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, common.ErrorInvalidCredentials)
}

// Wrong password and unknown email must be indistinguishable to a caller
// probing for registered accounts.
func TestUserService_Login_FailuresIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestUserService()

	_, err := svc.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	_, errWrongPass := svc.Login(ctx, "alice@example.com", "wrongpassword")
	_, errUnknown := svc.Login(ctx, "nobody@example.com", "password123")

	require.Error(t, errWrongPass)
	require.Error(t, errUnknown)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}
