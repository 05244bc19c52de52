package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	jwtsvc "venueops/internal/pkg/jwt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)
	return NewService("manager", string(hash), jwtsvc.New("test-secret", time.Hour))
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login("manager", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtsvc.New("test-secret", time.Hour).ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "manager", claims.Login)
	assert.Equal(t, "manager", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login("manager", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownLogin(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login("intruder", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_NoHashConfigured(t *testing.T) {
	svc := NewService("manager", "", jwtsvc.New("test-secret", time.Hour))

	_, err := svc.Login("manager", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
