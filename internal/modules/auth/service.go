// Package auth keeps only the session primitive the schedule API needs:
// a manager login that trades credentials for a bearer token. Accounts and
// roles are managed elsewhere.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	jwtsvc "venueops/internal/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	login        string
	passwordHash string
	jwt          *jwtsvc.Service
}

func NewService(login, passwordHash string, jwt *jwtsvc.Service) *Service {
	return &Service{login: login, passwordHash: passwordHash, jwt: jwt}
}

func (s *Service) Login(login, password string) (string, error) {
	if login != s.login || s.passwordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(login, "manager")
}
