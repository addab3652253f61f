package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/steelbuild/internal/config"
	"github.com/alexanderramin/steelbuild/internal/domain"
)

// authService resolves the operator from configuration. There is no
// session layer; the local user is always the configured one.
type authService struct {
	user config.UserConfig
}

func NewAuthService(user config.UserConfig) AuthService {
	return &authService{user: user}
}

func (s *authService) Me(context.Context) (*domain.User, error) {
	if s.user.Email == "" {
		return nil, fmt.Errorf("%w: no user configured (set STEELBUILD_USER_EMAIL)", domain.ErrValidation)
	}
	return &domain.User{Email: s.user.Email, FullName: s.user.FullName, Role: s.user.Role}, nil
}
