package service

import (
	"context"
	"time"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/alexanderramin/steelbuild/internal/repository"
)

type preferencesService struct {
	prefs repository.PreferencesRepo
	auth  AuthService
}

func NewPreferencesService(prefs repository.PreferencesRepo, auth AuthService) PreferencesService {
	return &preferencesService{prefs: prefs, auth: auth}
}

func (s *preferencesService) Dashboard(ctx context.Context) (*domain.DashboardPreferences, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	return s.prefs.Load(ctx, user.Email)
}

func (s *preferencesService) SetDashboard(ctx context.Context, widgets []string) (*domain.DashboardPreferences, error) {
	user, err := s.auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	p := &domain.DashboardPreferences{
		UserEmail: user.Email,
		Widgets:   widgets,
		UpdatedAt: time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.prefs.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
