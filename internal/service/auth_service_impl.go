package service

import (
	"context"
	"fmt"

	"github.com/tentwenty/ticktock/internal/api"
	"github.com/tentwenty/ticktock/internal/domain"
	"github.com/tentwenty/ticktock/internal/session"
)

type authService struct {
	client   api.Client
	sessions *session.Store
}

func NewAuthService(client api.Client, sessions *session.Store) AuthService {
	return &authService{client: client, sessions: sessions}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	if err := s.sessions.Set(res.Token, res.User); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	user := res.User
	return &user, nil
}

func (s *authService) Profile(ctx context.Context) (*domain.User, error) {
	user, err := s.client.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return user, nil
}

func (s *authService) Logout() {
	s.sessions.Clear()
}

func (s *authService) CurrentUser() *domain.User {
	sess := s.sessions.Current()
	if sess == nil {
		return nil
	}
	user := sess.User
	return &user
}
