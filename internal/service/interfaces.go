package service

import (
	"context"

	"github.com/tentwenty/ticktock/internal/domain"
)

type AuthService interface {
	// Login authenticates against the backend and persists the session.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	// Profile fetches the authenticated user's profile.
	Profile(ctx context.Context) (*domain.User, error)
	// Logout clears the persisted session.
	Logout()
	// CurrentUser returns the session's user without a network call,
	// or nil when logged out.
	CurrentUser() *domain.User
}

type TimesheetService interface {
	List(ctx context.Context, userID int64) ([]*domain.Timesheet, error)
	Get(ctx context.Context, id int64) (*domain.Timesheet, error)
	Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	Update(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	Delete(ctx context.Context, id int64) error
}
