package cli

import (
	"time"

	"github.com/tentwenty/ticktock/internal/domain"
)

// timeNow is swapped in tests that pin the current week.
var timeNow = time.Now

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Logged-in user, nil before login.
	User *domain.User

	// Terminal dimensions
	Width  int
	Height int
}

// UserID returns the logged-in user's id, or 0 when logged out.
func (s *SharedState) UserID() int64 {
	if s.User == nil {
		return 0
	}
	return s.User.ID
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
