package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tentwenty/ticktock/internal/domain"
)

// Session is the persisted login state: the bearer token plus the user it
// belongs to. It survives restarts the way the original client kept both
// in browser storage.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Store holds the current session in memory and mirrors it to a JSON file.
// A missing, malformed, or expired session file is treated as logged out
// rather than an error.
type Store struct {
	mu      sync.Mutex
	path    string
	current *Session
	now     func() time.Time
}

// Open loads the session store backed by the given file path.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	if err := s.restore(); err != nil {
		return nil, err
	}
	return s, nil
}

// restore reads the persisted session, discarding anything unusable.
func (s *Store) restore() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		// Corrupt session data: drop it and start logged out.
		_ = os.Remove(s.path)
		return nil
	}
	if TokenExpired(sess.Token, s.now()) {
		_ = os.Remove(s.path)
		return nil
	}
	s.current = &sess
	return nil
}

// Current returns the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	sess := *s.current
	return &sess
}

// LoggedIn reports whether a session is active.
func (s *Store) LoggedIn() bool {
	return s.Current() != nil
}

// Set stores a new session and persists it.
func (s *Store) Set(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{Token: token, User: user}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear drops the session from memory and disk. Safe when already logged out.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	_ = os.Remove(s.path)
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Invalidate implements api.TokenSource: called on a 401, it forces
// re-authentication by clearing the persisted session.
func (s *Store) Invalidate() {
	s.Clear()
}
