package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tentwenty/ticktock/internal/config"
	"github.com/tentwenty/ticktock/internal/domain"
)

// stubTokens is a TokenSource backed by a plain string.
type stubTokens struct {
	token       string
	invalidated bool
}

func (s *stubTokens) Token() string { return s.token }
func (s *stubTokens) Invalidate()   { s.invalidated = true; s.token = "" }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (Client, *stubTokens) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.BaseURL = srv.URL
	tokens := &stubTokens{token: token}
	return NewClient(cfg, tokens, NoopObserver{}), tokens
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "jane@tentwenty.me", creds["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": 7, "name": "Jane", "email": "jane@tentwenty.me"},
		})
	}, "")

	res, err := client.Login(context.Background(), "jane@tentwenty.me", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", res.Token)
	assert.Equal(t, int64(7), res.User.ID)
	assert.Equal(t, "Jane", res.User.Name)
}

func TestProfile_AttachesBearerToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.User{ID: 1, Name: "Jane"})
	}, "tok-abc")

	u, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
}

func TestAuthenticatedCall_WithoutTokenShortCircuits(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "")

	_, err := client.Profile(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, called)
}

func TestUnauthorized_InvalidatesTokenSource(t *testing.T) {
	client, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "stale-token")

	_, err := client.ListTimesheets(context.Background(), 0)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.True(t, tokens.invalidated)
	assert.Empty(t, tokens.Token())
}

func TestListTimesheets_UnwrapsDataEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timesheets", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("userId"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []any{
				map[string]any{"id": 4, "weekStarting": "2024-06-03", "weekEnding": "2024-06-09", "totalHours": 16},
			},
		})
	}, "tok")

	sheets, err := client.ListTimesheets(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, int64(4), sheets[0].ID)
	assert.Equal(t, 16.0, sheets[0].TotalHours)
}

func TestUpdateTimesheet_SendsFullStateToIDPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/timesheets/12", r.URL.Path)

		var ts domain.Timesheet
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ts))
		assert.Equal(t, 8.0, ts.TotalHours)
		require.Len(t, ts.Entries, 1)

		json.NewEncoder(w).Encode(map[string]any{"data": ts})
	}, "tok")

	ts := &domain.Timesheet{
		ID: 12, WeekStarting: "2024-06-03", WeekEnding: "2024-06-09",
		TotalHours: 8,
		Entries:    []domain.TimeEntry{{ID: "e1", Date: "2024-06-03", Project: "p", Description: "d", Hours: 8}},
	}
	updated, err := client.UpdateTimesheet(context.Background(), ts)
	require.NoError(t, err)
	assert.Equal(t, int64(12), updated.ID)
}

func TestServerError_SurfacesMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "database is down"})
	}, "tok")

	_, err := client.GetTimesheet(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Contains(t, err.Error(), "database is down")
	assert.Contains(t, err.Error(), "500")
}

func TestTransportFailure_IsNetworkError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BaseURL = "http://127.0.0.1:1" // nothing listens here
	client := NewClient(cfg, &stubTokens{token: "tok"}, NoopObserver{})

	_, err := client.ListTimesheets(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteTimesheet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/timesheets/5", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
	}, "tok")

	assert.NoError(t, client.DeleteTimesheet(context.Background(), 5))
}
