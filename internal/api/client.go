package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/tentwenty/ticktock/internal/config"
	"github.com/tentwenty/ticktock/internal/domain"
)

// TokenSource supplies the bearer token for authenticated calls and is
// invalidated when the backend rejects it.
type TokenSource interface {
	Token() string
	Invalidate()
}

// LoginResult is the payload returned by a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Client provides access to the timesheet backend.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Profile(ctx context.Context) (*domain.User, error)

	// ListTimesheets fetches timesheets, scoped to userID when non-zero.
	ListTimesheets(ctx context.Context, userID int64) ([]*domain.Timesheet, error)
	GetTimesheet(ctx context.Context, id int64) (*domain.Timesheet, error)
	CreateTimesheet(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	UpdateTimesheet(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	DeleteTimesheet(ctx context.Context, id int64) error
}

// httpClient implements Client over the backend's JSON REST API.
type httpClient struct {
	cfg      config.Config
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

// NewClient creates a Client for the configured backend. The token source
// may return an empty token; authenticated endpoints then fail with
// ErrNotLoggedIn without issuing a request.
func NewClient(cfg config.Config, tokens TokenSource, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
		tokens:   tokens,
		observer: observer,
	}
}

// dataEnvelope is the {"data": ...} wrapper the timesheet endpoints use.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody is the shape of backend error responses, when present.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, false, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) Profile(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, true, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) ListTimesheets(ctx context.Context, userID int64) ([]*domain.Timesheet, error) {
	path := "/timesheets"
	if userID != 0 {
		path += "?userId=" + strconv.FormatInt(userID, 10)
	}
	var out []*domain.Timesheet
	if err := c.do(ctx, http.MethodGet, path, nil, true, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *httpClient) GetTimesheet(ctx context.Context, id int64) (*domain.Timesheet, error) {
	var out domain.Timesheet
	path := "/timesheets/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, true, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) CreateTimesheet(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	var out domain.Timesheet
	if err := c.do(ctx, http.MethodPost, "/timesheets", ts, true, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) UpdateTimesheet(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	var out domain.Timesheet
	path := "/timesheets/" + strconv.FormatInt(ts.ID, 10)
	if err := c.do(ctx, http.MethodPut, path, ts, true, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) DeleteTimesheet(ctx context.Context, id int64) error {
	path := "/timesheets/" + strconv.FormatInt(id, 10)
	return c.do(ctx, http.MethodDelete, path, nil, true, false, nil)
}

// do performs one call against the backend. authed attaches the bearer
// token and maps 401 to ErrUnauthorized after clearing the token source.
// enveloped unwraps the {"data": ...} wrapper before decoding into out.
// Transport failures are retried up to cfg.MaxRetries times; HTTP error
// statuses are never retried.
func (c *httpClient) do(ctx context.Context, method, path string, body any, authed, enveloped bool, out any) error {
	start := time.Now()

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		payload = data
	}

	if authed && c.tokens.Token() == "" {
		return ErrNotLoggedIn
	}

	var resp *http.Response
	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if authed {
			req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
		}

		resp, lastErr = c.http.Do(req)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		reqErr := &RequestError{Err: lastErr}
		c.observe(method, path, 0, start, reqErr)
		return reqErr
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
		c.observe(method, path, resp.StatusCode, start, ErrUnauthorized)
		return ErrUnauthorized
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		reqErr := &RequestError{Status: resp.StatusCode, Err: err}
		c.observe(method, path, resp.StatusCode, start, reqErr)
		return reqErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Status: resp.StatusCode, Message: serverMessage(respBody)}
		c.observe(method, path, resp.StatusCode, start, reqErr)
		return reqErr
	}

	c.observe(method, path, resp.StatusCode, start, nil)

	if out == nil {
		return nil
	}

	data := respBody
	if enveloped {
		var env dataEnvelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return &RequestError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
		if len(env.Data) > 0 {
			data = env.Data
		}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func (c *httpClient) observe(method, path string, status int, start time.Time, err error) {
	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Err:       err,
	})
}

// serverMessage extracts a human-readable message from an error body.
func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
