// Package api is a typed client for the FitQuest HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/fitquest/internal/common"
)

const (
	readRetries = 2
	readBackoff = 200 * time.Millisecond
)

// Client talks to one FitQuest server. It keeps the session token of the
// last successful login; it is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	backoff func() retry.Backoff

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		backoff: func() retry.Backoff {
			return retry.WithMaxRetries(readRetries, retry.NewExponential(readBackoff))
		},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) LoggedIn() bool {
	return c.Token() != ""
}

func (c *Client) Logout() {
	c.SetToken("")
}

func (c *Client) Register(ctx context.Context, email, password, heroName string) error {
	body := map[string]string{"email": email, "password": password, "heroName": heroName}
	return c.do(ctx, http.MethodPost, "/register", body, nil, false)
}

// Login stores the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", body, &res, false); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, "/profile", &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) LogWater(ctx context.Context, cups int64) error {
	return c.do(ctx, http.MethodPost, "/log-water", map[string]int64{"cups": cups}, nil, true)
}

func (c *Client) TodayWater(ctx context.Context) (*TodayWater, error) {
	var tw TodayWater
	if err := c.get(ctx, "/today-water", &tw, true); err != nil {
		return nil, err
	}
	return &tw, nil
}

func (c *Client) LogWorkout(ctx context.Context, in WorkoutInput) (*WorkoutResult, error) {
	var res WorkoutResult
	if err := c.do(ctx, http.MethodPost, "/log-workout", in, &res, true); err != nil {
		return nil, err
	}
	return &res, nil
}

// Ping checks the server health endpoint once, without retries.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, false)
}

// get retries reads while the server is unreachable.
func (c *Client) get(ctx context.Context, path string, out any, auth bool) error {
	return retry.Do(ctx, c.backoff(), func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, nil, out, auth)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token := c.Token()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var m messageResponse
	_ = json.NewDecoder(resp.Body).Decode(&m)
	if m.Message == "" {
		m.Message = http.StatusText(resp.StatusCode)
	}

	apiErr := &Error{Status: resp.StatusCode, Message: m.Message}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case resp.StatusCode == http.StatusServiceUnavailable, resp.StatusCode == http.StatusBadGateway:
		return fmt.Errorf("%w: %w", ErrUnavailable, apiErr)
	default:
		return apiErr
	}
}
