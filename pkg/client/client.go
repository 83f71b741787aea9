package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kyber-portal/pkg/models"
)

const (
	LoginPath    = "/api/login"
	RegisterPath = "/api/register"
)

// ErrUnexpectedStatus is wrapped by RemoteError when the backend answers
// with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// RemoteError is any failure of a call to the backend: transport,
// HTTP status or body decoding. Callers are not expected to tell them apart.
type RemoteError struct {
	Endpoint string
	Err      error
}

func (e *RemoteError) Error() string {
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Client talks to the account API of the messaging backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client means
// a fresh default one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a new Client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout > 0 {
		// Copy so a client passed in by the caller is left untouched.
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the API root the client posts to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login posts the credentials to /api/login
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.APIResponse, error) {
	return c.post(ctx, LoginPath, creds)
}

// Register posts the credentials to /api/register
func (c *Client) Register(ctx context.Context, creds models.Credentials) (*models.APIResponse, error) {
	return c.post(ctx, RegisterPath, creds)
}

func (c *Client) post(ctx context.Context, path string, creds models.Credentials) (*models.APIResponse, error) {
	fail := func(err error) (*models.APIResponse, error) {
		return nil, &RemoteError{Endpoint: path, Err: err}
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return fail(fmt.Errorf("failed to encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fail(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status))
	}

	var out models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fail(fmt.Errorf("failed to decode response: %w", err))
	}
	return &out, nil
}
