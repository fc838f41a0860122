// Package api is a typed HTTP client for the accounting backend.
//
// Every call takes a context, sends the bearer token from the configured
// TokenSource and tags the request with a fresh X-Request-ID so client and
// server logs can be correlated.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"ledgerdesk/internal/domain"
)

// Sentinel errors matched by *Error via errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Error is a non-2xx response from the backend.
type Error struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is lets callers test for ErrUnauthorized, ErrNotFound and ErrConflict.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// TokenSource supplies the bearer token for each request. An empty token
// sends no Authorization header.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource that always returns itself.
type StaticToken string

func (t StaticToken) Token() (string, error) { return string(t), nil }

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() (string, error)

func (f TokenFunc) Token() (string, error) { return f() }

// Client talks to the backend REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     StaticToken(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", nil, loginRequest{username, password}, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return resp.Token, nil
}

// Groups lists the chart of accounts.
func (c *Client) Groups(ctx context.Context) ([]domain.AccountGroup, error) {
	var groups []domain.AccountGroup
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, nil, &groups); err != nil {
		return nil, fmt.Errorf("groups: %w", err)
	}
	return groups, nil
}

// Ledgers lists all ledgers with their current balances.
func (c *Client) Ledgers(ctx context.Context) ([]domain.Ledger, error) {
	var ledgers []domain.Ledger
	if err := c.do(ctx, http.MethodGet, "/api/ledgers", nil, nil, &ledgers); err != nil {
		return nil, fmt.Errorf("ledgers: %w", err)
	}
	return ledgers, nil
}

// CreateLedger creates a ledger and returns it as stored.
func (c *Client) CreateLedger(ctx context.Context, l domain.NewLedger) (domain.Ledger, error) {
	if err := l.Validate(); err != nil {
		return domain.Ledger{}, fmt.Errorf("create ledger: %w", err)
	}
	var created domain.Ledger
	if err := c.do(ctx, http.MethodPost, "/api/ledgers", nil, l, &created); err != nil {
		return domain.Ledger{}, fmt.Errorf("create ledger: %w", err)
	}
	return created, nil
}

// Vouchers returns one page of the day book, newest first. Pages start at 1.
func (c *Client) Vouchers(ctx context.Context, page, size int) (domain.VoucherPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var vp domain.VoucherPage
	if err := c.do(ctx, http.MethodGet, "/api/vouchers", q, nil, &vp); err != nil {
		return domain.VoucherPage{}, fmt.Errorf("vouchers: %w", err)
	}
	return vp, nil
}

// LedgerStatement returns the postings of one ledger with running balances.
func (c *Client) LedgerStatement(ctx context.Context, ledgerID string) (domain.LedgerStatement, error) {
	var st domain.LedgerStatement
	path := "/api/ledgers/" + url.PathEscape(ledgerID) + "/statement"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &st); err != nil {
		return domain.LedgerStatement{}, fmt.Errorf("statement %s: %w", ledgerID, err)
	}
	return st, nil
}

// TrialBalance returns closing balances of all ledgers.
func (c *Client) TrialBalance(ctx context.Context) (domain.TrialBalance, error) {
	var tb domain.TrialBalance
	if err := c.do(ctx, http.MethodGet, "/api/reports/trial-balance", nil, nil, &tb); err != nil {
		return domain.TrialBalance{}, fmt.Errorf("trial balance: %w", err)
	}
	return tb, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return err
	}
	defer resp.Body.Close()
	slog.Debug("api request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, RequestID: requestID}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			apiErr.Message = eb.Error
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
