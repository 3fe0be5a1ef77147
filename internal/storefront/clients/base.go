// Package clients talks to the storefront backend API. Client carries the
// transport concerns shared by every endpoint group; the typed clients in
// this package wrap it per resource.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

const HeaderRequestID = "X-Request-ID"

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response. Message is the body's "error" field when
// present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Options struct {
	Timeout time.Duration
	// BreakerFailures consecutive transport or 5xx failures open the
	// breaker for BreakerCooldown.
	BreakerFailures uint32
	BreakerCooldown time.Duration
	HTTP            *http.Client
	Logger          *log.Logger
}

type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client

	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *log.Logger

	mu    sync.RWMutex
	token string
}

func NewClient(name, baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s base url %q: %w", name, baseURL, err)
	}
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.BreakerFailures == 0 {
		opts.BreakerFailures = 5
	}
	if opts.BreakerCooldown == 0 {
		opts.BreakerCooldown = 30 * time.Second
	}

	c := &Client{Name: name, BaseURL: u, HTTP: opts.HTTP, logger: opts.Logger}
	failures := opts.BreakerFailures
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    name,
		Timeout: opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Printf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})
	return c, nil
}

// SetToken sets the bearer token sent with every request. Empty clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do sends in as JSON (when non-nil) and decodes the response into out
// (when non-nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	return c.DoWithHeader(ctx, method, path, nil, query, in, out)
}

// DoWithHeader is Do with extra request headers.
func (c *Client) DoWithHeader(ctx context.Context, method, path string, header http.Header, query url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		payload = b
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.send(ctx, method, path, header, query, payload)
	})
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, header http.Header, query url.Values, payload []byte) ([]byte, error) {
	rel := &url.URL{Path: path}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	u := c.BaseURL.ResolveReference(rel)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, u.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, body)
	}
	return body, nil
}

func decodeError(status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = payload.Error
		if msg == "" {
			msg = payload.Message
		}
	} else {
		msg = strings.TrimSpace(string(body))
	}
	return &APIError{Status: status, Message: msg}
}
