package level

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout bounds a fetch when no explicit timeout is configured.
const DefaultTimeout = 10 * time.Second

// Fetch failure classes. Every error returned by Fetch wraps exactly one of
// these, so callers branch with errors.Is.
var (
	ErrNotFound    = errors.New("level not found")
	ErrServerError = errors.New("level service error")
	ErrTimeout     = errors.New("level fetch timed out")
	ErrNetwork     = errors.New("level service unreachable")
	ErrBadResponse = errors.New("malformed level service response")
)

// FetchError decorates a failure class with the stage that was requested.
type FetchError struct {
	Stage int
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch stage %d: %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Descriptor mirrors the level service payload for one stage. The start and
// end coordinates are authoritative; the S and E characters inside Layout
// are render hints that may disagree with them.
type Descriptor struct {
	StageNumber int    `json:"stage_number"`
	Layout      string `json:"layout"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	StartX      int    `json:"start_x"`
	StartY      int    `json:"start_y"`
	EndX        int    `json:"end_x"`
	EndY        int    `json:"end_y"`
}

// envelope is the wire wrapper around every level service response.
type envelope struct {
	Success bool        `json:"success"`
	Data    *Descriptor `json:"data"`
	Error   string      `json:"error"`
}

// Client fetches stage descriptors over HTTP. The zero value is not usable;
// construct with NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	cache map[int]*Descriptor
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient substitutes the underlying HTTP client, for tests or for
// transports with custom dialing.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache keeps every fetched descriptor in memory for the lifetime of
// the client. Stage content is immutable, so cached stages are served
// without touching the network again.
func WithCache() Option {
	return func(c *Client) { c.cache = make(map[int]*Descriptor) }
}

// NewClient returns a client for the level service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the descriptor for one stage with a single attempt. The
// returned error is always a *FetchError wrapping one of the package
// sentinel errors.
func (c *Client) Fetch(ctx context.Context, stage int) (*Descriptor, error) {
	if d := c.cached(stage); d != nil {
		return d, nil
	}

	url := fmt.Sprintf("%s/level/%d", c.baseURL, stage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Stage: stage, Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Stage: stage, Err: classify(err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{Stage: stage, Err: ErrNotFound}
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &FetchError{Stage: stage, Err: fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchError{Stage: stage, Err: fmt.Errorf("%w: unexpected status %d", ErrBadResponse, resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &FetchError{Stage: stage, Err: fmt.Errorf("%w: %v", ErrBadResponse, err)}
	}
	if !env.Success || env.Data == nil {
		reason := env.Error
		if reason == "" {
			reason = "success flag not set"
		}
		return nil, &FetchError{Stage: stage, Err: fmt.Errorf("%w: %s", ErrBadResponse, reason)}
	}

	c.store(stage, env.Data)
	return env.Data, nil
}

// Ping probes the service by fetching stage 1 and discarding the result.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Fetch(ctx, 1)
	return err
}

// classify sorts a transport failure into the timeout or network bucket.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func (c *Client) cached(stage int) *Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache[stage]
}

func (c *Client) store(stage int, d *Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		return
	}
	c.cache[stage] = d
}
