package careers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"sheraa.ae/site/internal/catalog"
)

// ErrNotFound is returned when no opening matches a slug.
var ErrNotFound = errors.New("careers: not found")

const defaultTTL = 10 * time.Minute

// Fallback supplies openings when the remote feed is unset or failing.
type Fallback interface {
	Jobs() []catalog.Job
}

// Client fetches job openings from an external ATS feed with local fallbacks.
type Client struct {
	feedURL  string
	http     *http.Client
	ttl      time.Duration
	fallback Fallback
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.RWMutex
	cached  []catalog.Job
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for the feed.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTTL overrides the cache duration.
func WithTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithLogger sets the logger used to report feed failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient builds a careers client. When feedURL is empty the client only
// serves fallback data.
func NewClient(feedURL string, fallback Fallback, opts ...Option) *Client {
	c := &Client{
		feedURL:  strings.TrimSpace(feedURL),
		http:     &http.Client{Timeout: 5 * time.Second},
		ttl:      defaultTTL,
		fallback: fallback,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Jobs returns open positions, prioritising cached values, then the remote
// feed, and finally the local catalog.
func (c *Client) Jobs(ctx context.Context) []catalog.Job {
	now := c.now()
	c.mu.RLock()
	if c.cached != nil && now.Before(c.expires) {
		out := append([]catalog.Job(nil), c.cached...)
		c.mu.RUnlock()
		return out
	}
	c.mu.RUnlock()

	var jobs []catalog.Job
	if c.feedURL != "" {
		remote, err := c.fetchRemote(ctx)
		if err != nil {
			c.logger.Warn("careers feed unavailable; serving fallback", zap.Error(err))
		} else {
			jobs = remote
		}
	}
	if jobs == nil && c.fallback != nil {
		jobs = c.fallback.Jobs()
	}
	if jobs == nil {
		jobs = []catalog.Job{}
	}

	c.mu.Lock()
	c.cached = jobs
	c.expires = now.Add(c.ttl)
	c.mu.Unlock()
	return append([]catalog.Job(nil), jobs...)
}

// Job returns a single opening by slug.
func (c *Client) Job(ctx context.Context, slug string) (catalog.Job, error) {
	for _, j := range c.Jobs(ctx) {
		if j.Slug == slug {
			return j, nil
		}
	}
	return catalog.Job{}, fmt.Errorf("%w: %q", ErrNotFound, slug)
}

type remoteFeed struct {
	Jobs []remoteJob `json:"jobs"`
}

type remoteJob struct {
	ID          string            `json:"id"`
	Title       map[string]string `json:"title"`
	Department  string            `json:"department"`
	Location    string            `json:"location"`
	Type        string            `json:"employment_type"`
	Description map[string]string `json:"description"`
	PostedAt    string            `json:"posted_at"`
	ApplyURL    string            `json:"apply_url"`
}

func (c *Client) fetchRemote(ctx context.Context) ([]catalog.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("careers: remote status %d", resp.StatusCode)
	}

	var payload remoteFeed
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("careers: decode feed: %w", err)
	}
	jobs := make([]catalog.Job, 0, len(payload.Jobs))
	for _, raw := range payload.Jobs {
		slug := strings.TrimSpace(raw.ID)
		if slug == "" || len(raw.Title) == 0 {
			continue
		}
		jobs = append(jobs, catalog.Job{
			Slug:        slug,
			Title:       catalog.Text(raw.Title),
			Department:  strings.TrimSpace(raw.Department),
			Location:    strings.TrimSpace(raw.Location),
			Type:        strings.TrimSpace(raw.Type),
			Description: catalog.Text(raw.Description),
			Posted:      parseTime(raw.PostedAt),
			ApplyURL:    strings.TrimSpace(raw.ApplyURL),
		})
	}
	return jobs, nil
}

func parseTime(v string) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
