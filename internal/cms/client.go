package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCacheTTL = 5 * time.Minute
	defaultLang     = "en"
)

// Client serves localized pages from a remote CMS when configured, falling
// back to markdown files in fsys.
type Client struct {
	fsys     fs.FS
	baseURL  string
	http     *http.Client
	renderer *Renderer
	fallback string
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	list    []Page
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithRemote enables the remote CMS at baseURL.
func WithRemote(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/") }
}

// WithCacheTTL overrides the in-memory cache duration.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithFallbackLang sets the language consulted when a translation is missing.
func WithFallbackLang(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.fallback = lang
		}
	}
}

// WithLogger sets the logger used to report remote failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHTTPClient overrides the HTTP client used for the remote CMS.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient constructs a Client reading <kind>/<lang>/<slug>.md from fsys.
func NewClient(fsys fs.FS, opts ...Option) *Client {
	c := &Client{
		fsys:     fsys,
		http:     &http.Client{Timeout: 5 * time.Second},
		renderer: NewRenderer(),
		fallback: defaultLang,
		ttl:      defaultCacheTTL,
		logger:   zap.NewNop(),
		now:      time.Now,
		cache:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Page fetches a localized page, consulting the cache, then the remote CMS,
// then local markdown in the requested and fallback languages.
func (c *Client) Page(ctx context.Context, kind, slug, lang string) (Page, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	slug = sanitizeSlug(slug)
	if kind == "" || slug == "" {
		return Page{}, ErrNotFound
	}
	lang = normalizeLang(lang)

	key := strings.Join([]string{"page", kind, lang, slug}, "|")
	if entry, ok := c.cached(key); ok {
		return clonePage(entry.page), nil
	}

	page, err := c.fetchPage(ctx, kind, slug, lang)
	if err != nil {
		return Page{}, err
	}
	c.store(key, cacheEntry{page: page})
	return clonePage(page), nil
}

// List returns every page of kind available in lang (or the fallback
// language), most recently published first.
func (c *Client) List(ctx context.Context, kind, lang string) ([]Page, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	lang = normalizeLang(lang)
	key := strings.Join([]string{"list", kind, lang}, "|")
	if entry, ok := c.cached(key); ok {
		return clonePages(entry.list), nil
	}

	slugs := map[string]struct{}{}
	for _, l := range c.priority(lang) {
		entries, err := fs.ReadDir(c.fsys, path.Join(kind, l))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("cms: list %s/%s: %w", kind, l, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			slugs[strings.TrimSuffix(e.Name(), ".md")] = struct{}{}
		}
	}

	pages := make([]Page, 0, len(slugs))
	for slug := range slugs {
		page, err := c.localPage(kind, slug, lang)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool {
		if !pages[i].PublishedAt.Equal(pages[j].PublishedAt) {
			return pages[i].PublishedAt.After(pages[j].PublishedAt)
		}
		return pages[i].Slug < pages[j].Slug
	})
	c.store(key, cacheEntry{list: pages})
	return clonePages(pages), nil
}

// Check parses every markdown file and reports the ones that fail.
func (c *Client) Check() []error {
	var problems []error
	_ = fs.WalkDir(c.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(p, ".md") {
			return nil
		}
		parts := strings.Split(p, "/")
		if len(parts) != 3 {
			problems = append(problems, fmt.Errorf("cms: %s: expected <kind>/<lang>/<slug>.md", p))
			return nil
		}
		raw, err := fs.ReadFile(c.fsys, p)
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		page, err := c.renderer.parse(parts[0], strings.TrimSuffix(parts[2], ".md"), parts[1], string(raw))
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		if page.Summary == "" && page.Kind == KindResources {
			problems = append(problems, fmt.Errorf("cms: %s: resources need a summary", p))
		}
		return nil
	})
	return problems
}

func (c *Client) fetchPage(ctx context.Context, kind, slug, lang string) (Page, error) {
	if c.baseURL != "" {
		page, err := c.remotePage(ctx, kind, slug, lang)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("remote cms failed; using local content",
				zap.String("kind", kind), zap.String("slug", slug), zap.Error(err))
		}
	}
	return c.localPage(kind, slug, lang)
}

func (c *Client) localPage(kind, slug, lang string) (Page, error) {
	for _, candidate := range c.priority(lang) {
		raw, err := fs.ReadFile(c.fsys, path.Join(kind, candidate, slug+".md"))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Page{}, err
		}
		return c.renderer.parse(kind, slug, candidate, string(raw))
	}
	return Page{}, fmt.Errorf("%w: %s/%s", ErrNotFound, kind, slug)
}

func (c *Client) remotePage(ctx context.Context, kind, slug, lang string) (Page, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", kind, slug)
	if err != nil {
		return Page{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, err
	}
	q := req.URL.Query()
	q.Set("lang", lang)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Page{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return Page{}, fmt.Errorf("cms: content remote status %d", resp.StatusCode)
	}

	var payload struct {
		Title       string   `json:"title"`
		Summary     string   `json:"summary"`
		Lang        string   `json:"lang"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		Author      string   `json:"author"`
		Cover       string   `json:"cover"`
		Body        string   `json:"body"`
		Format      string   `json:"format"`
		PublishedAt string   `json:"published_at"`
		UpdatedAt   string   `json:"updated_at"`
		SEO         struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OGImage     string `json:"og_image"`
		} `json:"seo"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Page{}, err
	}
	if strings.TrimSpace(payload.Body) == "" {
		return Page{}, fmt.Errorf("cms: empty body for %s/%s", kind, slug)
	}

	rendered := ""
	if strings.EqualFold(payload.Format, "html") {
		rendered = c.renderer.Sanitize(payload.Body)
	} else if rendered, err = c.renderer.Render(payload.Body); err != nil {
		return Page{}, err
	}
	page := Page{
		Kind:        kind,
		Slug:        slug,
		Lang:        firstNonEmpty(payload.Lang, lang),
		Title:       firstNonEmpty(payload.Title, prettifySlug(slug)),
		Summary:     payload.Summary,
		Category:    payload.Category,
		Tags:        payload.Tags,
		Author:      payload.Author,
		Cover:       payload.Cover,
		Body:        payload.Body,
		HTML:        rendered,
		Headings:    extractHeadings(rendered),
		ReadingTime: readingTime(payload.Body),
		PublishedAt: parseDate(payload.PublishedAt),
		UpdatedAt:   parseDate(payload.UpdatedAt),
		SEO: SEO{
			Title:       payload.SEO.Title,
			Description: payload.SEO.Description,
			OGImage:     payload.SEO.OGImage,
		},
	}
	return page, nil
}

func (c *Client) priority(lang string) []string {
	if lang == c.fallback {
		return []string{lang}
	}
	return []string{lang, c.fallback}
}

func (c *Client) cached(key string) (cacheEntry, bool) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(entry.expires) {
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *Client) store(key string, entry cacheEntry) {
	entry.expires = c.now().Add(c.ttl)
	c.mu.Lock()
	c.cache[key] = entry
	c.mu.Unlock()
}

func clonePages(in []Page) []Page {
	out := make([]Page, len(in))
	for i, p := range in {
		out[i] = clonePage(p)
	}
	return out
}

func sanitizeSlug(slug string) string {
	slug = strings.Trim(strings.TrimSpace(strings.ToLower(slug)), "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\`) {
		return ""
	}
	return slug
}

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return defaultLang
	}
	return lang
}
