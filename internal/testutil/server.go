package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"sheraa.ae/site/content"
	"sheraa.ae/site/internal/auth"
	"sheraa.ae/site/internal/careers"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/cms"
	"sheraa.ae/site/internal/httpserver"
	"sheraa.ae/site/internal/i18n"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/seo"
	"sheraa.ae/site/internal/session"
	"sheraa.ae/site/internal/submissions"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithAuthenticator overrides the ID token verifier.
func WithAuthenticator(a auth.Authenticator) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Authenticator = a
		cfg.AuthProvider = "dev"
	}
}

// WithContent replaces the CMS client.
func WithContent(src httpserver.ContentSource) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Content = src
	}
}

// WithSubmissions replaces the submission service.
func WithSubmissions(svc httpserver.SubmissionService) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Submissions = svc
	}
}

// WithClock fixes the time used for event splitting and navigation delays.
func WithClock(now func() time.Time) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Now = now
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// NewServer constructs an httptest server running the site stack on the
// embedded content with an in-memory submission store.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	bundle, err := i18n.Load(content.FS, "locales", "en", []string{"en", "ar"})
	if err != nil {
		t.Fatalf("load locales: %v", err)
	}
	menu, err := nav.Load(content.FS, content.NavigationFile)
	if err != nil {
		t.Fatalf("load navigation: %v", err)
	}
	cat, err := catalog.Load(content.FS, "data")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	sessions, err := session.NewManager(session.Config{
		HashKey:  []byte("0123456789abcdef0123456789abcdef"),
		BlockKey: []byte("abcdef0123456789"),
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	store, err := submissions.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := httpserver.Config{
		Address:       ":0",
		Site:          seo.Site{Name: "Sheraa", BaseURL: "https://sheraa.test"},
		Sessions:      sessions,
		Bundle:        bundle,
		Menu:          menu,
		Catalog:       cat,
		Content:       cms.NewClient(content.FS),
		Careers:       careers.NewClient("", cat),
		Submissions:   submissions.NewService(store, submissions.NoopPublisher{}, zap.NewNop()),
		Authenticator: auth.Disabled(),
		AuthProvider:  "none",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	handler, err := httpserver.NewHandler(cfg)
	if err != nil {
		t.Fatalf("build handler: %v", err)
	}
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

// NewClient returns a client with a cookie jar that does not follow redirects.
func NewClient(t testing.TB) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
