package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/auth"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/cms"
	"sheraa.ae/site/internal/forms"
	custommw "sheraa.ae/site/internal/httpserver/middleware"
	"sheraa.ae/site/internal/i18n"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/navstate"
	"sheraa.ae/site/internal/platform/httpx"
	"sheraa.ae/site/internal/platform/observability"
	"sheraa.ae/site/internal/seo"
	"sheraa.ae/site/internal/submissions"
	"sheraa.ae/site/public"
)

// ContentSource serves localized markdown pages.
type ContentSource interface {
	Page(ctx context.Context, kind, slug, lang string) (cms.Page, error)
	List(ctx context.Context, kind, lang string) ([]cms.Page, error)
}

// JobSource serves open positions.
type JobSource interface {
	Jobs(ctx context.Context) []catalog.Job
	Job(ctx context.Context, slug string) (catalog.Job, error)
}

// SubmissionService persists validated forms.
type SubmissionService interface {
	Submit(ctx context.Context, f forms.Submittable, meta submissions.Meta) (submissions.Submission, error)
	ForEmail(ctx context.Context, email string) ([]submissions.Submission, error)
}

// Config holds runtime options and dependencies for the site server.
type Config struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	AllowedOrigins []string
	SecureCookies  bool

	Logger      *zap.Logger
	Site        seo.Site
	Sessions    custommw.SessionStore
	Bundle      *i18n.Bundle
	Menu        *nav.Menu
	Nav         navstate.Config
	Catalog     *catalog.Catalog
	Content     ContentSource
	Careers     JobSource
	Forms       *forms.Validator
	Submissions SubmissionService

	Authenticator     auth.Authenticator
	AuthProvider      string
	FirebaseProjectID string

	Analytics      appctx.Analytics
	TraceProjectID string
	Now            func() time.Time
}

// Server owns the dependencies shared by every handler.
type Server struct {
	logger      *zap.Logger
	site        seo.Site
	sessions    custommw.SessionStore
	bundle      *i18n.Bundle
	menu        *nav.Menu
	navCfg      navstate.Config
	catalog     *catalog.Catalog
	content     ContentSource
	careers     JobSource
	forms       *forms.Validator
	submissions SubmissionService
	authn       auth.Authenticator
	provider    string
	projectID   string
	analytics   appctx.Analytics
	now         func() time.Time

	traceProject   string
	requestTimeout time.Duration
	allowedOrigins []string
	secureCookies  bool
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadTimeout:       orDefault(cfg.ReadTimeout, 15*time.Second),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      orDefault(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:       orDefault(cfg.IdleTimeout, 120*time.Second),
	}, nil
}

// NewHandler builds the router without binding a listener.
func NewHandler(cfg Config) (http.Handler, error) {
	switch {
	case cfg.Sessions == nil:
		return nil, errors.New("httpserver: session store is required")
	case cfg.Bundle == nil:
		return nil, errors.New("httpserver: i18n bundle is required")
	case cfg.Menu == nil:
		return nil, errors.New("httpserver: navigation menu is required")
	case cfg.Catalog == nil:
		return nil, errors.New("httpserver: catalog is required")
	case cfg.Content == nil:
		return nil, errors.New("httpserver: content source is required")
	case cfg.Submissions == nil:
		return nil, errors.New("httpserver: submission service is required")
	}

	s := &Server{
		logger:         cfg.Logger,
		site:           cfg.Site,
		sessions:       cfg.Sessions,
		bundle:         cfg.Bundle,
		menu:           cfg.Menu,
		navCfg:         cfg.Nav,
		catalog:        cfg.Catalog,
		content:        cfg.Content,
		careers:        cfg.Careers,
		forms:          cfg.Forms,
		submissions:    cfg.Submissions,
		authn:          cfg.Authenticator,
		provider:       cfg.AuthProvider,
		projectID:      cfg.FirebaseProjectID,
		analytics:      cfg.Analytics,
		traceProject:   cfg.TraceProjectID,
		now:            cfg.Now,
		requestTimeout: orDefault(cfg.RequestTimeout, 30*time.Second),
		allowedOrigins: cfg.AllowedOrigins,
		secureCookies:  cfg.SecureCookies,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.navCfg == (navstate.Config{}) {
		s.navCfg = navstate.DefaultConfig()
	}
	if s.careers == nil {
		s.careers = staticJobs{s.catalog}
	}
	if s.forms == nil {
		s.forms = forms.New(s.catalog.ProgramSlugs())
	}
	if s.authn == nil {
		s.authn = auth.Disabled()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if len(s.allowedOrigins) == 0 {
		s.allowedOrigins = []string{"*"}
	}
	return s.router()
}

func (s *Server) router() (http.Handler, error) {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.TraceMiddleware(s.traceProject))
	router.Use(observability.InjectLoggerMiddleware(s.logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(s.logger, s.panicPage))
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(s.requestTimeout))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("embed static: %w", err)
	}
	router.Handle("/static/*", http.StripPrefix("/static", custommw.AssetsWithCache(staticContent)))

	table := s.table()
	for _, rt := range table {
		if rt.scope == scopeBare {
			router.Method(rt.Method, rt.Pattern, rt.handler)
		}
	}

	router.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		for _, rt := range table {
			if rt.scope == scopeAPI {
				r.Method(rt.Method, rt.Pattern, rt.handler)
			}
		}
		r.Handle("/api/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpx.WriteError(r.Context(), w, httpx.NewError("not_found", "resource not found", http.StatusNotFound))
		}))
	})

	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.Session(s.sessions))
		r.Use(custommw.Locale(s.bundle, custommw.LocaleConfig{Secure: s.secureCookies}))
		r.Use(custommw.CSRF(custommw.CSRFConfig{OnFailure: s.csrfFailed}))
		r.Use(custommw.VaryLocale)
		r.Use(s.appState)

		for _, rt := range table {
			if rt.scope != scopeSite {
				continue
			}
			if rt.Private {
				r.With(custommw.NoStore(), custommw.RequireUser(loginPath)).Method(rt.Method, rt.Pattern, rt.handler)
				continue
			}
			r.Method(rt.Method, rt.Pattern, rt.handler)
		}
		r.NotFound(s.notFound)
	})

	return router, nil
}

// staticJobs serves catalog openings when no careers feed is wired.
type staticJobs struct{ c *catalog.Catalog }

func (j staticJobs) Jobs(context.Context) []catalog.Job { return j.c.Jobs() }

func (j staticJobs) Job(_ context.Context, slug string) (catalog.Job, error) {
	for _, job := range j.c.Jobs() {
		if job.Slug == slug {
			return job, nil
		}
	}
	return catalog.Job{}, catalog.ErrNotFound
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
