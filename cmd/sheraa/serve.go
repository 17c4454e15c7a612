package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sheraa.ae/site/content"
	"sheraa.ae/site/internal/appctx"
	"sheraa.ae/site/internal/auth"
	"sheraa.ae/site/internal/careers"
	"sheraa.ae/site/internal/catalog"
	"sheraa.ae/site/internal/cms"
	"sheraa.ae/site/internal/httpserver"
	"sheraa.ae/site/internal/i18n"
	"sheraa.ae/site/internal/nav"
	"sheraa.ae/site/internal/navstate"
	"sheraa.ae/site/internal/platform/config"
	"sheraa.ae/site/internal/platform/observability"
	"sheraa.ae/site/internal/seo"
	"sheraa.ae/site/internal/session"
	"sheraa.ae/site/internal/submissions"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseLogger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialise logger: %w", err)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("site").With(zap.String("env", cfg.Env))
	ctx = observability.WithLogger(ctx, logger)

	bundle, err := i18n.Load(content.FS, "locales", cfg.I18n.Default, cfg.I18n.Supported)
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}
	menu, err := loadMenu(cfg.Nav.MenuFile)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(content.FS, "data")
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	cmsOpts := []cms.Option{
		cms.WithCacheTTL(cfg.Content.CacheTTL),
		cms.WithFallbackLang(cfg.I18n.Default),
		cms.WithLogger(logger.Named("cms")),
	}
	if cfg.Content.RemoteURL != "" {
		cmsOpts = append(cmsOpts, cms.WithRemote(cfg.Content.RemoteURL))
	}
	contentClient := cms.NewClient(contentFS(cfg.Content.Dir), cmsOpts...)
	jobs := careers.NewClient(cfg.Careers.FeedURL, cat,
		careers.WithTTL(cfg.Careers.CacheTTL),
		careers.WithLogger(logger.Named("careers")),
	)

	store, err := submissions.OpenSQLite(cfg.Submissions.DatabasePath)
	if err != nil {
		return fmt.Errorf("open submission store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("submission store close error", zap.Error(err))
		}
	}()

	publisher, closePublisher, err := newPublisher(ctx, cfg.Submissions)
	if err != nil {
		return err
	}
	defer closePublisher()

	authenticator, err := newAuthenticator(ctx, cfg.Auth)
	if err != nil {
		return err
	}

	sessions, err := newSessionManager(logger, cfg.Session)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:        cfg.Server.Addr,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookies:  cfg.Session.Secure,

		Logger:   logger,
		Site:     seo.Site{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL, LogoURL: cfg.Site.LogoURL},
		Sessions: sessions,
		Bundle:   bundle,
		Menu:     menu,
		Nav: navstate.Config{
			StickyOffset:   cfg.Nav.StickyOffset,
			ScrolledOffset: cfg.Nav.ScrolledOffset,
			Throttle:       cfg.Nav.ScrollThrottle,
			CloseDelay:     cfg.Nav.CloseDelay,
		},
		Catalog:     cat,
		Content:     contentClient,
		Careers:     jobs,
		Submissions: submissions.NewService(store, publisher, logger.Named("submissions")),

		Authenticator:     authenticator,
		AuthProvider:      cfg.Auth.Provider,
		FirebaseProjectID: cfg.Auth.FirebaseProjectID,

		Analytics: appctx.Analytics{
			GA4MeasurementID: cfg.Analytics.GA4MeasurementID,
			GTMContainerID:   cfg.Analytics.GTMContainerID,
		},
		TraceProjectID: cfg.ProjectID,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	httpLogger := logger.Named("http").With(zap.String("addr", srv.Addr))
	g.Go(func() error {
		httpLogger.Info("sheraa site listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received; draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	})
	return g.Wait()
}

func loadMenu(path string) (*nav.Menu, error) {
	if path == "" {
		menu, err := nav.Load(content.FS, content.NavigationFile)
		if err != nil {
			return nil, fmt.Errorf("load navigation: %w", err)
		}
		return menu, nil
	}
	menu, err := nav.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load navigation %s: %w", path, err)
	}
	return menu, nil
}

func contentFS(dir string) fs.FS {
	if dir == "" {
		return content.FS
	}
	return os.DirFS(dir)
}

func newPublisher(ctx context.Context, cfg config.SubmissionsConfig) (submissions.Publisher, func(), error) {
	if cfg.PubSubTopic == "" {
		return submissions.NoopPublisher{}, func() {}, nil
	}
	client, err := pubsub.NewClient(ctx, cfg.PubSubProject)
	if err != nil {
		return nil, nil, fmt.Errorf("initialise pubsub client: %w", err)
	}
	topic := client.Topic(cfg.PubSubTopic)
	publisher, err := submissions.NewPubSubPublisher(topic)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return publisher, func() {
		topic.Stop()
		_ = client.Close()
	}, nil
}

func newAuthenticator(ctx context.Context, cfg config.AuthConfig) (auth.Authenticator, error) {
	switch cfg.Provider {
	case config.AuthFirebase:
		authn, err := auth.NewFirebase(ctx, cfg.FirebaseProjectID)
		if err != nil {
			return nil, err
		}
		return authn, nil
	case config.AuthDev:
		return auth.Passthrough(), nil
	default:
		return auth.Disabled(), nil
	}
}

func newSessionManager(logger *zap.Logger, cfg config.SessionConfig) (*session.Manager, error) {
	hashKey := []byte(cfg.HashKey)
	if len(hashKey) == 0 {
		logger.Warn("session hash key not configured; generating an ephemeral key")
		hashKey = session.GenerateKey(32)
	}
	manager, err := session.NewManager(session.Config{
		CookieName:   cfg.CookieName,
		HashKey:      hashKey,
		BlockKey:     []byte(cfg.BlockKey),
		CookieSecure: cfg.Secure,
		Lifetime:     cfg.Lifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	return manager, nil
}
