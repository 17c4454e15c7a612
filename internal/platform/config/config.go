package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides. Nested keys are separated
// by a double underscore: SHERAA_SERVER__ADDR sets server.addr.
const EnvPrefix = "SHERAA_"

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultRequestTimeout  = 30 * time.Second
	defaultSiteName        = "Sheraa"
	defaultBaseURL         = "http://localhost:8080"
	defaultCookieName      = "sheraa_session"
	defaultSessionLifetime = 30 * 24 * time.Hour
	defaultContentTTL      = 5 * time.Minute
	defaultCareersTTL      = 10 * time.Minute
	defaultStickyOffset    = 100
	defaultScrolledOffset  = 10
	defaultScrollThrottle  = 100 * time.Millisecond
	defaultCloseDelay      = 150 * time.Millisecond
	defaultLocale          = "en"
	defaultDatabasePath    = "data/submissions.db"
)

// Environment names accepted by Validate.
const (
	EnvLocal   = "local"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

// Auth providers accepted by Validate.
const (
	AuthNone     = "none"
	AuthDev      = "dev"
	AuthFirebase = "firebase"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Env         string            `koanf:"env"`
	LogLevel    string            `koanf:"log_level"`
	ProjectID   string            `koanf:"project_id"`
	Server      ServerConfig      `koanf:"server"`
	Site        SiteConfig        `koanf:"site"`
	Session     SessionConfig     `koanf:"session"`
	Content     ContentConfig     `koanf:"content"`
	Careers     CareersConfig     `koanf:"careers"`
	Nav         NavConfig         `koanf:"nav"`
	I18n        I18nConfig        `koanf:"i18n"`
	Auth        AuthConfig        `koanf:"auth"`
	Submissions SubmissionsConfig `koanf:"submissions"`
	Analytics   AnalyticsConfig   `koanf:"analytics"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
}

// SiteConfig holds public identity used by SEO metadata.
type SiteConfig struct {
	Name    string `koanf:"name"`
	BaseURL string `koanf:"base_url"`
	LogoURL string `koanf:"logo_url"`
}

// SessionConfig controls the session cookie codec.
type SessionConfig struct {
	CookieName string        `koanf:"cookie_name"`
	HashKey    string        `koanf:"hash_key"`
	BlockKey   string        `koanf:"block_key"`
	Secure     bool          `koanf:"secure"`
	Lifetime   time.Duration `koanf:"lifetime"`
}

// ContentConfig points the CMS at an override directory and/or a remote endpoint.
type ContentConfig struct {
	Dir       string        `koanf:"dir"`
	RemoteURL string        `koanf:"remote_url"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
}

// CareersConfig configures the job openings feed.
type CareersConfig struct {
	FeedURL  string        `koanf:"feed_url"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// NavConfig tunes the navigation chrome.
type NavConfig struct {
	MenuFile       string        `koanf:"menu_file"`
	StickyOffset   int           `koanf:"sticky_offset"`
	ScrolledOffset int           `koanf:"scrolled_offset"`
	ScrollThrottle time.Duration `koanf:"scroll_throttle"`
	CloseDelay     time.Duration `koanf:"close_delay"`
}

// I18nConfig lists the locales served by the site.
type I18nConfig struct {
	Default   string   `koanf:"default"`
	Supported []string `koanf:"supported"`
}

// AuthConfig selects the ID token verifier.
type AuthConfig struct {
	Provider          string `koanf:"provider"`
	FirebaseProjectID string `koanf:"firebase_project_id"`
}

// SubmissionsConfig configures form submission storage and fan-out.
type SubmissionsConfig struct {
	DatabasePath  string `koanf:"database_path"`
	PubSubProject string `koanf:"pubsub_project"`
	PubSubTopic   string `koanf:"pubsub_topic"`
}

// AnalyticsConfig holds client instrumentation identifiers surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string `koanf:"ga4_measurement_id"`
	GTMContainerID   string `koanf:"gtm_container_id"`
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Load reads configuration from the given YAML file (optional), overlays
// SHERAA_* environment variables, fills defaults, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKeyValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return key, out
	}
	return key, value
}

func (c *Config) applyDefaults() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = EnvLocal
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = defaultReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = defaultWriteTimeout
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = defaultIdleTimeout
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Site.Name == "" {
		c.Site.Name = defaultSiteName
	}
	if c.Site.BaseURL == "" {
		c.Site.BaseURL = defaultBaseURL
	}
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
	if c.Session.CookieName == "" {
		c.Session.CookieName = defaultCookieName
	}
	if c.Session.Lifetime <= 0 {
		c.Session.Lifetime = defaultSessionLifetime
	}
	if c.Content.CacheTTL <= 0 {
		c.Content.CacheTTL = defaultContentTTL
	}
	if c.Careers.CacheTTL <= 0 {
		c.Careers.CacheTTL = defaultCareersTTL
	}
	if c.Nav.StickyOffset == 0 {
		c.Nav.StickyOffset = defaultStickyOffset
	}
	if c.Nav.ScrolledOffset == 0 {
		c.Nav.ScrolledOffset = defaultScrolledOffset
	}
	if c.Nav.ScrollThrottle <= 0 {
		c.Nav.ScrollThrottle = defaultScrollThrottle
	}
	if c.Nav.CloseDelay <= 0 {
		c.Nav.CloseDelay = defaultCloseDelay
	}
	if c.I18n.Default == "" {
		c.I18n.Default = defaultLocale
	}
	if len(c.I18n.Supported) == 0 {
		c.I18n.Supported = []string{"en", "ar"}
	}
	if c.Auth.Provider == "" {
		c.Auth.Provider = AuthDev
		if c.Env == EnvProd {
			c.Auth.Provider = AuthNone
		}
	}
	if c.Submissions.PubSubProject == "" {
		c.Submissions.PubSubProject = c.ProjectID
	}
	if c.Submissions.DatabasePath == "" {
		c.Submissions.DatabasePath = defaultDatabasePath
	}
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var fields []string

	switch c.Env {
	case EnvLocal, EnvStaging, EnvProd:
	default:
		fields = append(fields, "env")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		fields = append(fields, "server.addr")
	}
	if u, err := url.Parse(c.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		fields = append(fields, "site.base_url")
	}
	if c.Env == EnvProd && len(c.Session.HashKey) < 32 {
		fields = append(fields, "session.hash_key")
	}
	if n := len(c.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		fields = append(fields, "session.block_key")
	}
	if c.Nav.StickyOffset < 0 {
		fields = append(fields, "nav.sticky_offset")
	}
	if c.Nav.ScrolledOffset < 0 {
		fields = append(fields, "nav.scrolled_offset")
	}
	if !slices.Contains(c.I18n.Supported, c.I18n.Default) {
		fields = append(fields, "i18n.default")
	}
	switch c.Auth.Provider {
	case AuthNone, AuthDev:
		if c.Auth.Provider == AuthDev && c.Env == EnvProd {
			fields = append(fields, "auth.provider")
		}
	case AuthFirebase:
		if strings.TrimSpace(c.Auth.FirebaseProjectID) == "" {
			fields = append(fields, "auth.firebase_project_id")
		}
	default:
		fields = append(fields, "auth.provider")
	}
	if c.Submissions.PubSubTopic != "" && c.Submissions.PubSubProject == "" {
		fields = append(fields, "submissions.pubsub_project")
	}

	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

// IsProduction reports whether the site runs in the prod environment.
func (c *Config) IsProduction() bool { return c.Env == EnvProd }
