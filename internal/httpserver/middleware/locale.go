package middleware

import (
	"context"
	"net/http"
	"time"

	"sheraa.ae/site/internal/i18n"
)

const localeContextKey contextKey = "locale"

// LocaleConfig configures the language cookie.
type LocaleConfig struct {
	CookieName string
	Secure     bool
}

// Locale resolves the request language from ?hl=, then the hl cookie, then
// the session, then Accept-Language. An explicit ?hl= is remembered in the
// cookie. The result is stored in the session and the context and announced
// in Content-Language.
func Locale(bundle *i18n.Bundle, cfg LocaleConfig) func(http.Handler) http.Handler {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "hl"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := r.URL.Query().Get("hl"); q != "" {
				if l, ok := bundle.Normalize(q); ok {
					lang = l
					http.SetCookie(w, &http.Cookie{
						Name:     cookieName,
						Value:    l,
						Path:     "/",
						MaxAge:   int((365 * 24 * time.Hour).Seconds()),
						Secure:   cfg.Secure,
						HttpOnly: true,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}
			if lang == "" {
				if c, err := r.Cookie(cookieName); err == nil {
					if l, ok := bundle.Normalize(c.Value); ok {
						lang = l
					}
				}
			}
			sess, hasSession := SessionFromContext(r.Context())
			if lang == "" && hasSession && sess.Locale() != "" {
				if l, ok := bundle.Normalize(sess.Locale()); ok {
					lang = l
				}
			}
			if lang == "" {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			if hasSession {
				sess.SetLocale(lang)
			}

			w.Header().Set("Content-Language", lang)
			ctx := context.WithValue(r.Context(), localeContextKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the resolved language or "" when unset.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeContextKey).(string); ok {
		return v
	}
	return ""
}

// VaryLocale sets Vary header for Accept-Language on dynamic responses.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
