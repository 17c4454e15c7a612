// Package appctx carries the typed per-request application state (user,
// theme, locale, path) from middleware down to the views.
package appctx

import (
	"context"

	"sheraa.ae/site/internal/i18n"
	"sheraa.ae/site/internal/navstate"
	"sheraa.ae/site/internal/session"
)

// Theme is the visitor colour scheme preference.
type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

// ParseTheme maps a submitted value to a Theme, defaulting to system.
func ParseTheme(v string) Theme {
	switch Theme(v) {
	case ThemeLight, ThemeDark:
		return Theme(v)
	}
	return ThemeSystem
}

// Next cycles light → dark → system → light.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	}
	return ThemeLight
}

// Analytics holds client instrumentation identifiers.
type Analytics struct {
	GA4MeasurementID string
	GTMContainerID   string
}

// State is the application context for one request.
type State struct {
	User      *session.User
	Theme     Theme
	Lang      string
	Path      string
	CSRFToken string
	HTMX      bool
	RequestID string
	Nav       navstate.View
	Analytics Analytics
	Bundle    *i18n.Bundle
}

// LoggedIn reports whether a user is signed in.
func (s *State) LoggedIn() bool { return s != nil && s.User != nil }

// Dir returns the text direction of the active language.
func (s *State) Dir() string { return i18n.Dir(s.Lang) }

// T translates key in the active language.
func (s *State) T(key string) string {
	if s == nil || s.Bundle == nil {
		return key
	}
	return s.Bundle.T(s.Lang, key)
}

// Tf formats the translation of key with args.
func (s *State) Tf(key string, args ...any) string {
	if s == nil || s.Bundle == nil {
		return key
	}
	return s.Bundle.Tf(s.Lang, key, args...)
}

type ctxKey struct{}

// With attaches state to ctx.
func With(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the state attached to ctx or an empty default.
func From(ctx context.Context) *State {
	if ctx != nil {
		if s, ok := ctx.Value(ctxKey{}).(*State); ok && s != nil {
			return s
		}
	}
	return &State{Theme: ThemeSystem, Lang: "en", Path: "/"}
}
