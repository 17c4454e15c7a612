package session

import (
	"time"

	"sheraa.ae/site/internal/navstate"
)

// ID returns the stable session identifier.
func (s *Session) ID() string { return s.data.ID }

// CreatedAt returns the session creation timestamp.
func (s *Session) CreatedAt() time.Time { return s.data.CreatedAt }

// EnsureCSRFToken returns the existing CSRF token or generates a new one on demand.
func (s *Session) EnsureCSRFToken() (string, error) {
	if s.data.CSRFToken != "" {
		return s.data.CSRFToken, nil
	}
	token, err := generateToken(32)
	if err != nil {
		return "", err
	}
	s.data.CSRFToken = token
	s.dirty = true
	return token, nil
}

// CSRFToken returns the stored CSRF token value.
func (s *Session) CSRFToken() string { return s.data.CSRFToken }

// User returns the signed-in user, if any.
func (s *Session) User() *User {
	if s.data.User == nil {
		return nil
	}
	u := *s.data.User
	return &u
}

// SetUser stores or clears the signed-in user.
func (s *Session) SetUser(user *User) {
	if user == nil {
		if s.data.User != nil {
			s.data.User = nil
			s.dirty = true
		}
		return
	}
	if s.data.User != nil && *s.data.User == *user {
		return
	}
	u := *user
	s.data.User = &u
	s.dirty = true
}

// Theme returns the stored colour scheme preference.
func (s *Session) Theme() string { return s.data.Theme }

// SetTheme stores the colour scheme preference.
func (s *Session) SetTheme(theme string) {
	if s.data.Theme == theme {
		return
	}
	s.data.Theme = theme
	s.dirty = true
}

// Locale returns the stored locale.
func (s *Session) Locale() string { return s.data.Locale }

// SetLocale stores the resolved locale.
func (s *Session) SetLocale(lang string) {
	if s.data.Locale == lang {
		return
	}
	s.data.Locale = lang
	s.dirty = true
}

// Nav returns the persisted navigation chrome state.
func (s *Session) Nav() navstate.State { return s.data.Nav }

// SetNav stores the navigation chrome state.
func (s *Session) SetNav(state navstate.State) {
	if s.data.Nav == state {
		return
	}
	s.data.Nav = state
	s.dirty = true
}

// AddToast queues a notification. Only the most recent few are kept.
func (s *Session) AddToast(kind, key string) {
	s.data.Toasts = append(s.data.Toasts, Toast{Kind: kind, Key: key})
	if n := len(s.data.Toasts); n > maxToasts {
		s.data.Toasts = s.data.Toasts[n-maxToasts:]
	}
	s.dirty = true
}

// PopToasts returns and clears queued notifications.
func (s *Session) PopToasts() []Toast {
	if len(s.data.Toasts) == 0 {
		return nil
	}
	out := s.data.Toasts
	s.data.Toasts = nil
	s.dirty = true
	return out
}

// Destroy marks the session for deletion at the end of the request.
func (s *Session) Destroy() {
	s.destroyed = true
	s.dirty = true
}

// Destroyed exposes the destroy marker.
func (s *Session) Destroyed() bool { return s.destroyed }

// Touch updates the last active timestamp.
func (s *Session) Touch(now time.Time) {
	now = now.UTC()
	if now.After(s.data.LastActive) {
		s.data.LastActive = now
		s.dirty = true
	}
}

// Dirty indicates whether the session contents have changed during this request.
func (s *Session) Dirty() bool { return s.dirty }
