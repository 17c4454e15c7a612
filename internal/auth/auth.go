package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is returned when authentication fails.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenExpired is returned when the identity token has expired.
	ErrTokenExpired = errors.New("id token expired")
)

const (
	// ReasonMissingToken indicates an auth attempt without credentials.
	ReasonMissingToken = "missing_token"
	// ReasonTokenInvalid indicates a malformed or invalid token.
	ReasonTokenInvalid = "token_invalid"
	// ReasonTokenExpired indicates an expired token which may be recoverable.
	ReasonTokenExpired = "token_expired"
	// ReasonDisabled indicates sign-in is switched off for this deployment.
	ReasonDisabled = "disabled"
)

// User is the identity returned by the hosted auth provider.
type User struct {
	UID   string
	Email string
	Name  string
	// EmailVerified reports whether the provider confirmed ownership of Email.
	EmailVerified bool
}

// Authenticator resolves an ID token into a User.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*User, error)
}

// Error carries a reason code for failed authentication attempts.
type Error struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// NewError constructs an Error with the provided reason.
func NewError(reason string, err error) error {
	return &Error{Reason: reason, Err: err}
}

// Reason extracts the reason code from err, defaulting to token_invalid.
func Reason(err error) string {
	var authErr *Error
	if errors.As(err, &authErr) && authErr.Reason != "" {
		return authErr.Reason
	}
	return ReasonTokenInvalid
}

// TokenFromRequest reads the ID token from the Authorization header or the
// idToken form field.
func TokenFromRequest(r *http.Request) string {
	if token := parseBearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return strings.TrimSpace(r.PostFormValue("idToken"))
}

func parseBearerToken(header string) string {
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// Passthrough accepts any non-empty token and is intended for local development.
// A token of the form "uid|email" fills the email as well and marks it
// verified; "uid|email|unverified" leaves it unverified.
func Passthrough() Authenticator { return passthroughAuthenticator{} }

type passthroughAuthenticator struct{}

func (passthroughAuthenticator) Authenticate(_ context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, NewError(ReasonMissingToken, ErrUnauthorized)
	}
	uid, rest, _ := strings.Cut(token, "|")
	email, flag, _ := strings.Cut(rest, "|")
	return &User{UID: uid, Email: email, EmailVerified: email != "" && flag != "unverified"}, nil
}

// Disabled rejects every sign-in attempt.
func Disabled() Authenticator { return disabledAuthenticator{} }

type disabledAuthenticator struct{}

func (disabledAuthenticator) Authenticate(context.Context, string) (*User, error) {
	return nil, NewError(ReasonDisabled, ErrUnauthorized)
}
