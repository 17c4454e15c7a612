package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
)

// FirebaseTokenVerifier abstracts the Firebase Admin SDK client for testability.
type FirebaseTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// FirebaseAuthenticator validates Firebase ID tokens and maps them onto a User.
type FirebaseAuthenticator struct {
	verifier FirebaseTokenVerifier
}

// NewFirebaseAuthenticator constructs an Authenticator backed by the provided verifier.
func NewFirebaseAuthenticator(verifier FirebaseTokenVerifier) *FirebaseAuthenticator {
	if verifier == nil {
		panic("firebase token verifier is required")
	}
	return &FirebaseAuthenticator{verifier: verifier}
}

// NewFirebase initialises the Firebase Admin SDK for projectID using
// application default credentials.
func NewFirebase(ctx context.Context, projectID string) (*FirebaseAuthenticator, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("initialise firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialise firebase auth client: %w", err)
	}
	return NewFirebaseAuthenticator(client), nil
}

// Authenticate verifies the supplied ID token using Firebase and builds a User object.
func (f *FirebaseAuthenticator) Authenticate(ctx context.Context, token string) (*User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, NewError(ReasonMissingToken, ErrUnauthorized)
	}

	verified, err := f.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		switch {
		case firebaseauth.IsIDTokenExpired(err), errors.Is(err, ErrTokenExpired):
			return nil, NewError(ReasonTokenExpired, err)
		default:
			return nil, NewError(ReasonTokenInvalid, err)
		}
	}

	return &User{
		UID:   verified.UID,
		Email: claimString(verified.Claims["email"]),
		Name:  claimString(verified.Claims["name"]),

		EmailVerified: claimBool(verified.Claims["email_verified"]),
	}, nil
}

func claimString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case *string:
		if v == nil {
			return ""
		}
		return strings.TrimSpace(*v)
	default:
		return ""
	}
}

func claimBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case *bool:
		return v != nil && *v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}
