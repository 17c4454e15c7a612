package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"sheraa.ae/site/internal/platform/requestctx"
)

const csrfTokenContextKey contextKey = "csrf.token"

// CSRFConfig controls where the token is read from.
type CSRFConfig struct {
	HeaderName string
	FieldName  string
	// OnFailure renders the rejection. Defaults to a plain 403.
	OnFailure http.HandlerFunc
}

// CSRF ties a token to the session and requires it on unsafe methods, either
// in the header (htmx) or the form field (plain form posts). Requests carrying
// a bearer token are not cookie-authenticated and skip the check.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-CSRF-Token"
	}
	fieldName := cfg.FieldName
	if fieldName == "" {
		fieldName = "csrf_token"
	}
	onFailure := cfg.OnFailure
	if onFailure == nil {
		onFailure = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				http.Error(w, "csrf token error", http.StatusInternalServerError)
				return
			}
			token, err := sess.EnsureCSRFToken()
			if err != nil {
				http.Error(w, "csrf token error", http.StatusInternalServerError)
				return
			}

			if isUnsafeMethod(r.Method) && !hasBearer(r) {
				submitted := r.Header.Get(headerName)
				if submitted == "" {
					submitted = r.PostFormValue(fieldName)
				}
				if submitted == "" || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
					requestctx.Logger(r.Context()).Warn("csrf token mismatch", zap.String("path", r.URL.Path))
					onFailure(w, r)
					return
				}
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CSRFTokenFromContext returns the token issued for the current request.
func CSRFTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(csrfTokenContextKey).(string); ok {
		return token
	}
	return ""
}

func hasBearer(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Authorization")), "bearer ")
}

func isUnsafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	default:
		return true
	}
}
