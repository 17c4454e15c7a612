package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"sheraa.ae/site/internal/platform/requestctx"
	"sheraa.ae/site/internal/session"
)

const requestSessionKey contextKey = "site.session"

// SessionStore abstracts the session manager for middleware integration.
type SessionStore interface {
	Load(*http.Request) (*session.Session, error)
	New() *session.Session
	Save(http.ResponseWriter, *session.Session) error
	Destroy(http.ResponseWriter)
}

// Session attaches the decoded session to the request context and persists
// it as a cookie. The cookie is written just before the response headers so
// handlers may mutate the session until they start writing.
func Session(store SessionStore) func(http.Handler) http.Handler {
	if store == nil {
		panic("session store is required")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := requestctx.Logger(r.Context())
			sess, err := store.Load(r)
			if errors.Is(err, session.ErrExpired) {
				logger.Debug("session expired; resetting")
				sess = store.New()
			} else if err != nil || sess == nil {
				if err != nil {
					logger.Warn("session load failed", zap.Error(err))
				}
				sess = store.New()
			}

			sw := &sessionWriter{ResponseWriter: w}
			sw.save = func() {
				if err := store.Save(w, sess); err != nil {
					logger.Error("session save failed", zap.Error(err))
				}
			}

			ctx := context.WithValue(r.Context(), requestSessionKey, sess)
			next.ServeHTTP(sw, r.WithContext(ctx))
			sw.commit()
		})
	}
}

// SessionFromContext retrieves the session attached to this request.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(requestSessionKey).(*session.Session)
	return sess, ok && sess != nil
}

type sessionWriter struct {
	http.ResponseWriter
	save  func()
	saved bool
}

func (w *sessionWriter) commit() {
	if w.saved {
		return
	}
	w.saved = true
	w.save()
}

func (w *sessionWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *sessionWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
