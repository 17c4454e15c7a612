// Package requestctx carries per-request values shared by the middleware
// chain and handlers: the scoped logger and the inbound trace.
package requestctx

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is stored once per request and copied on every write so parent
// contexts never observe a child's values.
type scope struct {
	logger *zap.Logger
	trace  *TraceInfo
}

// TraceInfo identifies the trace a request belongs to.
type TraceInfo struct {
	ProjectID string
	TraceID   string
	SpanID    string
	Sampled   bool
}

// Resource returns the Cloud Logging trace resource name, or "" without a project.
func (t TraceInfo) Resource() string {
	if t.ProjectID == "" || t.TraceID == "" {
		return ""
	}
	return "projects/" + t.ProjectID + "/traces/" + t.TraceID
}

// Correlation lists the identifiers a visitor can quote in a support request.
type Correlation struct {
	RequestID string
	TraceID   string
}

var nop = zap.NewNop()

func current(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func store(ctx context.Context, s scope) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithLogger returns ctx carrying logger. A nil logger stores the no-op logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	s := current(ctx)
	s.logger = logger
	if s.logger == nil {
		s.logger = nop
	}
	return store(ctx, s)
}

// Logger returns the request logger, falling back to a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if l := current(ctx).logger; l != nil {
		return l
	}
	return nop
}

// HasLogger reports whether a real logger was attached to ctx.
func HasLogger(ctx context.Context) bool {
	l := current(ctx).logger
	return l != nil && l != nop
}

// WithTrace records the inbound trace on ctx.
func WithTrace(ctx context.Context, info TraceInfo) context.Context {
	s := current(ctx)
	s.trace = &info
	return store(ctx, s)
}

// Trace returns the trace recorded for the request.
func Trace(ctx context.Context) (TraceInfo, bool) {
	if t := current(ctx).trace; t != nil {
		return *t, true
	}
	return TraceInfo{}, false
}

// Correlate collects the request and trace identifiers known for ctx.
func Correlate(ctx context.Context) Correlation {
	var c Correlation
	if ctx == nil {
		return c
	}
	c.RequestID = middleware.GetReqID(ctx)
	if t, ok := Trace(ctx); ok {
		c.TraceID = t.TraceID
	}
	return c
}
