package observability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sheraa.ae/site/internal/platform/requestctx"
)

func TestRequestLoggerRecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := InjectLoggerMiddleware(logger)(RequestLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/about", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.EqualValues(t, http.StatusTeapot, fields["status"])
	require.Equal(t, "/about", fields["path"])
	require.EqualValues(t, len("short and stout"), fields["bytes"])
}

func TestRecoveryMiddlewareUsesFallbackRenderer(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rendered := false
	handler := RecoveryMiddleware(logger, func(w http.ResponseWriter, r *http.Request) {
		rendered = true
		w.WriteHeader(http.StatusInternalServerError)
	})(boom)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resources", nil))

	require.True(t, rendered)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRecoveryMiddlewareWritesJSONForAPI(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	handler := RecoveryMiddleware(zap.NewNop(), func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("html renderer must not be used for api paths")
	})(boom)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/navigation", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "internal_server_error", payload["error"])
}

func TestParseCloudTrace(t *testing.T) {
	sc, ok := ParseCloudTrace("105445aa7843bc8bf206b12000100000/1;o=1")
	require.True(t, ok)
	require.Equal(t, "105445aa7843bc8bf206b12000100000", sc.TraceID().String())
	require.Equal(t, "0000000000000001", sc.SpanID().String())
	require.True(t, sc.IsSampled())
	require.True(t, sc.IsRemote())

	for _, bad := range []string{"", "abc/1", "105445aa7843bc8bf206b12000100000", "105445aa7843bc8bf206b12000100000/x;o=1"} {
		_, ok := ParseCloudTrace(bad)
		require.False(t, ok, bad)
	}
}

func TestTraceMiddlewareCorrelatesLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := TraceMiddleware("sheraa-prod")(InjectLoggerMiddleware(logger)(RequestLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, ok := requestctx.Trace(r.Context())
		require.True(t, ok)
		require.Equal(t, "105445aa7843bc8bf206b12000100000", info.TraceID)
		w.WriteHeader(http.StatusNoContent)
	}))))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set(CloudTraceHeader, "105445aa7843bc8bf206b12000100000/42;o=1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	require.Equal(t, "projects/sheraa-prod/traces/105445aa7843bc8bf206b12000100000", entries[0].ContextMap()["logging.googleapis.com/trace"])
}
