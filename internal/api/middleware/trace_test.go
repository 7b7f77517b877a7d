package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/creditclimb/engine/internal/api/shared"
	"github.com/creditclimb/engine/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var sawTraceID string
	var sawLogger bool

	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawTraceID = shared.GetTraceID(r.Context())
		sawLogger = logger.FromContext(r.Context()) != nil
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}
	if sawTraceID == "" {
		t.Error("Expected the handler to see a trace ID in its context")
	}
	if !sawLogger {
		t.Error("Expected the handler to see a request-scoped logger in its context")
	}
}
