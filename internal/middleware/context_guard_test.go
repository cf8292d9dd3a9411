package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/pneumodetect/internal/middleware"
)

func TestContextGuard(t *testing.T) {
	t.Parallel()

	const header = "X-Handler-Called"

	handler := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(header, "true")
		w.WriteHeader(http.StatusOK)
	}

	tests := []struct {
		name    string
		code    int
		header  string
		ctxFunc func() (context.Context, context.CancelFunc)
	}{
		{"Normal request", http.StatusOK, "true", func() (context.Context, context.CancelFunc) {
			return context.WithCancel(context.Background())
		}},
		{"Canceled request", http.StatusRequestTimeout, "", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"Request timed out", http.StatusRequestTimeout, "", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
			<-ctx.Done()
			return ctx, cancel
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := tt.ctxFunc()
			defer cancel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/", http.NoBody)
			middleware.ContextGuard(http.HandlerFunc(handler)).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}

			if got := rec.Header().Get(header); got != tt.header {
				t.Errorf("rec.Header().Get(%q) = %q, want: %q", header, got, tt.header)
			}
		})
	}
}
