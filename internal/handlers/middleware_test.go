package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"insulin_advisor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// minimal router wiring only the middleware + an echo endpoint
func newMiddlewareOnlyRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(h.requestID, h.requestLogger)
	r.GET("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"requestId": requestIDFrom(c)})
	})
	return r
}

func TestRequestID_GeneratedWhenMissing(t *testing.T) {
	r := newMiddlewareOnlyRouter(NewHandler(&service.Service{}, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))

	id := w.Header().Get(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	if !strings.Contains(w.Body.String(), id) {
		t.Fatalf("context id differs from header: %s", w.Body.String())
	}
}

func TestRequestID_PropagatedAndBounded(t *testing.T) {
	r := newMiddlewareOnlyRouter(NewHandler(&service.Service{}, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set(requestIDHeader, "ward-3-bed-7")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "ward-3-bed-7" {
		t.Fatalf("expected propagated id, got %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLen+1))
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); len(got) > maxRequestIDLen {
		t.Fatalf("oversized id should be replaced, got len %d", len(got))
	}
}

func TestCORS(t *testing.T) {
	cases := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"wildcard", []string{"*"}, "http://ward.local", "*"},
		{"allowed", []string{"http://ward.local"}, "http://ward.local", "http://ward.local"},
		{"denied", []string{"http://ward.local"}, "http://evil.local", ""},
		{"disabled", nil, "http://ward.local", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{}, WithCORSOrigins(tc.origins))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", tc.origin)
			r.ServeHTTP(w, req)
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.want {
				t.Fatalf("Allow-Origin=%q want %q", got, tc.want)
			}
		})
	}
}

func TestCheckOrigin(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, WithCORSOrigins([]string{"http://ward.local"}))

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if !h.checkOrigin(req) {
		t.Fatal("request without Origin should be accepted")
	}
	req.Header.Set("Origin", "http://ward.local")
	if !h.checkOrigin(req) {
		t.Fatal("listed origin should be accepted")
	}
	req.Header.Set("Origin", "http://evil.local")
	if h.checkOrigin(req) {
		t.Fatal("unlisted origin should be rejected")
	}
}
