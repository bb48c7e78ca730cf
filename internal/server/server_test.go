package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := map[string]string{"": "", "8080": ":8080", ":9000": ":9000"}
	for in, want := range cases {
		if got := normalizeAddr(in); got != want {
			t.Errorf("normalizeAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	s := &Server{}
	hs := s.newHTTPServer(":0", http.NotFoundHandler())
	if hs.ReadTimeout != defaultReadTimeout || hs.WriteTimeout != defaultWriteTimeout {
		t.Fatalf("defaults not applied: %v %v", hs.ReadTimeout, hs.WriteTimeout)
	}

	s = &Server{ReadTimeout: time.Second, WriteTimeout: 2 * time.Second}
	hs = s.newHTTPServer(":0", http.NotFoundHandler())
	if hs.ReadTimeout != time.Second || hs.WriteTimeout != 2*time.Second {
		t.Fatalf("configured timeouts ignored: %v %v", hs.ReadTimeout, hs.WriteTimeout)
	}
}

func TestShutdown_BeforeRun(t *testing.T) {
	if err := (&Server{}).Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestRun_AfterShutdownDoesNotListen(t *testing.T) {
	s := &Server{}
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if err := s.Run("0", http.NotFoundHandler()); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("Run after Shutdown = %v, want ErrServerClosed", err)
	}
}

func TestShutdown_ConcurrentWithRun(t *testing.T) {
	s := &Server{}
	done := make(chan error, 1)
	go func() { done <- s.Run("0", http.NotFoundHandler()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("Run = %v, want ErrServerClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}
