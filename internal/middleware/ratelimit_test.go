package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	e := echo.New()
	e.Use(RateLimit(ctx, 2, time.Minute))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i, code := range want {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != code {
			t.Errorf("request %d: expected %d, got %d", i+1, code, rec.Code)
		}
	}

	// Another client has its own window.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for a different client, got %d", rec.Code)
	}
}

func TestSweepRateLimits_StopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var sweeps atomic.Int32
	done := make(chan struct{})
	go func() {
		sweepRateLimits(ctx, time.Millisecond, func(time.Time) { sweeps.Add(1) })
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for sweeps.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("sweep never ran")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep goroutine still running after cancel")
	}
}
