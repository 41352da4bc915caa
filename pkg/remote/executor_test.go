package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testExecutor() *Executor {
	return NewExecutor(Config{
		RequestsPerMinute: 600000,
		MaxRetries:        3,
		RetryInterval:     time.Millisecond,
		RequestTimeout:    time.Second,
	}, io.Discard)
}

func getRequest(t *testing.T, url string) func() (*http.Request, error) {
	t.Helper()
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func TestDoRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, body, err := testExecutor().Do(context.Background(), getRequest(t, srv.URL+"/products"))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if string(body) != `{"ok":true}` {
		t.Fatalf("body = %q", body)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("server saw %d calls, want 3", got)
	}
}

func TestDoSurfacesValidationRejectionWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"sku":"has already been taken"}}`))
	}))
	defer srv.Close()

	_, _, err := testExecutor().Do(context.Background(), getRequest(t, srv.URL+"/products"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsValidationRejection(err) {
		t.Fatalf("IsValidationRejection = false for %v", err)
	}
	if IsTransient(err) {
		t.Fatalf("IsTransient = true for %v", err)
	}
	var re *RemoteError
	if !errors.As(err, &re) || re.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server saw %d calls, want 1 (no retry)", got)
	}
}

func TestDoGivesUpAfterBoundedRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, _, err := testExecutor().Do(context.Background(), getRequest(t, srv.URL+"/products"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsTransient(err) {
		t.Fatalf("exhausted retries should stay transient: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("server saw %d calls, want 3", got)
	}
}

func TestAwaitVisibility(t *testing.T) {
	e := testExecutor()

	var polls int
	err := e.AwaitVisibility(context.Background(), 5, func(ctx context.Context) (bool, error) {
		polls++
		return polls >= 3, nil
	})
	if err != nil {
		t.Fatalf("AwaitVisibility: %v", err)
	}
	if polls != 3 {
		t.Fatalf("polls = %d, want 3", polls)
	}

	err = e.AwaitVisibility(context.Background(), 2, func(ctx context.Context) (bool, error) {
		return false, nil
	})
	if !errors.Is(err, ErrNotVisible) {
		t.Fatalf("err = %v, want ErrNotVisible", err)
	}
}
