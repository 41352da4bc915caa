package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"catalogsync_api/metrics"
	"catalogsync_api/pkg/logger"
)

const (
	MaxRetries     = 3
	RetryInterval  = 2 * time.Second
	RequestTimeout = 100 * time.Second

	// ответы читаем целиком, но журналируем только голову
	maxBodyLogBytes = 2048
)

type Config struct {
	RequestsPerMinute int
	MaxRetries        int
	RetryInterval     time.Duration
	RequestTimeout    time.Duration
}

// Executor is the single gate for every call to the two external APIs.
// Pacing is a token bucket at the configured steady rate, which preserves the
// sequential ordering of the original fixed-sleep pacing while smoothing
// bursts. Transient failures are retried a bounded number of times; anything
// else surfaces as a typed *RemoteError.
type Executor struct {
	client        *http.Client
	limiter       *rate.Limiter
	maxRetries    int
	retryInterval time.Duration
	log           logger.Logger
}

func NewExecutor(cfg Config, writer io.Writer) *Executor {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 40
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = MaxRetries
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = RetryInterval
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = RequestTimeout
	}
	return &Executor{
		client:        &http.Client{Timeout: cfg.RequestTimeout},
		limiter:       rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
		maxRetries:    cfg.MaxRetries,
		retryInterval: cfg.RetryInterval,
		log:           logger.NewLogger(writer, "[Executor]"),
	}
}

// Do executes the request produced by build. The factory is re-invoked on
// every attempt so request bodies are fresh for retries. Callers that retry
// through here must keep the operation idempotent or accept the duplicate
// risk documented for image uploads.
func (e *Executor) Do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, []byte, error) {
	var lastErr error
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := build()
		if err != nil {
			return nil, nil, fmt.Errorf("creating request: %w", err)
		}
		req = req.WithContext(ctx)

		start := time.Now()
		resp, err := e.client.Do(req)
		if err != nil {
			// таймаут транспорта == транзиентная ошибка, никогда не успех
			metrics.RecordRequest(req.Method, req.URL.Path, 0, time.Since(start))
			lastErr = &RemoteError{Endpoint: req.URL.Path, Status: err.Error(), Transient: true}
			e.log.Log("attempt %d/%d %s %s failed: %s", attempt+1, e.maxRetries, req.Method, req.URL.Path, err)
			if !e.sleep(ctx) {
				return nil, nil, ctx.Err()
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		metrics.RecordRequest(req.Method, req.URL.Path, resp.StatusCode, time.Since(start))
		if readErr != nil {
			lastErr = &RemoteError{Endpoint: req.URL.Path, Status: readErr.Error(), Transient: true}
			if !e.sleep(ctx) {
				return nil, nil, ctx.Err()
			}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, body, nil
		}

		remoteErr := newRemoteError(req.URL.Path, resp.StatusCode, resp.Status, truncate(string(body), maxBodyLogBytes))
		if !remoteErr.Transient {
			return nil, nil, remoteErr
		}
		lastErr = remoteErr
		e.log.Log("attempt %d/%d %s %s: %s", attempt+1, e.maxRetries, req.Method, req.URL.Path, resp.Status)
		if !e.sleep(ctx) {
			return nil, nil, ctx.Err()
		}
	}
	return nil, nil, fmt.Errorf("failed after %d retries: %w", e.maxRetries, lastErr)
}

// AwaitVisibility polls check until it reports true, bounded by attempts.
// Used for the eventual-consistency lag observed on image attachment.
func (e *Executor) AwaitVisibility(ctx context.Context, attempts int, check func(ctx context.Context) (bool, error)) error {
	if attempts <= 0 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		visible, err := check(ctx)
		if err != nil {
			return err
		}
		if visible {
			return nil
		}
		if !e.sleep(ctx) {
			return ctx.Err()
		}
	}
	return ErrNotVisible
}

func (e *Executor) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(e.retryInterval):
		return true
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
