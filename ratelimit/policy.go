package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-tiktok-business/core"
	"golang.org/x/time/rate"
)

// ThrottledError is returned when the client-side limiter refuses to admit a
// request before ctx expires.
type ThrottledError struct {
	Bucket     string
	RetryAfter time.Duration
	Cause      error
}

func (e ThrottledError) Error() string {
	msg := fmt.Sprintf("ratelimit: bucket %q throttled", strings.TrimSpace(e.Bucket))
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(" for %s", e.RetryAfter)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e ThrottledError) Unwrap() error {
	return e.Cause
}

func (e ThrottledError) ToServiceError() *goerrors.Error {
	metadata := map[string]any{
		"bucket": strings.TrimSpace(e.Bucket),
	}
	if e.RetryAfter > 0 {
		metadata["retry_after_ms"] = e.RetryAfter.Milliseconds()
	}
	return goerrors.New(e.Error(), goerrors.CategoryRateLimit).
		WithCode(http.StatusTooManyRequests).
		WithTextCode(core.ErrorRateLimited).
		WithMetadata(metadata)
}

// Limiter is a token bucket shared by every call of one client.
type Limiter struct {
	bucket  string
	limiter *rate.Limiter
}

// NewLimiter returns nil when cfg does not enable limiting.
func NewLimiter(bucket string, cfg core.RateLimitConfig) *Limiter {
	if cfg.RequestsPerMinute <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	perSecond := rate.Limit(float64(cfg.RequestsPerMinute) / 60)
	return &Limiter{
		bucket:  strings.TrimSpace(bucket),
		limiter: rate.NewLimiter(perSecond, burst),
	}
}

func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return ThrottledError{Bucket: l.bucket, RetryAfter: l.delay(), Cause: err}
	}
	return nil
}

func (l *Limiter) delay() time.Duration {
	limit := l.limiter.Limit()
	if limit <= 0 || limit == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(limit)).Round(time.Millisecond)
}

var _ core.Limiter = (*Limiter)(nil)
