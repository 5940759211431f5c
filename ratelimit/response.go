package ratelimit

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
)

const (
	HeaderLogID      = "X-Tt-Logid"
	HeaderRequestID  = "X-Tt-Request-Id"
	HeaderRetryAfter = "Retry-After"

	defaultRetryAfter429 = 5 * time.Second
)

// NormalizeResponse extracts request tracing and rate limit hints from a
// platform response.
func NormalizeResponse(res core.TransportResponse, now time.Time) core.ResponseMeta {
	meta := core.ResponseMeta{
		StatusCode: res.StatusCode,
		Metadata:   map[string]any{},
	}
	if logID := headerValue(res.Headers, HeaderLogID); logID != "" {
		meta.RequestID = logID
		meta.Metadata["tiktok_log_id"] = logID
	} else if requestID := headerValue(res.Headers, HeaderRequestID); requestID != "" {
		meta.RequestID = requestID
	}
	if meta.RequestID != "" {
		meta.Metadata["tiktok_request_id"] = meta.RequestID
	}

	if limit, ok := parseHeaderInt(res.Headers, "x-ratelimit-limit"); ok {
		meta.Metadata["tiktok_rate_limit"] = limit
	}
	if remaining, ok := parseHeaderInt(res.Headers, "x-ratelimit-remaining"); ok {
		meta.Metadata["tiktok_rate_remaining"] = remaining
	}

	if retryAfter, ok := parseRetryAfter(res.Headers, now); ok {
		meta.RetryAfter = &retryAfter
		meta.Metadata["tiktok_retry_after_source"] = "header"
	}
	if res.StatusCode == http.StatusTooManyRequests && meta.RetryAfter == nil {
		retryAfter := defaultRetryAfter429
		meta.RetryAfter = &retryAfter
		meta.Metadata["tiktok_retry_after_source"] = "default"
	}
	if meta.RetryAfter != nil {
		meta.Metadata["tiktok_retry_after_seconds"] = int64(meta.RetryAfter.Seconds())
	}
	return meta
}

func parseRetryAfter(headers map[string]string, now time.Time) (time.Duration, bool) {
	raw := headerValue(headers, HeaderRetryAfter)
	if raw == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if retryAt, err := http.ParseTime(raw); err == nil && retryAt.After(now) {
		return retryAt.Sub(now), true
	}
	return 0, false
}

func parseHeaderInt(headers map[string]string, key string) (int, bool) {
	value := headerValue(headers, key)
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func headerValue(headers map[string]string, key string) string {
	value, _ := core.HeaderValue(headers, key)
	return strings.TrimSpace(value)
}
