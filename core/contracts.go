package core

import (
	"context"
	"strings"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// Limiter gates each outbound attempt. Wait blocks until the attempt may
// proceed or ctx is done.
type Limiter interface {
	Wait(ctx context.Context) error
}

type InboundRequest struct {
	Headers  map[string]string
	Body     []byte
	Metadata map[string]any
}

// ResponseMeta is the rate limit and tracing metadata read off a platform
// response.
type ResponseMeta struct {
	StatusCode int
	RequestID  string
	RetryAfter *time.Duration
	Metadata   map[string]any
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

// HeaderValue looks name up case-insensitively.
func HeaderValue(headers map[string]string, name string) (string, bool) {
	if len(headers) == 0 {
		return "", false
	}
	if value, ok := headers[name]; ok {
		return value, true
	}
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}
