package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-tiktok-business/core"
	"github.com/goliatone/go-tiktok-business/ratelimit"
	"github.com/goliatone/go-tiktok-business/transport"
	"github.com/google/uuid"
)

// Response is a decoded 2xx response. Header is nil when the Date or trace
// header was missing or malformed.
type Response[T any] struct {
	Body       core.Envelope[T]
	StatusCode int
	Header     *ResponseHeader
	Attempts   int
	Meta       core.ResponseMeta
}

type Executor struct {
	transport core.TransportAdapter
	defaults  core.CallDefaults
	scheme    core.AuthScheme
	limiter   core.Limiter
	logger    core.Logger
	sleep     func(ctx context.Context, d time.Duration) error
	now       func() time.Time
	callID    func() string
}

type Option func(*Executor)

func WithLogger(logger core.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

func WithLimiter(limiter core.Limiter) Option {
	return func(e *Executor) {
		e.limiter = limiter
	}
}

// WithSleeper replaces the wait between attempts.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(e *Executor) {
		e.sleep = sleep
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		e.now = now
	}
}

func New(adapter core.TransportAdapter, cfg core.Config, opts ...Option) *Executor {
	e := &Executor{
		transport: adapter,
		defaults:  cfg.CallDefaults(),
		scheme:    cfg.ResolvedAuthScheme(),
		sleep:     sleepContext,
		now:       func() time.Time { return time.Now().UTC() },
		callID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.logger = glog.Ensure(e.logger)
	if e.sleep == nil {
		e.sleep = sleepContext
	}
	if e.now == nil {
		e.now = func() time.Time { return time.Now().UTC() }
	}
	if e.callID == nil {
		e.callID = uuid.NewString
	}
	return e
}

func (e *Executor) Defaults() core.CallDefaults {
	if e == nil {
		return core.CallDefaults{}
	}
	return e.defaults
}

func (e *Executor) AuthScheme() core.AuthScheme {
	if e == nil {
		return core.AuthSchemeAccessToken
	}
	return e.scheme
}

// Execute sends the request built by build, retrying 429 and 500 responses
// and transport failures up to the resolved retry count.
func Execute[T any](ctx context.Context, e *Executor, build RequestFactory, opts *core.CallOptions) (Response[T], error) {
	if e == nil || e.transport == nil {
		return Response[T]{}, core.NewClientError(core.KindConfiguration, "executor requires a transport")
	}
	if build == nil {
		return Response[T]{}, core.NewClientError(core.KindConfiguration, "request factory is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	target := e.defaults.Resolve(opts)
	retryCount, interval := e.defaults.ResolveRetry(opts)
	schedule := backoff.WithMaxRetries(backoff.NewConstantBackOff(interval), uint64(retryCount))
	fields := map[string]any{"call_id": e.callID()}

	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return Response[T]{Attempts: attempts}, &core.ClientError{
				Kind: core.KindTransport, Message: "call cancelled", Attempts: attempts, Cause: err,
			}
		}
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return Response[T]{Attempts: attempts}, &core.ClientError{
					Kind: core.KindTransport, Message: "rate limiter refused attempt", Attempts: attempts, Cause: err,
				}
			}
		}

		req, err := build(target)
		if err != nil {
			return Response[T]{Attempts: attempts}, &core.ClientError{
				Kind: core.KindConfiguration, Message: "build request", Attempts: attempts, Cause: err,
			}
		}
		if req.Timeout <= 0 {
			req.Timeout = target.Timeout
		}
		fields["method"] = req.Method
		if path, ok := req.Metadata["path"]; ok {
			fields["path"] = path
		}

		attempts++
		fields["attempt"] = attempts
		res, err := e.transport.Do(ctx, req)
		if err != nil {
			if transport.IsRequestError(err) {
				return Response[T]{Attempts: attempts}, &core.ClientError{
					Kind: core.KindConfiguration, Message: "invalid request", Attempts: attempts, Cause: err,
				}
			}
			if ctx.Err() != nil {
				return Response[T]{Attempts: attempts}, &core.ClientError{
					Kind: core.KindTransport, Message: "call cancelled", Attempts: attempts, Cause: err,
				}
			}
			delay := schedule.NextBackOff()
			if delay == backoff.Stop {
				clientErr := &core.ClientError{Kind: core.KindTransport, Message: "send request", Attempts: attempts, Cause: err}
				e.log(ctx, "error", "tiktok call failed", fields, clientErr)
				return Response[T]{Attempts: attempts}, clientErr
			}
			e.log(ctx, "warn", "tiktok transport failure, retrying", fields, err)
			if err := e.sleep(ctx, delay); err != nil {
				return Response[T]{Attempts: attempts}, &core.ClientError{
					Kind: core.KindTransport, Message: "call cancelled", Attempts: attempts, Cause: err,
				}
			}
			continue
		}

		if IsTransientStatus(res.StatusCode) {
			delay := schedule.NextBackOff()
			if delay == backoff.Stop {
				clientErr := &core.ClientError{
					Kind:       core.KindRetryExhausted,
					Message:    "transient status persisted",
					StatusCode: res.StatusCode,
					RawBody:    string(res.Body),
					Envelope:   decodeErrorEnvelope(res.Body),
					Attempts:   attempts,
				}
				e.log(ctx, "error", "tiktok call failed", fields, clientErr)
				return partialResponse[T](e, res, attempts), clientErr
			}
			fields["status_code"] = res.StatusCode
			e.log(ctx, "warn", "tiktok transient status, retrying", fields, nil)
			if err := e.sleep(ctx, delay); err != nil {
				return Response[T]{Attempts: attempts}, &core.ClientError{
					Kind: core.KindTransport, Message: "call cancelled", Attempts: attempts, Cause: err,
				}
			}
			continue
		}

		out, err := decodeResponse[T](e, res, attempts)
		if err != nil {
			e.log(ctx, "error", "tiktok call failed", fields, err)
			return out, err
		}
		fields["status_code"] = res.StatusCode
		fields["request_id"] = out.Body.RequestID
		if !out.Body.Recognized() {
			drift := copyFields(fields)
			if keys := out.Body.Extra.Keys(); len(keys) > 0 {
				drift["unknown_fields"] = keys
			} else {
				drift["unknown_fields"] = "nested"
			}
			e.log(ctx, "warn", "tiktok response carries unrecognized fields", drift, nil)
		}
		e.log(ctx, "debug", "tiktok call completed", fields, nil)
		return out, nil
	}
}

// IsTransientStatus reports whether status is retried: 429 and 500 only.
func IsTransientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusInternalServerError
}

func decodeResponse[T any](e *Executor, res core.TransportResponse, attempts int) (Response[T], error) {
	out := partialResponse[T](e, res, attempts)
	text := string(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return out, &core.ClientError{
			Kind:       core.KindHTTP,
			StatusCode: res.StatusCode,
			RawBody:    text,
			Envelope:   decodeErrorEnvelope(res.Body),
			Attempts:   attempts,
		}
	}
	var body core.Envelope[T]
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		return out, &core.ClientError{
			Kind:       core.KindHTTP,
			Message:    "decode response envelope",
			StatusCode: res.StatusCode,
			RawBody:    text,
			Attempts:   attempts,
			Cause:      err,
		}
	}
	out.Body = body
	return out, nil
}

func partialResponse[T any](e *Executor, res core.TransportResponse, attempts int) Response[T] {
	return Response[T]{
		StatusCode: res.StatusCode,
		Header:     ParseResponseHeader(res.Headers),
		Attempts:   attempts,
		Meta:       ratelimit.NormalizeResponse(res, e.now()),
	}
}

func decodeErrorEnvelope(body []byte) *core.Envelope[json.RawMessage] {
	if len(body) == 0 {
		return nil
	}
	var env core.Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	return &env
}

func (e *Executor) log(ctx context.Context, level string, message string, fields map[string]any, err error) {
	entry := copyFields(fields)
	if err != nil {
		entry["error"] = err.Error()
	}
	core.LogWithLevel(ctx, e.logger, level, message, entry)
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for key, value := range fields {
		out[key] = value
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
