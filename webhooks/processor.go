package webhooks

import (
	"context"
	"fmt"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-tiktok-business/core"
)

type EventHandler interface {
	HandleEvent(ctx context.Context, event Event) error
}

type EventHandlerFunc func(ctx context.Context, event Event) error

func (f EventHandlerFunc) HandleEvent(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Result is the outcome of processing one delivery. StatusCode is what the
// platform should be answered with.
type Result struct {
	Accepted   bool
	StatusCode int
	Event      *Event
	Metadata   map[string]any
}

// Processor verifies a delivery, decodes its event and dispatches it:
// verify -> decode -> burst check -> handle.
type Processor struct {
	Verifier RequestVerifier
	Handler  EventHandler
	Burst    BurstController
	Logger   core.Logger
}

func NewProcessor(verifier RequestVerifier, handler EventHandler) *Processor {
	return &Processor{
		Verifier: verifier,
		Handler:  handler,
	}
}

func (p *Processor) Process(ctx context.Context, req core.InboundRequest) (Result, error) {
	if p == nil || p.Verifier == nil || p.Handler == nil {
		return Result{StatusCode: http.StatusInternalServerError},
			core.NewClientError(core.KindConfiguration, "webhook processor requires verifier and handler")
	}
	logger := glog.Ensure(p.Logger)

	if err := p.Verifier.Verify(ctx, req); err != nil {
		reason, _ := core.KindOf(err)
		core.LogWithLevel(ctx, logger, "warn", "tiktok webhook rejected", map[string]any{
			"reason": string(reason),
			"error":  err.Error(),
		})
		return Result{
			StatusCode: http.StatusUnauthorized,
			Metadata:   map[string]any{"rejected": true},
		}, err
	}

	event, err := ParseEvent(req.Body)
	if err != nil {
		core.LogWithLevel(ctx, logger, "warn", "tiktok webhook undecodable", map[string]any{"error": err.Error()})
		return Result{StatusCode: http.StatusBadRequest}, err
	}
	metadata := map[string]any{
		"event":       string(event.Event),
		"user_openid": event.UserOpenID,
	}
	if !event.Recognized() {
		drift := cloneMetadata(metadata)
		drift["unknown_fields"] = event.Extra.Keys()
		core.LogWithLevel(ctx, logger, "warn", "tiktok webhook carries unrecognized fields", drift)
	}

	if p.Burst != nil {
		decision, err := p.Burst.Allow(ctx, event)
		if err != nil {
			return Result{StatusCode: http.StatusInternalServerError, Event: &event}, err
		}
		if !decision.Allow {
			for key, value := range decision.Metadata {
				metadata[key] = value
			}
			core.LogWithLevel(ctx, logger, "debug", "tiktok webhook coalesced", metadata)
			return Result{Accepted: true, StatusCode: http.StatusOK, Event: &event, Metadata: metadata}, nil
		}
	}

	if err := p.Handler.HandleEvent(ctx, event); err != nil {
		fields := cloneMetadata(metadata)
		fields["error"] = err.Error()
		core.LogWithLevel(ctx, logger, "error", "tiktok webhook handler failed", fields)
		if p.Burst != nil {
			if forgetErr := p.Burst.Forget(ctx, event); forgetErr != nil {
				core.LogWithLevel(ctx, logger, "warn", "tiktok webhook burst entry not released", map[string]any{
					"event": string(event.Event),
					"error": forgetErr.Error(),
				})
			}
		}
		return Result{StatusCode: http.StatusInternalServerError, Event: &event, Metadata: metadata},
			fmt.Errorf("webhooks: handle %s: %w", event.Event, err)
	}
	core.LogWithLevel(ctx, logger, "debug", "tiktok webhook handled", metadata)
	return Result{Accepted: true, StatusCode: http.StatusOK, Event: &event, Metadata: metadata}, nil
}

func cloneMetadata(metadata map[string]any) map[string]any {
	out := make(map[string]any, len(metadata)+1)
	for key, value := range metadata {
		out[key] = value
	}
	return out
}
