package webhooks

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
)

type RequestVerifier interface {
	Verify(ctx context.Context, req core.InboundRequest) error
}

// Verifier authenticates an inbound request from its signature header and
// raw body.
type Verifier struct {
	Secret string
	MaxAge time.Duration
	Header string
	Now    func() time.Time
}

func NewVerifier(cfg core.WebhookConfig) Verifier {
	return Verifier{
		Secret: cfg.Secret,
		MaxAge: cfg.MaxAge,
		Header: cfg.SignatureHeader,
	}
}

func (v Verifier) Verify(_ context.Context, req core.InboundRequest) error {
	if v.Secret == "" {
		return core.NewClientError(core.KindConfiguration, "webhook secret is required")
	}
	header, ok := core.HeaderValue(req.Headers, v.header())
	if !ok || strings.TrimSpace(header) == "" {
		return core.NewClientError(core.KindSignatureInvalid, "signature header is missing")
	}
	sig, ok := ParseSignature(strings.TrimSpace(header))
	if !ok {
		return core.NewClientError(core.KindSignatureInvalid, "signature header is malformed")
	}
	return sig.Check(v.now(), v.Secret, req.Body, v.MaxAge)
}

func (v Verifier) header() string {
	if h := strings.TrimSpace(v.Header); h != "" {
		return h
	}
	return core.DefaultWebhookHeader
}

func (v Verifier) now() time.Time {
	if v.Now != nil {
		return v.Now().UTC()
	}
	return time.Now().UTC()
}

var _ RequestVerifier = Verifier{}
