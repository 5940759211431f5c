// Package tiktokbusiness wires the TikTok Business API client: OAuth,
// business endpoints, webhook verification and go-command adapters, all
// sharing one configured execution engine.
package tiktokbusiness

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goliatone/go-tiktok-business/business"
	"github.com/goliatone/go-tiktok-business/command"
	"github.com/goliatone/go-tiktok-business/core"
	"github.com/goliatone/go-tiktok-business/engine"
	"github.com/goliatone/go-tiktok-business/oauth"
	"github.com/goliatone/go-tiktok-business/ratelimit"
	"github.com/goliatone/go-tiktok-business/transport"
	"github.com/goliatone/go-tiktok-business/webhooks"
)

type Config = core.Config

type Option = core.Option

type CallOptions = core.CallOptions

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithHTTPClient      = core.WithHTTPClient
	WithTransport       = core.WithTransport
	WithLimiter         = core.WithLimiter
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithClock           = core.WithClock
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

type Commands struct {
	AuthorizeURL     *command.AuthorizeURLCommand
	CompleteCallback *command.CompleteCallbackCommand
	RefreshToken     *command.RefreshTokenCommand
	RevokeToken      *command.RevokeTokenCommand
	TokenInfo        *command.TokenInfoCommand
}

// Client is safe for concurrent use once built. It holds no tokens.
type Client struct {
	cfg      Config
	deps     core.Dependencies
	executor *engine.Executor
	oauth    *oauth.Client
	business *business.Client
	verifier webhooks.Verifier
	commands Commands
}

// New builds a client from an explicit config.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &core.ClientError{Kind: core.KindConfiguration, Message: "invalid config", Cause: err}
	}
	deps := core.NewDependencies(opts...)

	adapter := deps.Transport
	if adapter == nil {
		adapter = transport.NewRESTAdapter(deps.HTTPClient)
	}
	executorOpts := []engine.Option{
		engine.WithLogger(deps.NamedLogger("tiktok.engine")),
		engine.WithClock(deps.Now),
	}
	if deps.Limiter != nil {
		executorOpts = append(executorOpts, engine.WithLimiter(deps.Limiter))
	} else if limiter := ratelimit.NewLimiter("tiktok", cfg.RateLimit); limiter != nil {
		executorOpts = append(executorOpts, engine.WithLimiter(limiter))
	}
	executor := engine.New(adapter, cfg, executorOpts...)

	oauthClient := oauth.NewClient(executor, cfg, oauth.WithClock(deps.Now))
	verifier := webhooks.NewVerifier(cfg.Webhook)
	verifier.Now = deps.Now

	return &Client{
		cfg:      cfg,
		deps:     deps,
		executor: executor,
		oauth:    oauthClient,
		business: business.NewClient(executor),
		verifier: verifier,
		commands: Commands{
			AuthorizeURL:     command.NewAuthorizeURLCommand(oauthClient),
			CompleteCallback: command.NewCompleteCallbackCommand(oauthClient),
			RefreshToken:     command.NewRefreshTokenCommand(oauthClient),
			RevokeToken:      command.NewRevokeTokenCommand(oauthClient),
			TokenInfo:        command.NewTokenInfoCommand(oauthClient),
		},
	}, nil
}

// Setup resolves configuration through the configured provider, layers
// runtime on top and builds the client.
func Setup(ctx context.Context, runtime Config, opts ...Option) (*Client, error) {
	deps := core.NewDependencies(opts...)
	cfg, err := deps.ResolveConfig(ctx, runtime)
	if err != nil {
		return nil, fmt.Errorf("tiktokbusiness: resolve config: %w", err)
	}
	return New(cfg, opts...)
}

func (c *Client) Config() Config {
	return c.cfg
}

func (c *Client) Executor() *engine.Executor {
	return c.executor
}

func (c *Client) OAuth() *oauth.Client {
	return c.oauth
}

func (c *Client) Business() *business.Client {
	return c.business
}

func (c *Client) Verifier() webhooks.Verifier {
	return c.verifier
}

func (c *Client) Commands() Commands {
	return c.commands
}

// WebhookHandler serves deliveries verified with the configured secret and
// replay window.
func (c *Client) WebhookHandler(handler webhooks.EventHandler, opts ...webhooks.HandlerOption) http.Handler {
	base := []webhooks.HandlerOption{
		webhooks.WithLogger(c.deps.NamedLogger("tiktok.webhooks")),
	}
	if c.cfg.Webhook.MaxBodyBytes > 0 {
		base = append(base, webhooks.WithMaxBodyBytes(c.cfg.Webhook.MaxBodyBytes))
	}
	return webhooks.NewHTTPHandler(c.verifier, handler, append(base, opts...)...)
}
