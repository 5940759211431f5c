package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

// HTTPDoer is satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Dependencies collects the collaborators a client is built from. Zero
// values are replaced by defaults in NewDependencies.
type Dependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	HTTPClient      HTTPDoer
	Transport       TransportAdapter
	Limiter         Limiter
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	Now             func() time.Time
}

type Option func(*Dependencies)

func WithLogger(logger Logger) Option {
	return func(d *Dependencies) {
		d.Logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(d *Dependencies) {
		d.LoggerProvider = provider
	}
}

func WithHTTPClient(client HTTPDoer) Option {
	return func(d *Dependencies) {
		d.HTTPClient = client
	}
}

func WithTransport(transport TransportAdapter) Option {
	return func(d *Dependencies) {
		d.Transport = transport
	}
}

func WithLimiter(limiter Limiter) Option {
	return func(d *Dependencies) {
		d.Limiter = limiter
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(d *Dependencies) {
		d.ConfigProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(d *Dependencies) {
		d.OptionsResolver = resolver
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dependencies) {
		d.Now = now
	}
}

func NewDependencies(options ...Option) Dependencies {
	deps := Dependencies{}
	for _, option := range options {
		if option != nil {
			option(&deps)
		}
	}
	deps.LoggerProvider, deps.Logger = glog.Resolve("tiktok", deps.LoggerProvider, deps.Logger)
	if deps.ConfigProvider == nil {
		deps.ConfigProvider = NewCfgxConfigProvider(nil)
	}
	if deps.OptionsResolver == nil {
		deps.OptionsResolver = GoOptionsResolver{}
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	return deps
}

// NamedLogger returns a component logger from the provider, falling back to
// the base logger.
func (d Dependencies) NamedLogger(name string) Logger {
	if d.LoggerProvider != nil {
		if logger := d.LoggerProvider.GetLogger(name); logger != nil {
			return logger
		}
	}
	return glog.Ensure(d.Logger)
}

type StaticConfigLoader struct {
	Values map[string]any
}

func (l StaticConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = StaticConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoOptionsResolver merges defaults < loaded < runtime. Zero values in the
// loaded and runtime layers do not override lower layers.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	stack, err := opts.NewStack(
		opts.NewLayer(
			opts.NewScope("defaults", 0),
			configToLayerMap(defaults, true),
			opts.WithSnapshotID[map[string]any]("defaults"),
		),
		opts.NewLayer(
			opts.NewScope("config", 10),
			configToLayerMap(loaded, false),
			opts.WithSnapshotID[map[string]any]("config"),
		),
		opts.NewLayer(
			opts.NewScope("runtime", 20),
			configToLayerMap(runtime, false),
			opts.WithSnapshotID[map[string]any]("runtime"),
		),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: options stack build failed: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: options merge failed: %w", err)
	}
	resolved, err := cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	if err := resolved.Validate(); err != nil {
		return Config{}, err
	}
	return resolved, nil
}

func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	setString := func(key, value string) {
		if includeZero || strings.TrimSpace(value) != "" {
			layer[key] = value
		}
	}
	setDuration := func(target map[string]any, key string, value time.Duration) {
		if includeZero || value != 0 {
			target[key] = value
		}
	}

	setString("client_key", cfg.ClientKey)
	setString("client_secret", cfg.ClientSecret)
	setString("callback_url", cfg.CallbackURL)
	setString("base_url", cfg.BaseURL)
	setString("authorize_url", cfg.AuthorizeURL)
	setString("auth_scheme", string(cfg.AuthScheme))
	if includeZero || len(cfg.Scopes) > 0 {
		layer["scopes"] = append([]string(nil), cfg.Scopes...)
	}
	setDuration(layer, "timeout", cfg.Timeout)
	if includeZero || cfg.RetryCount > 0 {
		layer["retry_count"] = cfg.RetryCount
	}
	setDuration(layer, "retry_interval", cfg.RetryInterval)

	webhook := map[string]any{}
	if includeZero || cfg.Webhook.Secret != "" {
		webhook["secret"] = cfg.Webhook.Secret
	}
	if includeZero || cfg.Webhook.SignatureHeader != "" {
		webhook["signature_header"] = cfg.Webhook.SignatureHeader
	}
	if includeZero || cfg.Webhook.MaxBodyBytes > 0 {
		webhook["max_body_bytes"] = cfg.Webhook.MaxBodyBytes
	}
	setDuration(webhook, "max_age", cfg.Webhook.MaxAge)
	if len(webhook) > 0 {
		layer["webhook"] = webhook
	}

	rateLimit := map[string]any{}
	if includeZero || cfg.RateLimit.RequestsPerMinute > 0 {
		rateLimit["requests_per_minute"] = cfg.RateLimit.RequestsPerMinute
	}
	if includeZero || cfg.RateLimit.Burst > 0 {
		rateLimit["burst"] = cfg.RateLimit.Burst
	}
	if len(rateLimit) > 0 {
		layer["rate_limit"] = rateLimit
	}
	return layer
}

// ResolveConfig loads configuration through the provider and layers the
// runtime config on top.
func (d Dependencies) ResolveConfig(ctx context.Context, runtime Config) (Config, error) {
	defaults := DefaultConfig()
	loaded := defaults
	if d.ConfigProvider != nil {
		cfg, err := d.ConfigProvider.Load(ctx, defaults)
		if err != nil {
			return Config{}, fmt.Errorf("core: load config: %w", err)
		}
		loaded = cfg
	}
	resolver := d.OptionsResolver
	if resolver == nil {
		resolver = GoOptionsResolver{}
	}
	return resolver.Resolve(defaults, loaded, runtime)
}
