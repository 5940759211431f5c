package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL       = "https://business-api.tiktok.com/open_api/v1.3"
	DefaultAuthorizeURL  = "https://www.tiktok.com/v2/auth/authorize/"
	DefaultRetryInterval = 2 * time.Second
	DefaultWebhookHeader = "TikTok-Signature"
)

type AuthScheme string

const (
	// AuthSchemeAccessToken sends the token in the Access-Token header.
	AuthSchemeAccessToken AuthScheme = "access_token"
	// AuthSchemeBearer sends the token as Authorization: Bearer <token>.
	AuthSchemeBearer AuthScheme = "bearer"
)

type WebhookConfig struct {
	Secret          string        `koanf:"secret" mapstructure:"secret"`
	MaxAge          time.Duration `koanf:"max_age" mapstructure:"max_age"`
	SignatureHeader string        `koanf:"signature_header" mapstructure:"signature_header"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" mapstructure:"max_body_bytes"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `koanf:"requests_per_minute" mapstructure:"requests_per_minute"`
	Burst             int `koanf:"burst" mapstructure:"burst"`
}

type Config struct {
	ClientKey     string          `koanf:"client_key" mapstructure:"client_key"`
	ClientSecret  string          `koanf:"client_secret" mapstructure:"client_secret"`
	CallbackURL   string          `koanf:"callback_url" mapstructure:"callback_url"`
	Scopes        []string        `koanf:"scopes" mapstructure:"scopes"`
	BaseURL       string          `koanf:"base_url" mapstructure:"base_url"`
	AuthorizeURL  string          `koanf:"authorize_url" mapstructure:"authorize_url"`
	AuthScheme    AuthScheme      `koanf:"auth_scheme" mapstructure:"auth_scheme"`
	Timeout       time.Duration   `koanf:"timeout" mapstructure:"timeout"`
	RetryCount    uint            `koanf:"retry_count" mapstructure:"retry_count"`
	RetryInterval time.Duration   `koanf:"retry_interval" mapstructure:"retry_interval"`
	Webhook       WebhookConfig   `koanf:"webhook" mapstructure:"webhook"`
	RateLimit     RateLimitConfig `koanf:"rate_limit" mapstructure:"rate_limit"`
}

func DefaultConfig() Config {
	return Config{
		AuthorizeURL:  DefaultAuthorizeURL,
		AuthScheme:    AuthSchemeAccessToken,
		RetryInterval: DefaultRetryInterval,
		Webhook: WebhookConfig{
			SignatureHeader: DefaultWebhookHeader,
		},
	}
}

func (c Config) Validate() error {
	switch c.AuthScheme {
	case "", AuthSchemeAccessToken, AuthSchemeBearer:
	default:
		return fmt.Errorf("core: unsupported auth_scheme %q", c.AuthScheme)
	}
	if base := strings.TrimSpace(c.BaseURL); base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return fmt.Errorf("core: invalid base_url: %w", err)
		}
	}
	if cb := strings.TrimSpace(c.CallbackURL); cb != "" {
		if _, err := url.ParseRequestURI(cb); err != nil {
			return fmt.Errorf("core: invalid callback_url: %w", err)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("core: timeout must not be negative")
	}
	if c.RetryInterval < 0 {
		return fmt.Errorf("core: retry_interval must not be negative")
	}
	if c.Webhook.MaxAge < 0 {
		return fmt.Errorf("core: webhook max_age must not be negative")
	}
	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("core: rate_limit values must not be negative")
	}
	return nil
}

// CallDefaults returns the client-level values the config resolver overlays
// per-call options onto.
func (c Config) CallDefaults() CallDefaults {
	return CallDefaults{
		BaseURL:       strings.TrimSpace(c.BaseURL),
		Timeout:       c.Timeout,
		RetryCount:    c.RetryCount,
		RetryInterval: c.RetryInterval,
	}
}

func (c Config) ResolvedAuthScheme() AuthScheme {
	if c.AuthScheme == "" {
		return AuthSchemeAccessToken
	}
	return c.AuthScheme
}
