package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fixedConfigProvider struct {
	cfg Config
	err error
}

func (p *fixedConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.cfg, p.err
}

type fixedOptionsResolver struct {
	cfg Config
}

func (r *fixedOptionsResolver) Resolve(Config, Config, Config) (Config, error) {
	return r.cfg, nil
}

func TestNewDependencies_Defaults(t *testing.T) {
	deps := NewDependencies()
	if deps.Logger == nil {
		t.Fatalf("expected default logger")
	}
	if deps.LoggerProvider == nil {
		t.Fatalf("expected default logger provider")
	}
	if deps.ConfigProvider == nil {
		t.Fatalf("expected default config provider")
	}
	if deps.OptionsResolver == nil {
		t.Fatalf("expected default options resolver")
	}
	if deps.Now == nil {
		t.Fatalf("expected default clock")
	}
}

func TestNewDependencies_WithOverrides(t *testing.T) {
	logger := stubLogger{}
	provider := stubLoggerProvider{logger: logger}
	resolver := &fixedOptionsResolver{}
	fixed := time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)

	deps := NewDependencies(
		WithLogger(logger),
		WithLoggerProvider(provider),
		WithOptionsResolver(resolver),
		WithClock(func() time.Time { return fixed }),
		nil,
	)
	if deps.OptionsResolver != resolver {
		t.Fatalf("expected custom options resolver")
	}
	if !deps.Now().Equal(fixed) {
		t.Fatalf("expected custom clock")
	}
	if deps.NamedLogger("engine") == nil {
		t.Fatalf("expected named logger")
	}
}

func TestResolveConfig_LayersRuntimeOverLoaded(t *testing.T) {
	deps := NewDependencies(WithConfigProvider(NewCfgxConfigProvider(StaticConfigLoader{Values: map[string]any{
		"client_key":    "loaded-key",
		"client_secret": "loaded-secret",
		"retry_count":   2,
	}})))

	cfg, err := deps.ResolveConfig(context.Background(), Config{ClientKey: "runtime-key"})
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.ClientKey != "runtime-key" {
		t.Fatalf("expected runtime client key, got %q", cfg.ClientKey)
	}
	if cfg.ClientSecret != "loaded-secret" {
		t.Fatalf("expected loaded client secret, got %q", cfg.ClientSecret)
	}
	if cfg.RetryCount != 2 {
		t.Fatalf("expected loaded retry count, got %d", cfg.RetryCount)
	}
	if cfg.RetryInterval != DefaultRetryInterval {
		t.Fatalf("expected default retry interval, got %s", cfg.RetryInterval)
	}
	if cfg.AuthScheme != AuthSchemeAccessToken {
		t.Fatalf("expected default auth scheme, got %q", cfg.AuthScheme)
	}
}

func TestResolveConfig_ProviderError(t *testing.T) {
	deps := NewDependencies(WithConfigProvider(&fixedConfigProvider{err: errors.New("unreadable")}))
	if _, err := deps.ResolveConfig(context.Background(), Config{}); err == nil {
		t.Fatalf("expected provider error")
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	bad := DefaultConfig()
	bad.AuthScheme = "basic"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected unsupported auth scheme error")
	}
	bad = DefaultConfig()
	bad.BaseURL = "::not a url"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}

func TestLogWithLevel_RoutesLevels(t *testing.T) {
	var entries []string
	logger := recordingLogger{entries: &entries}
	LogWithLevel(context.Background(), logger, "warn", "drift", map[string]any{"b": 2, "a": 1})
	LogWithLevel(context.Background(), logger, "error", "failed", nil)
	LogWithLevel(context.Background(), nil, "error", "ignored", nil)
	if len(entries) != 2 || entries[0] != "warn:drift" || entries[1] != "error:failed" {
		t.Fatalf("unexpected log entries %v", entries)
	}
}
