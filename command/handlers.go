package command

import (
	"context"
	"encoding/json"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-tiktok-business/core"
	"github.com/goliatone/go-tiktok-business/engine"
	"github.com/goliatone/go-tiktok-business/oauth"
)

// OAuthService is the part of oauth.Client the commands drive.
type OAuthService interface {
	AuthorizeURL(state string) (oauth.AuthorizeResult, error)
	CompleteCallback(ctx context.Context, expectedState string, cb oauth.Callback, opts *core.CallOptions) (engine.Response[oauth.TokenData], error)
	Refresh(ctx context.Context, refreshToken string, opts *core.CallOptions) (engine.Response[oauth.TokenData], error)
	Revoke(ctx context.Context, accessToken string, opts *core.CallOptions) (engine.Response[json.RawMessage], error)
	TokenInfo(ctx context.Context, accessToken string, opts *core.CallOptions) (engine.Response[oauth.TokenInfo], error)
}

type AuthorizeURLCommand struct {
	service OAuthService
}

func NewAuthorizeURLCommand(service OAuthService) *AuthorizeURLCommand {
	return &AuthorizeURLCommand{service: service}
}

func (c *AuthorizeURLCommand) Execute(ctx context.Context, msg AuthorizeURLMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: oauth service is required")
	}
	out, err := c.service.AuthorizeURL(msg.State)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type CompleteCallbackCommand struct {
	service OAuthService
}

func NewCompleteCallbackCommand(service OAuthService) *CompleteCallbackCommand {
	return &CompleteCallbackCommand{service: service}
}

func (c *CompleteCallbackCommand) Execute(ctx context.Context, msg CompleteCallbackMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: oauth service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.CompleteCallback(ctx, msg.ExpectedState, msg.Callback, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RefreshTokenCommand struct {
	service OAuthService
}

func NewRefreshTokenCommand(service OAuthService) *RefreshTokenCommand {
	return &RefreshTokenCommand{service: service}
}

func (c *RefreshTokenCommand) Execute(ctx context.Context, msg RefreshTokenMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: oauth service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.Refresh(ctx, msg.RefreshToken, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type RevokeTokenCommand struct {
	service OAuthService
}

func NewRevokeTokenCommand(service OAuthService) *RevokeTokenCommand {
	return &RevokeTokenCommand{service: service}
}

func (c *RevokeTokenCommand) Execute(ctx context.Context, msg RevokeTokenMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: oauth service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.Revoke(ctx, msg.AccessToken, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type TokenInfoCommand struct {
	service OAuthService
}

func NewTokenInfoCommand(service OAuthService) *TokenInfoCommand {
	return &TokenInfoCommand{service: service}
}

func (c *TokenInfoCommand) Execute(ctx context.Context, msg TokenInfoMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: oauth service is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	out, err := c.service.TokenInfo(ctx, msg.AccessToken, msg.Options)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
