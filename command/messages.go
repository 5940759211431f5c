package command

import (
	"strings"

	"github.com/goliatone/go-tiktok-business/core"
	"github.com/goliatone/go-tiktok-business/oauth"
)

const (
	TypeAuthorizeURL     = "tiktok.command.oauth.authorize_url"
	TypeCompleteCallback = "tiktok.command.oauth.callback.complete"
	TypeRefreshToken     = "tiktok.command.oauth.refresh"
	TypeRevokeToken      = "tiktok.command.oauth.revoke"
	TypeTokenInfo        = "tiktok.command.oauth.token_info"
)

// AuthorizeURLMessage asks for a consent URL. An empty State generates a
// CSRF token.
type AuthorizeURLMessage struct {
	State string
}

func (AuthorizeURLMessage) Type() string { return TypeAuthorizeURL }

func (AuthorizeURLMessage) Validate() error { return nil }

type CompleteCallbackMessage struct {
	ExpectedState string
	Callback      oauth.Callback
	Options       *core.CallOptions
}

func (CompleteCallbackMessage) Type() string { return TypeCompleteCallback }

func (m CompleteCallbackMessage) Validate() error {
	if strings.TrimSpace(m.ExpectedState) == "" {
		return commandValidationError("expected_state", "session csrf token is required")
	}
	if strings.TrimSpace(m.Callback.Error) == "" && strings.TrimSpace(m.Callback.Code) == "" {
		return commandValidationError("code", "authorization code is required")
	}
	return nil
}

type RefreshTokenMessage struct {
	RefreshToken string
	Options      *core.CallOptions
}

func (RefreshTokenMessage) Type() string { return TypeRefreshToken }

func (m RefreshTokenMessage) Validate() error {
	if strings.TrimSpace(m.RefreshToken) == "" {
		return commandValidationError("refresh_token", "refresh token is required")
	}
	return nil
}

type RevokeTokenMessage struct {
	AccessToken string
	Options     *core.CallOptions
}

func (RevokeTokenMessage) Type() string { return TypeRevokeToken }

func (m RevokeTokenMessage) Validate() error {
	return validateAccessToken(m.AccessToken)
}

type TokenInfoMessage struct {
	AccessToken string
	Options     *core.CallOptions
}

func (TokenInfoMessage) Type() string { return TypeTokenInfo }

func (m TokenInfoMessage) Validate() error {
	return validateAccessToken(m.AccessToken)
}

func validateAccessToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return commandValidationError("access_token", "access token is required")
	}
	return nil
}
