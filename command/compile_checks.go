package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-tiktok-business/oauth"
)

var (
	_ gocmd.Commander[AuthorizeURLMessage]     = (*AuthorizeURLCommand)(nil)
	_ gocmd.Commander[CompleteCallbackMessage] = (*CompleteCallbackCommand)(nil)
	_ gocmd.Commander[RefreshTokenMessage]     = (*RefreshTokenCommand)(nil)
	_ gocmd.Commander[RevokeTokenMessage]      = (*RevokeTokenCommand)(nil)
	_ gocmd.Commander[TokenInfoMessage]        = (*TokenInfoCommand)(nil)

	_ OAuthService = (*oauth.Client)(nil)
)
