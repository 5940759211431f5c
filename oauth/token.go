package oauth

import (
	"strings"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
	"golang.org/x/oauth2"
)

// TokenData is the token pair returned by code exchange and refresh. It is
// handed to the caller and never stored here.
type TokenData struct {
	OpenID                string     `json:"open_id"`
	Scope                 string     `json:"scope"`
	AccessToken           string     `json:"access_token"`
	ExpiresIn             int64      `json:"expires_in"`
	RefreshToken          string     `json:"refresh_token"`
	RefreshTokenExpiresIn int64      `json:"refresh_token_expires_in"`
	TokenType             string     `json:"token_type"`
	Extra                 core.Extra `json:"-"`
}

func (t *TokenData) UnmarshalJSON(data []byte) error {
	type plain TokenData
	return core.UnmarshalWithExtra(data, (*plain)(t), &t.Extra)
}

func (t TokenData) Recognized() bool {
	return len(t.Extra) == 0
}

func (t TokenData) Scopes() []Scope {
	return ParseScopes(t.Scope)
}

func (t TokenData) AccessExpiry(issued time.Time) time.Time {
	if t.ExpiresIn <= 0 {
		return time.Time{}
	}
	return issued.Add(time.Duration(t.ExpiresIn) * time.Second)
}

func (t TokenData) RefreshExpiry(issued time.Time) time.Time {
	if t.RefreshTokenExpiresIn <= 0 {
		return time.Time{}
	}
	return issued.Add(time.Duration(t.RefreshTokenExpiresIn) * time.Second)
}

// OAuth2Token converts the pair to an *oauth2.Token issued at issued. The
// open id, scope and refresh expiry ride along as token extras.
func (t TokenData) OAuth2Token(issued time.Time) *oauth2.Token {
	tokenType := strings.TrimSpace(t.TokenType)
	if tokenType == "" {
		tokenType = "Bearer"
	}
	token := &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    tokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.AccessExpiry(issued),
	}
	extra := map[string]any{
		"open_id": t.OpenID,
		"scope":   t.Scope,
	}
	if refreshExpiry := t.RefreshExpiry(issued); !refreshExpiry.IsZero() {
		extra["refresh_token_expiry"] = refreshExpiry
	}
	return token.WithExtra(extra)
}

// TokenInfo is the introspection result for an access token.
type TokenInfo struct {
	AppID     string     `json:"app_id"`
	CreatorID string     `json:"creator_id"`
	Scope     string     `json:"scope"`
	Extra     core.Extra `json:"-"`
}

func (t *TokenInfo) UnmarshalJSON(data []byte) error {
	type plain TokenInfo
	return core.UnmarshalWithExtra(data, (*plain)(t), &t.Extra)
}

func (t TokenInfo) Recognized() bool {
	return len(t.Extra) == 0
}

func (t TokenInfo) Scopes() []Scope {
	return ParseScopes(t.Scope)
}

// AuthorizeResult is the redirect target plus the CSRF token the caller must
// bind to the user's session.
type AuthorizeResult struct {
	URL       string
	CSRFToken string
}
