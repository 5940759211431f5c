package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
	"github.com/goliatone/go-tiktok-business/engine"
)

const (
	PathToken        = "/tt_user/oauth2/token/"
	PathRefreshToken = "/tt_user/oauth2/refresh_token/"
	PathRevoke       = "/tt_user/oauth2/revoke/"
	PathTokenInfo    = "/tt_user/token_info/get/"
)

const (
	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"
)

// Client runs the authorization code lifecycle. It keeps no session state;
// the CSRF token returned by AuthorizeURL belongs to the caller.
type Client struct {
	executor     *engine.Executor
	clientKey    string
	clientSecret string
	callbackURL  string
	authorizeURL string
	scopes       []Scope
	random       io.Reader
	now          func() time.Time
}

type Option func(*Client)

// WithRandom replaces the CSRF token entropy source.
func WithRandom(random io.Reader) Option {
	return func(c *Client) {
		c.random = random
	}
}

// WithClock sets the clock used to stamp refreshed tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

func WithScopes(scopes ...Scope) Option {
	return func(c *Client) {
		c.scopes = append([]Scope(nil), scopes...)
	}
}

func NewClient(executor *engine.Executor, cfg core.Config, opts ...Option) *Client {
	authorizeURL := strings.TrimSpace(cfg.AuthorizeURL)
	if authorizeURL == "" {
		authorizeURL = core.DefaultAuthorizeURL
	}
	scopes := ScopesFromStrings(cfg.Scopes)
	if len(scopes) == 0 {
		scopes = AccountScopes()
	}
	c := &Client{
		executor:     executor,
		clientKey:    strings.TrimSpace(cfg.ClientKey),
		clientSecret: cfg.ClientSecret,
		callbackURL:  strings.TrimSpace(cfg.CallbackURL),
		authorizeURL: authorizeURL,
		scopes:       scopes,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) Scopes() []Scope {
	return append([]Scope(nil), c.scopes...)
}

// AuthorizeURL builds the consent redirect. An empty state generates a fresh
// CSRF token; otherwise state is used verbatim.
func (c *Client) AuthorizeURL(state string) (AuthorizeResult, error) {
	if c == nil || c.clientKey == "" {
		return AuthorizeResult{}, core.NewClientError(core.KindConfiguration, "client_key is required")
	}
	if c.callbackURL == "" {
		return AuthorizeResult{}, core.NewClientError(core.KindConfiguration, "callback_url is required")
	}
	if state == "" {
		generated, err := GenerateCSRFToken(c.random)
		if err != nil {
			return AuthorizeResult{}, &core.ClientError{Kind: core.KindConfiguration, Message: "csrf token", Cause: err}
		}
		state = generated
	}

	var b strings.Builder
	b.WriteString(c.authorizeURL)
	if strings.Contains(c.authorizeURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("client_key=")
	b.WriteString(url.QueryEscape(c.clientKey))
	b.WriteString("&response_type=code&scope=")
	b.WriteString(JoinScopes(c.scopes))
	b.WriteString("&redirect_uri=")
	b.WriteString(encodeRedirect(c.callbackURL))
	b.WriteString("&state=")
	b.WriteString(url.QueryEscape(state))

	return AuthorizeResult{URL: b.String(), CSRFToken: state}, nil
}

// encodeRedirect percent-encodes every byte that is not an ASCII letter or
// digit, so spaces become %20 and unreserved marks are escaped too.
func encodeRedirect(raw string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(raw) * 3)
	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
			b.WriteByte(ch)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[ch>>4])
			b.WriteByte(hex[ch&0x0F])
		}
	}
	return b.String()
}

type exchangeRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	AuthCode     string `json:"auth_code"`
	RedirectURI  string `json:"redirect_uri"`
}

type refreshRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	RefreshToken string `json:"refresh_token"`
}

type revokeRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccessToken  string `json:"access_token"`
}

type tokenInfoRequest struct {
	AppID       string `json:"app_id"`
	AccessToken string `json:"access_token"`
}

// Exchange trades an authorization code for a token pair. Only call it after
// VerifyState succeeded for the callback.
func (c *Client) Exchange(ctx context.Context, code string, opts *core.CallOptions) (engine.Response[TokenData], error) {
	if err := c.requireCredentials(); err != nil {
		return engine.Response[TokenData]{}, err
	}
	if strings.TrimSpace(code) == "" {
		return engine.Response[TokenData]{}, core.NewClientError(core.KindConfiguration, "authorization code is required")
	}
	return post[TokenData](ctx, c, PathToken, exchangeRequest{
		ClientID:     c.clientKey,
		ClientSecret: c.clientSecret,
		GrantType:    grantAuthorizationCode,
		AuthCode:     code,
		RedirectURI:  c.callbackURL,
	}, opts)
}

func (c *Client) Refresh(ctx context.Context, refreshToken string, opts *core.CallOptions) (engine.Response[TokenData], error) {
	if err := c.requireCredentials(); err != nil {
		return engine.Response[TokenData]{}, err
	}
	if strings.TrimSpace(refreshToken) == "" {
		return engine.Response[TokenData]{}, core.NewClientError(core.KindConfiguration, "refresh token is required")
	}
	return post[TokenData](ctx, c, PathRefreshToken, refreshRequest{
		ClientID:     c.clientKey,
		ClientSecret: c.clientSecret,
		GrantType:    grantRefreshToken,
		RefreshToken: refreshToken,
	}, opts)
}

func (c *Client) Revoke(ctx context.Context, accessToken string, opts *core.CallOptions) (engine.Response[json.RawMessage], error) {
	if err := c.requireCredentials(); err != nil {
		return engine.Response[json.RawMessage]{}, err
	}
	if strings.TrimSpace(accessToken) == "" {
		return engine.Response[json.RawMessage]{}, core.NewClientError(core.KindConfiguration, "access token is required")
	}
	return post[json.RawMessage](ctx, c, PathRevoke, revokeRequest{
		ClientID:     c.clientKey,
		ClientSecret: c.clientSecret,
		AccessToken:  accessToken,
	}, opts)
}

func (c *Client) TokenInfo(ctx context.Context, accessToken string, opts *core.CallOptions) (engine.Response[TokenInfo], error) {
	if c == nil || c.clientKey == "" {
		return engine.Response[TokenInfo]{}, core.NewClientError(core.KindConfiguration, "client_key is required")
	}
	if strings.TrimSpace(accessToken) == "" {
		return engine.Response[TokenInfo]{}, core.NewClientError(core.KindConfiguration, "access token is required")
	}
	return post[TokenInfo](ctx, c, PathTokenInfo, tokenInfoRequest{
		AppID:       c.clientKey,
		AccessToken: accessToken,
	}, opts)
}

// Callback is the query of the redirect back from the consent screen.
type Callback struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackFromQuery reads the callback parameters from a redirect query.
func CallbackFromQuery(query url.Values) Callback {
	return Callback{
		Code:             query.Get("code"),
		State:            query.Get("state"),
		Error:            query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}
}

// CompleteCallback verifies the callback state against expectedState and only
// then exchanges the code.
func (c *Client) CompleteCallback(ctx context.Context, expectedState string, cb Callback, opts *core.CallOptions) (engine.Response[TokenData], error) {
	if err := VerifyState(expectedState, cb.State); err != nil {
		return engine.Response[TokenData]{}, err
	}
	if strings.TrimSpace(cb.Error) != "" {
		msg := strings.TrimSpace(cb.Error)
		if desc := strings.TrimSpace(cb.ErrorDescription); desc != "" {
			msg += ": " + desc
		}
		return engine.Response[TokenData]{}, core.NewClientError(core.KindConsentDenied, msg)
	}
	return c.Exchange(ctx, cb.Code, opts)
}

func (c *Client) requireCredentials() error {
	if c == nil || c.clientKey == "" {
		return core.NewClientError(core.KindConfiguration, "client_key is required")
	}
	if strings.TrimSpace(c.clientSecret) == "" {
		return core.NewClientError(core.KindConfiguration, "client_secret is required")
	}
	return nil
}

func post[T any](ctx context.Context, c *Client, path string, body any, opts *core.CallOptions) (engine.Response[T], error) {
	factory := c.executor.Factory(engine.RequestSpec{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	return engine.Execute[T](ctx, c.executor, factory, opts)
}
