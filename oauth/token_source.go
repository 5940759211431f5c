package oauth

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-tiktok-business/core"
	"golang.org/x/oauth2"
)

// TokenSource returns an oauth2.TokenSource that serves current until it
// expires and then refreshes it through the platform. Rotated refresh tokens
// are carried forward. ctx is used for every refresh call.
func (c *Client) TokenSource(ctx context.Context, current *oauth2.Token) oauth2.TokenSource {
	refreshToken := ""
	if current != nil {
		refreshToken = current.RefreshToken
	}
	return oauth2.ReuseTokenSource(current, &refreshingSource{
		ctx:          ctx,
		client:       c,
		refreshToken: refreshToken,
	})
}

type refreshingSource struct {
	ctx    context.Context
	client *Client

	mu           sync.Mutex
	refreshToken string
}

func (s *refreshingSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.refreshToken) == "" {
		return nil, core.NewClientError(core.KindConfiguration, "token source has no refresh token")
	}
	res, err := s.client.Refresh(s.ctx, s.refreshToken, nil)
	if err != nil {
		return nil, err
	}
	if err := res.Body.Err(); err != nil {
		return nil, err
	}
	if res.Body.Data == nil || strings.TrimSpace(res.Body.Data.AccessToken) == "" {
		return nil, core.NewClientError(core.KindAPI, "refresh returned no access token")
	}
	data := *res.Body.Data
	if strings.TrimSpace(data.RefreshToken) == "" {
		data.RefreshToken = s.refreshToken
	}
	s.refreshToken = data.RefreshToken
	return data.OAuth2Token(s.client.now()), nil
}
