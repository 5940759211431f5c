package engine

import (
	"strings"

	"github.com/goliatone/go-tiktok-business/core"
)

const HeaderAccessToken = "Access-Token"

// AuthHeader returns the header name and value that carry accessToken under
// scheme.
func AuthHeader(scheme core.AuthScheme, accessToken string) (string, string) {
	accessToken = strings.TrimSpace(accessToken)
	if scheme == core.AuthSchemeBearer {
		return "Authorization", "Bearer " + accessToken
	}
	return HeaderAccessToken, accessToken
}
