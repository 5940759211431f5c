package oauth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-tiktok-business/core"
)

const csrfTokenBytes = 16

// GenerateCSRFToken reads 16 bytes from random and encodes them as unpadded
// URL-safe base64. A nil random uses crypto/rand.
func GenerateCSRFToken(random io.Reader) (string, error) {
	if random == nil {
		random = rand.Reader
	}
	raw := make([]byte, csrfTokenBytes)
	if _, err := io.ReadFull(random, raw); err != nil {
		return "", fmt.Errorf("oauth: generate csrf token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// VerifyState compares the session's CSRF token with the callback state in
// constant time. Empty values never match.
func VerifyState(expected, actual string) error {
	if strings.TrimSpace(expected) == "" {
		return core.NewClientError(core.KindStateMismatch, "no csrf token bound to session")
	}
	if strings.TrimSpace(actual) == "" {
		return core.NewClientError(core.KindStateMismatch, "callback state is missing")
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) != 1 {
		return core.NewClientError(core.KindStateMismatch, "callback state does not match csrf token")
	}
	return nil
}
