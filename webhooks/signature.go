package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
)

// Signature is a parsed signature header. It is built per request and never
// reused.
type Signature struct {
	RawTimestamp string
	Timestamp    time.Time
	SignatureHex string
}

// ParseSignature parses "t=<unix>,s=<hex>". Segments after the second are
// ignored. Any other shape returns false.
func ParseSignature(header string) (Signature, bool) {
	segments := strings.Split(header, ",")
	if len(segments) < 2 {
		return Signature{}, false
	}
	rawTS, ok := segmentValue(segments[0], "t")
	if !ok {
		return Signature{}, false
	}
	seconds, err := strconv.ParseInt(rawTS, 10, 64)
	if err != nil {
		return Signature{}, false
	}
	sig, ok := segmentValue(segments[1], "s")
	if !ok {
		return Signature{}, false
	}
	return Signature{
		RawTimestamp: rawTS,
		Timestamp:    time.Unix(seconds, 0).UTC(),
		SignatureHex: sig,
	}, true
}

func segmentValue(segment, key string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(segment), "=")
	if len(parts) != 2 || parts[0] != key || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ComputeSignature returns the hex HMAC-SHA256 of "<rawTimestamp>.<body>".
func ComputeSignature(secret string, rawTimestamp string, body []byte) string {
	return hex.EncodeToString(computeMAC(secret, rawTimestamp, body))
}

// SignatureHeader renders a header value for body signed at ts.
func SignatureHeader(secret string, ts time.Time, body []byte) string {
	raw := strconv.FormatInt(ts.Unix(), 10)
	return "t=" + raw + ",s=" + ComputeSignature(secret, raw, body)
}

func computeMAC(secret string, rawTimestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(rawTimestamp))
	_, _ = mac.Write([]byte{'.'})
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}

// Verify checks the MAC against the wall clock. A zero maxAge disables the
// replay window.
func (s Signature) Verify(secret string, body []byte, maxAge time.Duration) bool {
	return s.VerifyAt(time.Now().UTC(), secret, body, maxAge)
}

func (s Signature) VerifyAt(now time.Time, secret string, body []byte, maxAge time.Duration) bool {
	return s.Check(now, secret, body, maxAge) == nil
}

// Check is VerifyAt returning signature_invalid or replay_rejected.
func (s Signature) Check(now time.Time, secret string, body []byte, maxAge time.Duration) error {
	if secret == "" {
		return core.NewClientError(core.KindConfiguration, "webhook secret is required")
	}
	given, err := hex.DecodeString(s.SignatureHex)
	if err != nil {
		return &core.ClientError{Kind: core.KindSignatureInvalid, Message: "signature is not hex", Cause: err}
	}
	if !hmac.Equal(given, computeMAC(secret, s.RawTimestamp, body)) {
		return core.NewClientError(core.KindSignatureInvalid, "signature mismatch")
	}
	if maxAge > 0 && now.Sub(s.Timestamp) > maxAge {
		return core.NewClientError(core.KindReplayRejected, "signature timestamp outside replay window")
	}
	return nil
}
