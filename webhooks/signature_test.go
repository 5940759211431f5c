package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
)

const (
	testSecret    = "s3cret"
	testTimestamp = "1719535951"
	testBody      = `{"a":1}`
)

func referenceMAC(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestParseSignature(t *testing.T) {
	sig, ok := ParseSignature("t=1719535951,s=abcdef")
	if !ok {
		t.Fatalf("expected header to parse")
	}
	if sig.RawTimestamp != "1719535951" || sig.SignatureHex != "abcdef" {
		t.Fatalf("unexpected signature %#v", sig)
	}
	if !sig.Timestamp.Equal(time.Unix(1719535951, 0)) || sig.Timestamp.Location() != time.UTC {
		t.Fatalf("unexpected timestamp %s", sig.Timestamp)
	}

	if _, ok := ParseSignature("t=1719535951,s=abcdef,v=1"); !ok {
		t.Fatalf("expected trailing segments to be tolerated")
	}

	for _, header := range []string{
		"",
		"t=1719535951",
		"t=1719535951,",
		"t=abc,s=abcdef",
		"s=abcdef,t=1719535951",
		"t=1719535951,s=ab=cd",
		"t=1719535951,x=abcdef",
		"t=1719535951;s=abcdef",
	} {
		if _, ok := ParseSignature(header); ok {
			t.Fatalf("expected %q to be rejected", header)
		}
	}
}

func TestSignature_VerifyKnownVector(t *testing.T) {
	header := "t=" + testTimestamp + ",s=" + referenceMAC(testSecret, testTimestamp+"."+testBody)
	sig, ok := ParseSignature(header)
	if !ok {
		t.Fatalf("expected header to parse")
	}

	if !sig.Verify(testSecret, []byte(testBody), 0) {
		t.Fatalf("expected signature to verify without replay window")
	}
	if sig.Verify(testSecret, []byte(testBody), 10*time.Second) {
		t.Fatalf("expected stale timestamp to be rejected with a 10s window")
	}
	if sig.Verify(testSecret, []byte(`{"a":2}`), 0) {
		t.Fatalf("expected tampered body to fail")
	}
	if sig.Verify("other", []byte(testBody), 0) {
		t.Fatalf("expected wrong secret to fail")
	}
}

func TestSignature_CheckDistinguishesReasons(t *testing.T) {
	signedAt := time.Unix(1719535951, 0).UTC()
	sig, _ := ParseSignature(SignatureHeader(testSecret, signedAt, []byte(testBody)))

	if err := sig.Check(signedAt.Add(5*time.Second), testSecret, []byte(testBody), 10*time.Second); err != nil {
		t.Fatalf("expected fresh signature to pass: %v", err)
	}
	err := sig.Check(signedAt.Add(11*time.Second), testSecret, []byte(testBody), 10*time.Second)
	if !core.IsKind(err, core.KindReplayRejected) {
		t.Fatalf("expected replay_rejected, got %v", err)
	}
	err = sig.Check(signedAt, testSecret, []byte(testBody+" "), 10*time.Second)
	if !core.IsKind(err, core.KindSignatureInvalid) {
		t.Fatalf("expected signature_invalid, got %v", err)
	}

	bad := sig
	bad.SignatureHex = "zz"
	if !core.IsKind(bad.Check(signedAt, testSecret, []byte(testBody), 0), core.KindSignatureInvalid) {
		t.Fatalf("expected non-hex signature to be invalid")
	}
}

func TestVerifier_ReadsHeaderCaseInsensitively(t *testing.T) {
	signedAt := time.Unix(1719535951, 0).UTC()
	verifier := Verifier{
		Secret: testSecret,
		MaxAge: time.Minute,
		Now:    func() time.Time { return signedAt.Add(time.Second) },
	}
	req := core.InboundRequest{
		Headers: map[string]string{"tiktok-signature": SignatureHeader(testSecret, signedAt, []byte(testBody))},
		Body:    []byte(testBody),
	}
	if err := verifier.Verify(context.Background(), req); err != nil {
		t.Fatalf("expected verification to pass: %v", err)
	}

	req.Headers = map[string]string{"TikTok-Signature": "t=1719535951"}
	if err := verifier.Verify(context.Background(), req); !core.IsKind(err, core.KindSignatureInvalid) {
		t.Fatalf("expected malformed header to be signature_invalid, got %v", err)
	}
	req.Headers = nil
	if err := verifier.Verify(context.Background(), req); !core.IsKind(err, core.KindSignatureInvalid) {
		t.Fatalf("expected missing header to be signature_invalid, got %v", err)
	}
	if err := (Verifier{}).Verify(context.Background(), req); !core.IsKind(err, core.KindConfiguration) {
		t.Fatalf("expected missing secret to be configuration_error, got %v", err)
	}
}
