package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestClientError_ToServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err      *ClientError
		category goerrors.Category
		code     int
		textCode string
	}{
		{&ClientError{Kind: KindConfiguration}, goerrors.CategoryBadInput, http.StatusBadRequest, ErrorConfiguration},
		{&ClientError{Kind: KindTransport, Cause: errors.New("dial tcp: refused")}, goerrors.CategoryExternal, http.StatusBadGateway, ErrorTransport},
		{&ClientError{Kind: KindRetryExhausted, StatusCode: 429, Attempts: 3}, goerrors.CategoryRateLimit, http.StatusTooManyRequests, ErrorRetryExhausted},
		{&ClientError{Kind: KindHTTP, StatusCode: 401}, goerrors.CategoryAuth, http.StatusUnauthorized, ErrorUnauthorized},
		{&ClientError{Kind: KindHTTP, StatusCode: 403}, goerrors.CategoryAuthz, http.StatusForbidden, ErrorForbidden},
		{&ClientError{Kind: KindHTTP, StatusCode: 502}, goerrors.CategoryExternal, http.StatusBadGateway, ErrorHTTP},
		{&ClientError{Kind: KindSignatureInvalid}, goerrors.CategoryAuth, http.StatusUnauthorized, ErrorSignatureInvalid},
		{&ClientError{Kind: KindReplayRejected}, goerrors.CategoryAuth, http.StatusUnauthorized, ErrorReplayRejected},
		{&ClientError{Kind: KindStateMismatch}, goerrors.CategoryAuth, http.StatusUnauthorized, ErrorStateMismatch},
	}

	for _, tc := range cases {
		t.Run(string(tc.err.Kind), func(t *testing.T) {
			rich := tc.err.ToServiceError()
			if rich.Category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, rich.Category)
			}
			if rich.Code != tc.code {
				t.Fatalf("expected code %d, got %d", tc.code, rich.Code)
			}
			if rich.TextCode != tc.textCode {
				t.Fatalf("expected text code %q, got %q", tc.textCode, rich.TextCode)
			}
			if rich.Metadata["kind"] != string(tc.err.Kind) {
				t.Fatalf("expected kind metadata, got %#v", rich.Metadata)
			}
		})
	}
}

func TestClientError_UnwrapAndKind(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("wrapped: %w", &ClientError{Kind: KindTransport, Cause: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindTransport {
		t.Fatalf("expected transport kind, got %q %v", kind, ok)
	}
	if IsKind(errors.New("plain"), KindTransport) {
		t.Fatalf("plain errors carry no kind")
	}
}

func TestIsCredentialRejection(t *testing.T) {
	if !IsCredentialRejection(&ClientError{Kind: KindHTTP, StatusCode: http.StatusUnauthorized}) {
		t.Fatalf("expected 401 to be a credential rejection")
	}
	if IsCredentialRejection(&ClientError{Kind: KindRetryExhausted, StatusCode: http.StatusTooManyRequests}) {
		t.Fatalf("expected exhausted retries to be transient")
	}
}

func TestToServiceError_PlainErrorGetsEnvelope(t *testing.T) {
	rich := ToServiceError(errors.New("something failed"))
	if rich == nil {
		t.Fatalf("expected envelope")
	}
	if rich.TextCode == "" || rich.Code == 0 {
		t.Fatalf("expected defaults filled, got %#v", rich)
	}
	if ToServiceError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
