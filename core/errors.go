package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput         = "TIKTOK_BAD_INPUT"
	ErrorConfiguration    = "TIKTOK_CONFIGURATION_ERROR"
	ErrorTransport        = "TIKTOK_TRANSPORT_ERROR"
	ErrorHTTP             = "TIKTOK_HTTP_ERROR"
	ErrorRetryExhausted   = "TIKTOK_RETRY_EXHAUSTED"
	ErrorSignatureInvalid = "TIKTOK_SIGNATURE_INVALID"
	ErrorReplayRejected   = "TIKTOK_REPLAY_REJECTED"
	ErrorStateMismatch    = "TIKTOK_STATE_MISMATCH"
	ErrorConsentDenied    = "TIKTOK_CONSENT_DENIED"
	ErrorAPI              = "TIKTOK_API_ERROR"
	ErrorUnauthorized     = "TIKTOK_UNAUTHORIZED"
	ErrorForbidden        = "TIKTOK_FORBIDDEN"
	ErrorRateLimited      = "TIKTOK_RATE_LIMITED"
	ErrorExternalFailure  = "TIKTOK_EXTERNAL_FAILURE"
	ErrorInternal         = "TIKTOK_INTERNAL_ERROR"
)

type ErrorKind string

const (
	KindConfiguration    ErrorKind = "configuration_error"
	KindTransport        ErrorKind = "transport_error"
	KindHTTP             ErrorKind = "http_error"
	KindRetryExhausted   ErrorKind = "retry_exhausted"
	KindSignatureInvalid ErrorKind = "signature_invalid"
	KindReplayRejected   ErrorKind = "replay_rejected"
	KindStateMismatch    ErrorKind = "state_mismatch"
	KindConsentDenied    ErrorKind = "consent_denied"
	KindAPI              ErrorKind = "api_error"
)

// ClientError is the single error type surfaced by the client. StatusCode is
// zero when no HTTP response was received. Envelope holds the decoded error
// envelope when the body parsed; RawBody always holds the body text.
type ClientError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	RawBody    string
	Envelope   *Envelope[json.RawMessage]
	Attempts   int
	Cause      error
}

func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("tiktok: ")
	b.WriteString(string(e.Kind))
	if msg := strings.TrimSpace(e.Message); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if e.StatusCode > 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Envelope != nil && (e.Envelope.Code != 0 || e.Envelope.Message != "") {
		fmt.Fprintf(&b, " [code %d: %s]", e.Envelope.Code, e.Envelope.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (e *ClientError) ToServiceError() *goerrors.Error {
	if e == nil {
		return nil
	}
	category, code, textCode := e.classify()
	metadata := map[string]any{"kind": string(e.Kind)}
	if e.StatusCode > 0 {
		metadata["status_code"] = e.StatusCode
	}
	if e.Attempts > 0 {
		metadata["attempts"] = e.Attempts
	}
	if e.Envelope != nil {
		metadata["request_id"] = e.Envelope.RequestID
		metadata["api_code"] = e.Envelope.Code
	}
	var out *goerrors.Error
	if e.Cause != nil {
		out = goerrors.Wrap(e.Cause, category, e.Error())
	} else {
		out = goerrors.New(e.Error(), category)
	}
	return out.WithCode(code).WithTextCode(textCode).WithMetadata(metadata)
}

func (e *ClientError) classify() (goerrors.Category, int, string) {
	switch e.Kind {
	case KindConfiguration:
		return goerrors.CategoryBadInput, http.StatusBadRequest, ErrorConfiguration
	case KindTransport:
		return goerrors.CategoryExternal, http.StatusBadGateway, ErrorTransport
	case KindRetryExhausted:
		return goerrors.CategoryRateLimit, http.StatusTooManyRequests, ErrorRetryExhausted
	case KindSignatureInvalid:
		return goerrors.CategoryAuth, http.StatusUnauthorized, ErrorSignatureInvalid
	case KindReplayRejected:
		return goerrors.CategoryAuth, http.StatusUnauthorized, ErrorReplayRejected
	case KindStateMismatch:
		return goerrors.CategoryAuth, http.StatusUnauthorized, ErrorStateMismatch
	case KindConsentDenied:
		return goerrors.CategoryAuthz, http.StatusForbidden, ErrorConsentDenied
	case KindAPI:
		return goerrors.CategoryExternal, http.StatusBadGateway, ErrorAPI
	case KindHTTP:
		switch e.StatusCode {
		case http.StatusBadRequest:
			return goerrors.CategoryBadInput, http.StatusBadRequest, ErrorHTTP
		case http.StatusUnauthorized:
			return goerrors.CategoryAuth, http.StatusUnauthorized, ErrorUnauthorized
		case http.StatusForbidden:
			return goerrors.CategoryAuthz, http.StatusForbidden, ErrorForbidden
		case http.StatusNotFound:
			return goerrors.CategoryNotFound, http.StatusNotFound, ErrorHTTP
		case http.StatusTooManyRequests:
			return goerrors.CategoryRateLimit, http.StatusTooManyRequests, ErrorRateLimited
		}
		return goerrors.CategoryExternal, http.StatusBadGateway, ErrorHTTP
	default:
		return goerrors.CategoryInternal, http.StatusInternalServerError, ErrorInternal
	}
}

func NewClientError(kind ErrorKind, message string) *ClientError {
	return &ClientError{Kind: kind, Message: message}
}

func KindOf(err error) (ErrorKind, bool) {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr != nil {
		return clientErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	got, ok := KindOf(err)
	return ok && got == kind
}

// IsCredentialRejection reports whether err is a non-transient consent or
// credentials failure from the platform.
func IsCredentialRejection(err error) bool {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) || clientErr == nil || clientErr.Kind != KindHTTP {
		return false
	}
	switch clientErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

// ToServiceError maps any error to a go-errors envelope carrying a TIKTOK_*
// text code.
func ToServiceError(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr != nil {
		return clientErr.ToServiceError()
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ensureErrorEnvelope(rich)
	}
	return ensureErrorEnvelope(goerrors.MapToError(err, goerrors.DefaultErrorMappers()))
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = httpStatusFor(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = TextCodeFor(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func TextCodeFor(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryAuth:
		return ErrorUnauthorized
	case goerrors.CategoryAuthz:
		return ErrorForbidden
	case goerrors.CategoryRateLimit:
		return ErrorRateLimited
	case goerrors.CategoryExternal:
		return ErrorExternalFailure
	default:
		return ErrorInternal
	}
}

func httpStatusFor(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
