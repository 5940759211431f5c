package webhooks

import (
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-tiktok-business/core"
)

const DefaultMaxBodyBytes int64 = 1 << 20

const rejectedBody = "unauthorized"

type HandlerOption func(*httpHandler)

func WithMaxBodyBytes(limit int64) HandlerOption {
	return func(h *httpHandler) {
		if limit > 0 {
			h.maxBodyBytes = limit
		}
	}
}

func WithLogger(logger core.Logger) HandlerOption {
	return func(h *httpHandler) {
		h.processor.Logger = logger
	}
}

func WithBurstController(burst BurstController) HandlerOption {
	return func(h *httpHandler) {
		h.processor.Burst = burst
	}
}

type httpHandler struct {
	processor    *Processor
	maxBodyBytes int64
}

// NewHTTPHandler serves webhook deliveries. Every verification failure gets
// the same 401 response.
func NewHTTPHandler(verifier RequestVerifier, handler EventHandler, opts ...HandlerOption) http.Handler {
	h := &httpHandler{
		processor:    NewProcessor(verifier, handler),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	headers := make(map[string]string, len(r.Header))
	for key, values := range r.Header {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	result, _ := h.processor.Process(r.Context(), core.InboundRequest{
		Headers: headers,
		Body:    body,
		Metadata: map[string]any{
			"remote_addr": r.RemoteAddr,
		},
	})

	switch result.StatusCode {
	case http.StatusOK:
		w.WriteHeader(http.StatusOK)
	case http.StatusUnauthorized:
		http.Error(w, rejectedBody, http.StatusUnauthorized)
	case 0:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	default:
		http.Error(w, http.StatusText(result.StatusCode), result.StatusCode)
	}
}
