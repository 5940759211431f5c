package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-tiktok-business/core"
)

func TestRESTAdapter_SendsQueryHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if got := r.URL.Query().Get("fields"); got != `["username"]` {
			t.Fatalf("expected json fields query, got %q", got)
		}
		if got := r.Header.Get("Access-Token"); got != "tok" {
			t.Fatalf("expected access token header, got %q", got)
		}
		if got := r.Header.Get("X-Default"); got != "1" {
			t.Fatalf("expected default header, got %q", got)
		}
		w.Header().Set("X-Tt-Logid", "log-1")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"code":0}`))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.DefaultHeaders["X-Default"] = "1"

	res, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:  http.MethodPost,
		URL:     server.URL + "/business/get/",
		Query:   map[string]string{"fields": `["username"]`},
		Headers: map[string]string{"Access-Token": "tok"},
		Body:    []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if string(res.Body) != `{"code":0}` {
		t.Fatalf("unexpected body %q", res.Body)
	}
	if got, _ := core.HeaderValue(res.Headers, "x-tt-logid"); got != "log-1" {
		t.Fatalf("expected flattened log id header, got %q", got)
	}
}

func TestRESTAdapter_PlatformHeadersAndLogID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Cache-Control"); got != "no-cache" {
			t.Errorf("expected no-cache, got %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("expected json accept, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "custom/1.0" {
			t.Errorf("expected request header to win, got %q", got)
		}
		w.Header().Set("X-Tt-Logid", "log-2")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	res, err := NewRESTAdapter(server.Client()).Do(context.Background(), core.TransportRequest{
		URL:     server.URL + "/business/get/",
		Headers: map[string]string{"User-Agent": "custom/1.0"},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if res.Metadata["log_id"] != "log-2" || res.Metadata["path"] != "/business/get/" {
		t.Fatalf("unexpected metadata %#v", res.Metadata)
	}
}

func TestRESTAdapter_ResponseLimitReturnsRichError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("12345"))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.MaxResponseBodyBytes = 4

	_, err := adapter.Do(context.Background(), core.TransportRequest{Method: http.MethodGet, URL: server.URL})
	if err == nil {
		t.Fatalf("expected response body limit error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", rich.Category)
	}
	if rich.TextCode != core.ErrorTransport {
		t.Fatalf("expected %q text code, got %q", core.ErrorTransport, rich.TextCode)
	}
	if rich.Code != http.StatusBadGateway {
		t.Fatalf("expected %d code, got %d", http.StatusBadGateway, rich.Code)
	}
}

func TestRESTAdapter_TimeoutIsExternalFailure(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	adapter := NewRESTAdapter(server.Client())
	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:  http.MethodGet,
		URL:     server.URL,
		Timeout: 20 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if IsRequestError(err) {
		t.Fatalf("timeout should not be classified as a request error")
	}
}

func TestRESTAdapter_InvalidRequests(t *testing.T) {
	var nilAdapter *RESTAdapter
	if _, err := nilAdapter.Do(context.Background(), core.TransportRequest{URL: "https://example.com"}); !IsRequestError(err) {
		t.Fatalf("expected request error for nil adapter, got %v", err)
	}

	adapter := NewRESTAdapter(nil)
	if _, err := adapter.Do(context.Background(), core.TransportRequest{}); !IsRequestError(err) {
		t.Fatalf("expected request error for empty url, got %v", err)
	}
	if _, err := adapter.Do(context.Background(), core.TransportRequest{URL: "http://[::1"}); !IsRequestError(err) {
		t.Fatalf("expected request error for malformed url, got %v", err)
	}
}
