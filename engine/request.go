package engine

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goliatone/go-tiktok-business/core"
)

// RequestFactory builds one attempt. It is called again for every retry.
type RequestFactory func(target core.ResolvedTarget) (core.TransportRequest, error)

// RequestSpec describes a JSON call against a path under the resolved base
// URL. Body is marshalled per attempt.
type RequestSpec struct {
	Method      string
	Path        string
	Query       map[string]string
	Body        any
	AccessToken string
	Headers     map[string]string
}

// Factory turns spec into a RequestFactory that applies the executor's auth
// scheme.
func (e *Executor) Factory(spec RequestSpec) RequestFactory {
	scheme := core.AuthSchemeAccessToken
	if e != nil {
		scheme = e.scheme
	}
	return func(target core.ResolvedTarget) (core.TransportRequest, error) {
		method := strings.ToUpper(strings.TrimSpace(spec.Method))
		if method == "" {
			method = http.MethodGet
		}
		headers := map[string]string{
			"Accept":        "application/json",
			"Cache-Control": "no-cache",
		}
		var body []byte
		if spec.Body != nil {
			encoded, err := json.Marshal(spec.Body)
			if err != nil {
				return core.TransportRequest{}, err
			}
			body = encoded
			headers["Content-Type"] = "application/json"
		}
		if strings.TrimSpace(spec.AccessToken) != "" {
			name, value := AuthHeader(scheme, spec.AccessToken)
			headers[name] = value
		}
		for key, value := range spec.Headers {
			headers[key] = value
		}
		var query map[string]string
		if len(spec.Query) > 0 {
			query = make(map[string]string, len(spec.Query))
			for key, value := range spec.Query {
				query[key] = value
			}
		}
		return core.TransportRequest{
			Method:   method,
			URL:      target.URL(spec.Path),
			Headers:  headers,
			Query:    query,
			Body:     body,
			Timeout:  target.Timeout,
			Metadata: map[string]any{"path": spec.Path},
		}, nil
	}
}
