package engine

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-tiktok-business/core"
)

const (
	HeaderDate    = "Date"
	HeaderTraceID = "X-Tt-Logid"
)

// ResponseHeader is protocol metadata read off a response. Date is in UTC.
type ResponseHeader struct {
	Date    time.Time
	TraceID string
}

// ParseResponseHeader returns nil unless both the Date and trace headers are
// present and valid.
func ParseResponseHeader(headers map[string]string) *ResponseHeader {
	rawDate, ok := core.HeaderValue(headers, HeaderDate)
	if !ok {
		return nil
	}
	date, err := http.ParseTime(strings.TrimSpace(rawDate))
	if err != nil {
		return nil
	}
	traceID, ok := core.HeaderValue(headers, HeaderTraceID)
	traceID = strings.TrimSpace(traceID)
	if !ok || traceID == "" {
		return nil
	}
	return &ResponseHeader{Date: date.UTC(), TraceID: traceID}
}
