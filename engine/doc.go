// Package engine executes Business API calls: it rebuilds each attempt from a
// RequestFactory, retries 429 and 500 responses on a fixed interval, decodes
// the response envelope, and maps every failure to a *core.ClientError.
package engine
