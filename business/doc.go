// Package business wraps the account, video, comment and publishing
// endpoints. Every call goes through the engine, so retries, envelope
// decoding and drift logging behave the same as the OAuth calls.
package business
