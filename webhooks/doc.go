// Package webhooks authenticates and dispatches inbound platform callbacks.
//
// A delivery carries a TikTok-Signature header of the form
// t=<unix-seconds>,s=<hex-hmac>. The MAC is HMAC-SHA256 keyed with the app
// secret over "<t>.<raw body>". Verification always runs on the raw body
// bytes and, when a max age is configured, rejects stale timestamps.
//
// Rejections are answered identically on the wire; the reason is only
// logged.
package webhooks
