// Package vicare is a thin client for the Viessmann ViCare IoT REST API.
//
// The client never handles credentials itself: a TokenSource is consulted
// before every request and is expected to deliver a valid access token,
// refreshing or re-authorizing as needed. internal/auth's Authenticator
// satisfies the interface.
//
// Responses arrive wrapped in the vendor's {"data": ...} envelope; the
// client unwraps it and returns typed values. Vendor payloads are passed
// through without schema validation, and there is no retry, rate limiting
// or caching layer.
package vicare
