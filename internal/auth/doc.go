// Package auth implements OAuth2 client authentication for the Viessmann
// ViCare API.
//
// The package owns the full token lifecycle:
//   - PKCE-enhanced Authorization Code Flow (S256, public client)
//   - Local HTTP callback listener for the loopback redirect
//   - Single-record JSON token persistence with atomic replace
//   - Expiry detection with a five-minute safety margin
//   - Transparent refresh, falling back to interactive authorization
//     when the stored credentials are no longer usable
//
// # Token Storage
//
// Exactly one token record is persisted, by default to .vicare-token.json
// in the working directory:
//
//	store := auth.NewFileStore("")
//	rec, err := store.Load()
//
// The file must be excluded from version control.
//
// # Usage
//
//	authr, err := auth.NewAuthenticator(auth.Config{ClientID: id}, store)
//	token, err := authr.EnsureAuthenticated(ctx)
//
// EnsureAuthenticated is cheap when the current token is still valid and
// only opens a browser when neither the stored token nor a refresh grant
// can produce a usable credential.
package auth
