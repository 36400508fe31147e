package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const (
	// pkceVerifierBytes is the number of random bytes for the PKCE code
	// verifier. 32 bytes provides 256 bits of entropy and encodes to 43
	// base64url characters, the minimum length RFC 7636 allows.
	pkceVerifierBytes = 32

	// stateBytes is the number of random bytes for the state parameter.
	// The state only correlates the callback with the request that started
	// it, so 128 bits would do; 32 bytes keeps it uniform with the verifier.
	stateBytes = 32
)

// PKCEChallenge holds a PKCE (Proof Key for Code Exchange) verifier/challenge
// pair. A fresh pair is generated per authorization attempt and discarded
// after the token exchange that consumes it.
type PKCEChallenge struct {
	// CodeVerifier is the cryptographically random string, base64url-encoded
	// without padding. It is kept secret and never sent to the browser.
	CodeVerifier string

	// CodeChallenge is the SHA256 hash of the verifier, base64url-encoded
	// without padding. This is what the authorization request carries.
	CodeChallenge string

	// CodeChallengeMethod is always "S256"; the plain method is not used.
	CodeChallengeMethod string
}

// GeneratePKCE generates a new PKCE code verifier and its S256 challenge.
// Fails with ErrEntropyUnavailable when the secure random source cannot
// supply bytes; there is no weak fallback.
func GeneratePKCE() (*PKCEChallenge, error) {
	verifierBytes := make([]byte, pkceVerifierBytes)
	if _, err := rand.Read(verifierBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}

	verifier := base64.RawURLEncoding.EncodeToString(verifierBytes)

	hash := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(hash[:])

	return &PKCEChallenge{
		CodeVerifier:        verifier,
		CodeChallenge:       challenge,
		CodeChallengeMethod: "S256",
	}, nil
}

// GenerateState generates a random state parameter used to correlate the
// authorization callback with the request that initiated it (CSRF defense).
// The value is base64url-encoded without padding.
func GenerateState() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
