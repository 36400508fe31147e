package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTokenFile is the well-known token location, relative to the
// working directory. The file must be excluded from version control.
const DefaultTokenFile = ".vicare-token.json"

// ExpiryMargin is subtracted from a token's nominal lifetime when checking
// validity. A token with less than this much time remaining is treated as
// expired so that in-flight API calls never race the real expiry.
const ExpiryMargin = 5 * time.Minute

// TokenRecord is the single persisted credential set. The on-disk copy is
// the source of truth across process restarts; within a running process the
// Authenticator's in-memory copy is authoritative and is written back after
// every refresh.
type TokenRecord struct {
	// AccessToken is the bearer token sent on each API request.
	AccessToken string `json:"access_token"`

	// RefreshToken obtains a new access token without interactive login.
	// May be empty.
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresIn is the validity duration in seconds from issuance.
	ExpiresIn int `json:"expires_in"`

	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`

	// CreatedAt is the issuance timestamp. CreatedAt + ExpiresIn is the
	// absolute expiry instant.
	CreatedAt time.Time `json:"created_at"`
}

// ExpiresAt returns the absolute expiry instant.
func (t *TokenRecord) ExpiresAt() time.Time {
	return t.CreatedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// ExpiredAt reports whether the record is expired or soon-expired at the
// given instant. Exactly ExpiryMargin remaining counts as expired.
func (t *TokenRecord) ExpiredAt(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return true
	}
	return !now.Add(ExpiryMargin).Before(t.ExpiresAt())
}

// Expired reports whether the record is expired or soon-expired now.
func (t *TokenRecord) Expired() bool {
	return t.ExpiredAt(time.Now())
}

// ToOAuth2Token converts the record to a golang.org/x/oauth2 token for
// interop with libraries that consume that type.
func (t *TokenRecord) ToOAuth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.ExpiresAt(),
	}
}

// Store persists exactly one TokenRecord. Implementations must make Save
// atomic from the caller's perspective: a concurrent Load never observes a
// partially written record.
type Store interface {
	// Save writes the record, overwriting any previous value, and stamps
	// CreatedAt at save time when the record does not carry one.
	Save(rec *TokenRecord) error

	// Load returns the stored record, or ErrNoToken when nothing is stored
	// or the stored data is unreadable. Corrupt data is absence, not a
	// fatal error.
	Load() (*TokenRecord, error)

	// Exists is a cheap existence check without parsing.
	Exists() bool

	// Delete removes the stored record. Deleting an absent record is a
	// no-op, not an error.
	Delete() error
}

// FileStore stores the token record in a single JSON file.
//
// SECURITY: the file is created with 0600 permissions and token values are
// never logged.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore creates a file-backed store. An empty path selects
// DefaultTokenFile in the working directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultTokenFile
	}
	return &FileStore{path: path}
}

// Path returns the file location the store writes to.
func (s *FileStore) Path() string {
	return s.path
}

// Save persists the record, writing to a temporary file and renaming it
// over the destination so readers never see a partial record.
func (s *FileStore) Save(rec *TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec == nil {
		return fmt.Errorf("token record cannot be nil")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create token directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token record: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace token file: %w", err)
	}

	return nil
}

// Load reads the stored record. Any failure to read or parse is reported
// as ErrNoToken so callers fall back to a fresh authorization instead of
// crashing on a damaged file.
func (s *FileStore) Load() (*TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Token file unreadable, treating as absent",
				"path", s.path,
				"error", err.Error(),
			)
		}
		return nil, ErrNoToken
	}

	var rec TokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("Token file corrupt, treating as absent",
			"path", s.path,
			"error", err.Error(),
		)
		return nil, ErrNoToken
	}
	if rec.AccessToken == "" {
		return nil, ErrNoToken
	}

	return &rec, nil
}

// Exists reports whether a token file is present, without parsing it.
func (s *FileStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.path)
	return err == nil
}

// Delete removes the token file.
func (s *FileStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}

// MemoryStore keeps the token record in memory. Useful for tests and for
// callers that must never touch disk.
type MemoryStore struct {
	mu  sync.RWMutex
	rec *TokenRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save stores a copy of the record.
func (s *MemoryStore) Save(rec *TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec == nil {
		return fmt.Errorf("token record cannot be nil")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	s.rec = &cp
	return nil
}

// Load returns a copy of the stored record, or ErrNoToken.
func (s *MemoryStore) Load() (*TokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.rec == nil {
		return nil, ErrNoToken
	}
	cp := *s.rec
	return &cp, nil
}

// Exists reports whether a record is stored.
func (s *MemoryStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec != nil
}

// Delete clears the stored record.
func (s *MemoryStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = nil
	return nil
}
