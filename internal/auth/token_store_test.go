package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testRecord() *TokenRecord {
	return &TokenRecord{
		AccessToken:  "access-token-1",
		RefreshToken: "refresh-token-1",
		ExpiresIn:    3600,
		TokenType:    "Bearer",
		CreatedAt:    time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

	rec := testRecord()
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if loaded.AccessToken != rec.AccessToken {
		t.Errorf("AccessToken = %q, want %q", loaded.AccessToken, rec.AccessToken)
	}
	if loaded.RefreshToken != rec.RefreshToken {
		t.Errorf("RefreshToken = %q, want %q", loaded.RefreshToken, rec.RefreshToken)
	}
	if loaded.ExpiresIn != rec.ExpiresIn {
		t.Errorf("ExpiresIn = %d, want %d", loaded.ExpiresIn, rec.ExpiresIn)
	}
	if loaded.TokenType != rec.TokenType {
		t.Errorf("TokenType = %q, want %q", loaded.TokenType, rec.TokenType)
	}
	if !loaded.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", loaded.CreatedAt, rec.CreatedAt)
	}
}

func TestFileStore_SaveStampsCreatedAt(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

	before := time.Now()
	rec := &TokenRecord{AccessToken: "at", ExpiresIn: 3600, TokenType: "Bearer"}
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.CreatedAt.Before(before) || loaded.CreatedAt.After(time.Now()) {
		t.Errorf("CreatedAt %v was not stamped at save time", loaded.CreatedAt)
	}
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

	first := testRecord()
	if err := store.Save(first); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	second := testRecord()
	second.AccessToken = "access-token-2"
	if err := store.Save(second); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.AccessToken != "access-token-2" {
		t.Errorf("AccessToken = %q, want the overwritten value", loaded.AccessToken)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("Load() on missing file = %v, want ErrNoToken", err)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to plant corrupt file: %v", err)
	}

	store := NewFileStore(path)

	// Corrupt data is absence, not a fatal error.
	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("Load() on corrupt file = %v, want ErrNoToken", err)
	}
}

func TestFileStore_Exists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path)

	if store.Exists() {
		t.Error("Exists() = true before any save")
	}
	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if !store.Exists() {
		t.Error("Exists() = false after save")
	}
}

func TestFileStore_Delete(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

	// Deleting an absent record is a no-op.
	if err := store.Delete(); err != nil {
		t.Errorf("Delete() on empty store failed: %v", err)
	}

	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if store.Exists() {
		t.Error("token file still present after Delete()")
	}
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "token.json"))

	if err := store.Save(testRecord()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "token.json" {
		t.Errorf("unexpected directory contents after save: %v", entries)
	}
}

func TestTokenRecord_ExpiredAt(t *testing.T) {
	created := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rec := &TokenRecord{
		AccessToken: "at",
		ExpiresIn:   3600,
		TokenType:   "Bearer",
		CreatedAt:   created,
	}

	testCases := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"freshly issued", created, false},
		{"54 minutes in, margin not reached", created.Add(54 * time.Minute), false},
		{"exactly 5 minutes remaining", created.Add(55 * time.Minute), true},
		{"56 minutes in, inside margin", created.Add(56 * time.Minute), true},
		{"past nominal expiry", created.Add(2 * time.Hour), true},
		{"one millisecond before the margin", created.Add(55*time.Minute - time.Millisecond), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rec.ExpiredAt(tc.now); got != tc.expired {
				t.Errorf("ExpiredAt(%v) = %v, want %v", tc.now, got, tc.expired)
			}
		})
	}
}

func TestTokenRecord_ExpiredAt_EmptyRecord(t *testing.T) {
	var nilRec *TokenRecord
	if !nilRec.ExpiredAt(time.Now()) {
		t.Error("nil record should be expired")
	}

	empty := &TokenRecord{ExpiresIn: 3600, CreatedAt: time.Now()}
	if !empty.ExpiredAt(time.Now()) {
		t.Error("record without access token should be expired")
	}
}

func TestTokenRecord_ToOAuth2Token(t *testing.T) {
	rec := testRecord()
	tok := rec.ToOAuth2Token()

	if tok.AccessToken != rec.AccessToken {
		t.Errorf("AccessToken = %q, want %q", tok.AccessToken, rec.AccessToken)
	}
	if tok.RefreshToken != rec.RefreshToken {
		t.Errorf("RefreshToken = %q, want %q", tok.RefreshToken, rec.RefreshToken)
	}
	if !tok.Expiry.Equal(rec.CreatedAt.Add(time.Hour)) {
		t.Errorf("Expiry = %v, want created_at + expires_in", tok.Expiry)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if store.Exists() {
		t.Error("Exists() = true on fresh store")
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("Load() on empty store = %v, want ErrNoToken", err)
	}

	rec := testRecord()
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.AccessToken != rec.AccessToken || !loaded.CreatedAt.Equal(rec.CreatedAt) {
		t.Error("loaded record does not match saved record")
	}

	// Mutating the loaded copy must not affect the stored record.
	loaded.AccessToken = "mutated"
	again, _ := store.Load()
	if again.AccessToken != rec.AccessToken {
		t.Error("store returned a shared record instead of a copy")
	}

	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if store.Exists() {
		t.Error("Exists() = true after Delete()")
	}
}
