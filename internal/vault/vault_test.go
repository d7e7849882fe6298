package vault

import (
	"path/filepath"
	"testing"

	"rewearadmin/internal/codec"
	"rewearadmin/pkg/logger"
)

func init() {
	logger.InitLogger("test")
}

func newTestVault(t *testing.T) (*Vault, *MemoryMedium) {
	t.Helper()
	c, err := codec.New("vault-test-key")
	if err != nil {
		t.Fatalf("codec.New: %v", err)
	}
	m := NewMemoryMedium()
	return New(c, m), m
}

func TestSetThenGet(t *testing.T) {
	v, _ := newTestVault(t)

	pair := Pair{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}
	if err := v.SetTokens(pair); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	if got := v.AccessToken(); got != pair.AccessToken {
		t.Errorf("AccessToken() = %q, want %q", got, pair.AccessToken)
	}
	if got := v.RefreshToken(); got != pair.RefreshToken {
		t.Errorf("RefreshToken() = %q, want %q", got, pair.RefreshToken)
	}
	if !v.Authenticated() {
		t.Error("Authenticated() = false after SetTokens")
	}
}

func TestTokensAreObfuscatedAtRest(t *testing.T) {
	v, m := newTestVault(t)
	if err := v.SetTokens(Pair{AccessToken: "plain-token", RefreshToken: "r"}); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}
	stored, ok, _ := m.Get("rewear.admin.access_token")
	if !ok {
		t.Fatal("access token key missing from medium")
	}
	if stored == "plain-token" {
		t.Error("access token stored in plaintext")
	}
}

func TestClearIdempotent(t *testing.T) {
	v, _ := newTestVault(t)
	if err := v.SetTokens(Pair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := v.Clear(); err != nil {
			t.Fatalf("Clear() #%d: %v", i+1, err)
		}
		if v.Authenticated() {
			t.Fatalf("Authenticated() = true after Clear #%d", i+1)
		}
	}
}

func TestCorruptionSelfHealing(t *testing.T) {
	v, m := newTestVault(t)
	if err := v.SetTokens(Pair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	// Simulate a corrupted record written by something else.
	if err := m.Set("rewear.admin.access_token", "!!!not decodable!!!"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if got := v.AccessToken(); got != "" {
		t.Errorf("AccessToken() = %q, want empty for corrupt record", got)
	}
	if _, ok, _ := m.Get("rewear.admin.access_token"); ok {
		t.Error("corrupt key was not purged")
	}
	if v.Authenticated() {
		t.Error("Authenticated() = true with corrupt access token")
	}
}

func TestEmptyVault(t *testing.T) {
	v, _ := newTestVault(t)
	if v.Authenticated() {
		t.Error("Authenticated() = true on empty vault")
	}
	if got := v.AccessToken(); got != "" {
		t.Errorf("AccessToken() = %q on empty vault", got)
	}
}

func TestFileMediumPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	c, _ := codec.New("k")

	m1, err := NewFileMedium(path)
	if err != nil {
		t.Fatalf("NewFileMedium: %v", err)
	}
	if err := New(c, m1).SetTokens(Pair{AccessToken: "persisted", RefreshToken: "r"}); err != nil {
		t.Fatalf("SetTokens: %v", err)
	}

	// A fresh medium over the same path sees the same record.
	m2, err := NewFileMedium(path)
	if err != nil {
		t.Fatalf("NewFileMedium: %v", err)
	}
	if got := New(c, m2).AccessToken(); got != "persisted" {
		t.Errorf("AccessToken() after reopen = %q, want %q", got, "persisted")
	}
}
