package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "cell:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Set then Get
	want := []byte(`{"name":"line1"}`)
	if err := c.Set(ctx, "cell:abc", want, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "cell:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	// Delete then miss
	if err := c.Delete(ctx, "cell:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "cell:abc")
	if hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting an absent key is not an error
	if err := c.Delete(ctx, "cell:absent"); err != nil {
		t.Errorf("Delete of absent key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// An entry whose deadline has passed reads as a miss. Backdate the
	// entry on disk rather than sleeping out a real TTL.
	if err := c.Set(ctx, "art:xyz", []byte("svg"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	fc := c.(*FileCache)
	stale, err := json.Marshal(entry{Data: []byte("svg"), ExpiresAt: time.Now().Add(-time.Minute)})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if err := os.WriteFile(fc.path("art:xyz"), stale, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	_, hit, err := c.Get(ctx, "art:xyz")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Expired entry should miss")
	}

	// The expired entry is removed on read
	if _, err := os.Stat(fc.path("art:xyz")); !os.IsNotExist(err) {
		t.Error("Expired entry should be removed from disk")
	}

	// Zero and negative TTLs both store without expiration
	cases := []struct {
		key string
		ttl time.Duration
	}{
		{"art:forever", 0},
		{"art:negative", -time.Second},
	}
	for _, tc := range cases {
		if err := c.Set(ctx, tc.key, []byte("svg"), tc.ttl); err != nil {
			t.Fatalf("Set(%s) error: %v", tc.key, err)
		}
		_, hit, _ = c.Get(ctx, tc.key)
		if !hit {
			t.Errorf("Entry %s with TTL %v should hit: non-positive TTLs disable expiration", tc.key, tc.ttl)
		}
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "cell:abc", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Corrupt the entry on disk
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("cell:abc"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	// Corrupt entries read as misses, not errors
	_, hit, err := c.Get(ctx, "cell:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Corrupt entry should miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// CellKey should include all inputs in the hash
	ck1 := k.CellKey("generic", "microstrip_line", map[string]any{"length": 100.0, "width": 10.0})
	ck2 := k.CellKey("generic", "microstrip_line", map[string]any{"length": 200.0, "width": 10.0})
	if ck1 == ck2 {
		t.Error("Different parameters should produce different keys")
	}
	ck3 := k.CellKey("sky130", "microstrip_line", map[string]any{"length": 100.0, "width": 10.0})
	if ck1 == ck3 {
		t.Error("Different technologies should produce different keys")
	}
	if !strings.HasPrefix(ck1, "cell:") {
		t.Errorf("CellKey should carry the cell prefix: %s", ck1)
	}

	// Equal parameter maps hash the same regardless of numeric type
	ckInt := k.CellKey("generic", "microstrip_line", map[string]any{"length": 100, "width": 10})
	if ck1 != ckInt {
		t.Error("Int and float parameters with equal values should produce the same key")
	}

	// LayoutKey should include resolver options in hash
	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{MatingOffset: 180, Tolerance: 1e-6})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{MatingOffset: 90, Tolerance: 1e-6})
	if lk1 == lk2 {
		t.Error("Different LayoutKeyOpts should produce different keys")
	}

	// ArtifactKey should include render options in hash
	ak1 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Scale: 2})
	ak2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "gds", DBUnit: 0.001})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "api:")

	// All keys should be prefixed
	ck := scoped.CellKey("generic", "cpw_line", map[string]any{"length": 50.0})
	if !strings.HasPrefix(ck, "api:cell:") {
		t.Errorf("ScopedKeyer CellKey should be prefixed: %s", ck)
	}
	if ck != "api:"+inner.CellKey("generic", "cpw_line", map[string]any{"length": 50.0}) {
		t.Error("ScopedKeyer should delegate to the inner keyer")
	}

	lk := scoped.LayoutKey("hash123", LayoutKeyOpts{})
	if !strings.HasPrefix(lk, "api:lay:") {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", lk)
	}

	ak := scoped.ArtifactKey("hash123", ArtifactKeyOpts{Format: "gds"})
	if !strings.HasPrefix(ak, "api:art:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", ak)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().CellKey("generic", "mim_capacitor", nil)
	if got := scoped.CellKey("generic", "mim_capacitor", nil); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}
