package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/kinship/pkg/errors"
	"github.com/matzehuels/kinship/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "layout:x"); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, "layout:x", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:x")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v err %v", hit, err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "layout:x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:x"); hit {
		t.Error("deleted entry still present")
	}
	if err := c.Delete(ctx, "layout:x"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "k", []byte("v"), 0)

	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, hit, err := c.Get(ctx, "k")
	if err != nil || hit {
		t.Errorf("corrupt entry: hit %v err %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	keep := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(keep, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	if err := Clear(ctx, c); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s survived Clear", k)
		}
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("Clear removed an unrelated file: %v", err)
	}
}

func TestFileCacheConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", []byte("same-value"), 0)
		}()
	}
	wg.Wait()

	data, hit, err := c.Get(ctx, "shared")
	if err != nil || !hit || string(data) != "same-value" {
		t.Errorf("Get after concurrent Set = %q %v %v", data, hit, err)
	}
}

func TestClearUnsupported(t *testing.T) {
	if err := Clear(context.Background(), getOnly{}); err != ErrNotClearable {
		t.Errorf("Clear = %v, want ErrNotClearable", err)
	}
}

type getOnly struct{ Cache }

func TestCompressed(t *testing.T) {
	ctx := context.Background()
	fc, _ := NewFileCache(t.TempDir())
	c, err := NewCompressed(fc)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	svg := []byte(strings.Repeat("<circle r=\"5\"/>", 500))
	if err := c.Set(ctx, "render:x", svg, 0); err != nil {
		t.Fatal(err)
	}

	raw, _, _ := fc.Get(ctx, "render:x")
	if len(raw) >= len(svg) {
		t.Errorf("stored %d bytes, want fewer than %d", len(raw), len(svg))
	}

	got, hit, err := c.Get(ctx, "render:x")
	if err != nil || !hit {
		t.Fatalf("Get = %v %v", hit, err)
	}
	if string(got) != string(svg) {
		t.Error("payload changed by compression round trip")
	}
}

func TestCompressedUndecodableEntry(t *testing.T) {
	ctx := context.Background()
	fc, _ := NewFileCache(t.TempDir())
	c, _ := NewCompressed(fc)
	defer c.Close()

	_ = fc.Set(ctx, "k", []byte("plain, not zstd"), 0)
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get = %v %v, want miss", hit, err)
	}
	if _, hit, _ := fc.Get(ctx, "k"); hit {
		t.Error("undecodable entry should be deleted")
	}
}

type countingCacheHooks struct {
	mu                 sync.Mutex
	hits, misses, sets map[string]int
}

func newCountingCacheHooks() *countingCacheHooks {
	return &countingCacheHooks{hits: map[string]int{}, misses: map[string]int{}, sets: map[string]int{}}
}

func (h *countingCacheHooks) OnCacheHit(_ context.Context, typ string) {
	h.mu.Lock()
	h.hits[typ]++
	h.mu.Unlock()
}

func (h *countingCacheHooks) OnCacheMiss(_ context.Context, typ string) {
	h.mu.Lock()
	h.misses[typ]++
	h.mu.Unlock()
}

func (h *countingCacheHooks) OnCacheSet(_ context.Context, typ string, _ int) {
	h.mu.Lock()
	h.sets[typ]++
	h.mu.Unlock()
}

func TestInstrumented(t *testing.T) {
	hooks := newCountingCacheHooks()
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	fc, _ := NewFileCache(t.TempDir())
	c := NewInstrumented(fc)

	k := NewDefaultKeyer().LayoutKey("abc", LayoutKeyOpts{Provider: "spring", Seed: 42})
	_, _, _ = c.Get(ctx, k)
	_ = c.Set(ctx, k, []byte("{}"), 0)
	_, _, _ = c.Get(ctx, k)

	if hooks.misses["layout"] != 1 || hooks.sets["layout"] != 1 || hooks.hits["layout"] != 1 {
		t.Errorf("hooks = hits %v misses %v sets %v", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		opts    Options
		wantErr errors.Code
	}{
		{"none", Options{Backend: BackendNone}, ""},
		{"empty means none", Options{}, ""},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, ""},
		{"file compressed", Options{Backend: BackendFile, Dir: t.TempDir(), Compress: true}, ""},
		{"file without dir", Options{Backend: BackendFile}, errors.ErrCodeInvalidConfig},
		{"redis without url", Options{Backend: BackendRedis}, errors.ErrCodeInvalidConfig},
		{"redis bad url", Options{Backend: BackendRedis, RedisURL: "not-a-url"}, errors.ErrCodeCache},
		{"unknown", Options{Backend: "memcached"}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Open error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer c.Close()
			if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
				t.Errorf("Set: %v", err)
			}
		})
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Provider: "spring", Seed: 42})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Provider: "spring", Seed: 7})
	lk3 := k.LayoutKey("hash456", LayoutKeyOpts{Provider: "spring", Seed: 42})
	if lk1 == lk2 || lk1 == lk3 {
		t.Error("seed and graph hash must both affect the layout key")
	}
	if lk1 != k.LayoutKey("hash123", LayoutKeyOpts{Provider: "spring", Seed: 42}) {
		t.Error("LayoutKey should be deterministic")
	}
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey = %s, want layout: prefix", lk1)
	}

	plain := k.RenderKey("hash123", RenderKeyOpts{Format: "svg", Engine: "neato", Provider: "spring", Seed: 42})
	highlighted := k.RenderKey("hash123", RenderKeyOpts{Format: "svg", Engine: "neato", Provider: "spring", Seed: 42, Source: "A", Target: "B"})
	if plain == highlighted {
		t.Error("highlighted path must change the render key")
	}
	if KeyType(plain) != KeyTypeRender {
		t.Errorf("KeyType = %s", KeyType(plain))
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	a := NewScopedKeyer("chapter-a", inner)
	b := NewScopedKeyer("chapter-b", inner)

	opts := LayoutKeyOpts{Provider: "spring", Seed: 42}
	ka, kb := a.LayoutKey("h", opts), b.LayoutKey("h", opts)
	if ka == kb {
		t.Error("different scopes should produce different keys")
	}
	if !strings.HasPrefix(ka, "layout:chapter-a:") {
		t.Errorf("scoped key = %s", ka)
	}
	if KeyType(ka) != KeyTypeLayout {
		t.Errorf("KeyType(%s) = %s", ka, KeyType(ka))
	}
	if NewScopedKeyer("", inner).LayoutKey("h", opts) != inner.LayoutKey("h", opts) {
		t.Error("empty scope should not change keys")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	k := NewScopedKeyer("s", nil)
	if k.RenderKey("h", RenderKeyOpts{Format: "svg"}) == "" {
		t.Error("nil inner should fall back to DefaultKeyer")
	}
}

func TestKeyType(t *testing.T) {
	tests := map[string]string{
		"layout:abc": "layout",
		"render:s:x": "render",
		"plain":      "other",
		":nothing":   "other",
	}
	for key, want := range tests {
		if got := KeyType(key); got != want {
			t.Errorf("KeyType(%q) = %q, want %q", key, got, want)
		}
	}
}
