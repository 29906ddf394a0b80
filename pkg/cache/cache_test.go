package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

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

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte(`{"elements":[]}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != `{"elements":[]}` {
		t.Errorf("Get(k) = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}

	if err := c.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry with zero TTL should never expire")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, _ := NewFileCache(dir)

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir should survive Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "roadgraph") {
		t.Errorf("DefaultDir() = %q", dir)
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

	a := k.QueryKey("https://overpass-api.de/api/interpreter", "[out:json];")
	if !strings.HasPrefix(a, "overpass:") {
		t.Errorf("QueryKey = %q, want overpass: prefix", a)
	}
	if a != k.QueryKey("https://overpass-api.de/api/interpreter", "[out:json];") {
		t.Error("QueryKey should be deterministic")
	}
	if a == k.QueryKey("https://overpass.kumi.systems/api/interpreter", "[out:json];") {
		t.Error("different endpoints should produce different keys")
	}
	if a == k.QueryKey("https://overpass-api.de/api/interpreter", "[out:xml];") {
		t.Error("different queries should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "staging:")
	got := scoped.QueryKey("e", "q")
	want := "staging:" + NewDefaultKeyer().QueryKey("e", "q")
	if got != want {
		t.Errorf("ScopedKeyer.QueryKey = %q, want %q", got, want)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open(empty) error: %v", err)
	}
	if _, ok := c.(NullCache); !ok {
		t.Errorf("Open(empty) = %T, want NullCache", c)
	}

	c, err = Open(ctx, Options{Backend: BackendFile, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(file) error: %v", err)
	}
	if _, ok := c.(*FileCache); !ok {
		t.Errorf("Open(file) = %T, want *FileCache", c)
	}

	if _, err := Open(ctx, Options{Backend: "memcached"}); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(memcached) error = %v, want ErrUnknownBackend", err)
	}
}
