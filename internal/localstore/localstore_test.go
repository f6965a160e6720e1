package localstore_test

import (
	"os"
	"testing"

	"github.com/mesa-pos/terminal/internal/localstore"
)

func TestDir_RoundTrip(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := store.Set("pos-cart", `{"schema":1}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := store.Get("pos-cart")
	if !ok {
		t.Fatal("expected value")
	}
	if got != `{"schema":1}` {
		t.Errorf("value: got %q", got)
	}
}

func TestDir_MissingKey(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := store.Get("nope"); ok {
		t.Error("expected absence")
	}
}

func TestDir_OverwriteAndDelete(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	store.Set("k", "v1")
	store.Set("k", "v2")
	if got, _ := store.Get("k"); got != "v2" {
		t.Errorf("value: got %q, want v2", got)
	}

	store.Delete("k")
	if _, ok := store.Get("k"); ok {
		t.Error("expected absence after delete")
	}
	store.Delete("k") // double delete is fine
}

func TestDir_SanitizesKeyToFlatFilename(t *testing.T) {
	dir := t.TempDir()
	store, err := localstore.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	store.Set("../escape/attempt", "v")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			t.Errorf("unexpected subdirectory %q", e.Name())
		}
	}
	if got, ok := store.Get("../escape/attempt"); !ok || got != "v" {
		t.Errorf("round trip through sanitized key failed: %q %v", got, ok)
	}
}

func TestDir_DistinctKeysNeverCollide(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	// Both keys used to flatten to the same filename.
	store.Set("a/b", "slash")
	store.Set("a_b", "underscore")

	if got, _ := store.Get("a/b"); got != "slash" {
		t.Errorf("a/b: got %q, want slash", got)
	}
	if got, _ := store.Get("a_b"); got != "underscore" {
		t.Errorf("a_b: got %q, want underscore", got)
	}

	store.Delete("a/b")
	if _, ok := store.Get("a_b"); !ok {
		t.Error("deleting a/b must not remove a_b")
	}
}

func TestDir_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store, err := localstore.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 10; i++ {
		store.Set("k", "value")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected a single file, got %v", names)
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	store := localstore.NewMemory()
	store.Set("k", "v")
	if got, ok := store.Get("k"); !ok || got != "v" {
		t.Errorf("got %q %v", got, ok)
	}
	store.Delete("k")
	if _, ok := store.Get("k"); ok {
		t.Error("expected absence after delete")
	}
}
