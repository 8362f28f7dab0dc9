package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreGetPut(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := store.Put(ctx, "a", []byte("one")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store.Put(ctx, "a", []byte("two")); err != nil {
		t.Fatalf("Put() overwrite failed: %v", err)
	}

	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if string(got) != "two" {
		t.Errorf("Expected overwritten value 'two', got %q", got)
	}
}

func TestStoreKeys(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, k := range []string{"profile:b", "profile:a", "settings", "prof"} {
		if err := store.Put(ctx, k, []byte("x")); err != nil {
			t.Fatalf("Put(%s) failed: %v", k, err)
		}
	}

	keys, err := store.Keys(ctx, "profile:")
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "profile:a" || keys[1] != "profile:b" {
		t.Errorf("Expected [profile:a profile:b], got %v", keys)
	}

	all, err := store.Keys(ctx, "")
	if err != nil {
		t.Fatalf("Keys(\"\") failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 keys, got %d", len(all))
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := store.Append(ctx, "h", []byte(fmt.Sprint(i)), 0); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}
	if err := store.Append(ctx, "other", []byte("x"), 0); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	got, err := store.Range(ctx, "h", 3)
	if err != nil {
		t.Fatalf("Range() failed: %v", err)
	}
	want := []string{"5", "4", "3"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Errorf("Range()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStoreListTrim(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := store.Append(ctx, "h", []byte(fmt.Sprint(i)), 2); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	got, err := store.Range(ctx, "h", 10)
	if err != nil {
		t.Fatalf("Range() failed: %v", err)
	}
	if len(got) != 2 || string(got[0]) != "5" || string(got[1]) != "4" {
		t.Errorf("Expected [5 4] after trimming, got %q", got)
	}
}

func TestStorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	// First session
	store1, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store1.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := store1.Append(ctx, "l", []byte("e"), 0); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	store1.Close()

	// Second session
	store2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed on reopen: %v", err)
	}
	defer store2.Close()

	if v, err := store2.Get(ctx, "k"); err != nil || string(v) != "v" {
		t.Errorf("Expected persisted value 'v', got %q (%v)", v, err)
	}
	if l, err := store2.Range(ctx, "l", 0); err != nil || len(l) != 1 {
		t.Errorf("Expected 1 persisted list value, got %d (%v)", len(l), err)
	}
}

func TestOpenKVUnknownBackend(t *testing.T) {
	_, err := OpenKV(context.Background(), Config{Backend: "etcd"})
	if err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestOpenKVDefaultsToSQLite(t *testing.T) {
	cfg := Config{Path: filepath.Join(t.TempDir(), "kv.db")}
	kv, err := OpenKV(context.Background(), cfg)
	if err != nil {
		t.Fatalf("OpenKV() failed: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*Store); !ok {
		t.Errorf("Expected *Store, got %T", kv)
	}
}
