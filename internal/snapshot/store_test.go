package snapshot

import (
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir() + "/snapshot.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	body := []byte(`{"name":"Jack","age":40}`)
	if err := store.Save("/users/jack/", body); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Equivalent path spellings address the same snapshot.
	got, info, err := store.Load("users/jack")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("unexpected body: %s", got)
	}
	if info.Path != "users/jack" {
		t.Fatalf("unexpected meta path: %s", info.Path)
	}
	if info.Bytes != len(body) {
		t.Fatalf("unexpected meta size: %d", info.Bytes)
	}
	if info.SavedAt.IsZero() {
		t.Fatalf("expected saved_at to be set")
	}
}

func TestStoreRootPathKeysAsSlash(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("", []byte(`{"whole":"tree"}`)); err != nil {
		t.Fatalf("Save root: %v", err)
	}

	_, info, err := store.Load("/")
	if err != nil {
		t.Fatalf("Load root: %v", err)
	}
	if info.Path != "/" {
		t.Fatalf("unexpected root key: %s", info.Path)
	}
}

func TestStoreRejectsInvalidJSON(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("users/jack", []byte(`{"broken":`)); err == nil {
		t.Fatalf("expected error for invalid JSON body")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, _, err := store.Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListAndDelete(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("a", []byte(`1`)); err != nil {
		t.Fatalf("Save a: %v", err)
	}
	if err := store.Save("b", []byte(`2`)); err != nil {
		t.Fatalf("Save b: %v", err)
	}

	infos, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 || infos[0].Path != "a" || infos[1].Path != "b" {
		t.Fatalf("unexpected listing: %+v", infos)
	}

	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete missing should be no-op: %v", err)
	}

	infos, err = store.List()
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	if len(infos) != 1 || infos[0].Path != "b" {
		t.Fatalf("unexpected listing after delete: %+v", infos)
	}

	if _, _, err := store.Load("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted snapshot to be gone, got %v", err)
	}
}

func TestStoreSaveReplacesPrevious(t *testing.T) {
	store := openTestStore(t)

	if err := store.Save("doc", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Save v1: %v", err)
	}
	if err := store.Save("doc", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Save v2: %v", err)
	}

	got, info, err := store.Load("doc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected replacement, got %s", got)
	}
	if info.Bytes != len(`{"v":2}`) {
		t.Fatalf("unexpected meta size: %d", info.Bytes)
	}
}
