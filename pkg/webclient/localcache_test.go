package webclient

import (
	"path/filepath"
	"testing"
	"time"
)

func TestGetItemRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	if err := store.SetItem("prefs", map[string]string{"unit": "celsius"}); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	var got map[string]string
	ok, err := store.GetItem("prefs", &got)
	if err != nil || !ok {
		t.Fatalf("GetItem failed: ok=%v err=%v", ok, err)
	}
	if got["unit"] != "celsius" {
		t.Errorf("unexpected value: %v", got)
	}
}

func TestGetItemLazyExpiry(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)

	if err := store.SetItem("weather", "sunny", 0.001); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	var got string
	ok, err := store.GetItem("weather", &got)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if ok {
		t.Error("expired entry must read as absent")
	}

	// Eviction on read: the underlying storage must no longer hold the key.
	if _, present := storage.Get("weather"); present {
		t.Error("expired entry should have been deleted by the read")
	}
}

func TestGetItemNoExpiryPersists(t *testing.T) {
	store := NewStore(NewMemoryStorage())

	if err := store.SetItem("theme", "dark"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	var got string
	ok, err := store.GetItem("theme", &got)
	if err != nil || !ok {
		t.Fatalf("entry without expiry must persist: ok=%v err=%v", ok, err)
	}
	if got != "dark" {
		t.Errorf("unexpected value %q", got)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	store.SetItem("a", 1)
	store.SetItem("b", 2)

	store.RemoveItem("a")
	if ok, _ := store.GetItem("a", nil); ok {
		t.Error("removed key should be absent")
	}
	if ok, _ := store.GetItem("b", nil); !ok {
		t.Error("other keys should survive a remove")
	}

	store.Clear()
	if ok, _ := store.GetItem("b", nil); ok {
		t.Error("clear should drop everything")
	}
}

func TestFileStorageSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	first, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	store := NewStore(first)
	if err := store.SetItem("location", "Dhaka"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	second, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	reloaded := NewStore(second)

	var got string
	ok, err := reloaded.GetItem("location", &got)
	if err != nil || !ok {
		t.Fatalf("expected persisted entry: ok=%v err=%v", ok, err)
	}
	if got != "Dhaka" {
		t.Errorf("unexpected value %q", got)
	}
}

func TestGetItemCorruptEntryEvicted(t *testing.T) {
	storage := NewMemoryStorage()
	storage.Set("bad", "{not json")
	store := NewStore(storage)

	ok, err := store.GetItem("bad", nil)
	if ok {
		t.Error("corrupt entry must read as absent")
	}
	if err == nil {
		t.Error("corrupt entry should surface the decode error")
	}
	if _, present := storage.Get("bad"); present {
		t.Error("corrupt entry should have been deleted")
	}
}
