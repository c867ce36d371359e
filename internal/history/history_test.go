package history

import (
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)

	if err := store.Append("id-1", `let x = 1;`, true); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Append("id-2", `broken(`, false); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("wrong entry count. got=%d", len(entries))
	}
	for _, e := range entries {
		switch e.ID {
		case "id-1":
			if !e.OK || e.Source != `let x = 1;` {
				t.Errorf("entry id-1 corrupted: %+v", e)
			}
		case "id-2":
			if e.OK {
				t.Errorf("entry id-2 should be marked failed")
			}
		default:
			t.Errorf("unexpected entry %q", e.ID)
		}
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openStore(t)
	for _, id := range []string{"a", "b", "c"} {
		if err := store.Append(id, "puts(1);", true); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("limit ignored. got=%d entries", len(entries))
	}
}

func TestDuplicateIdIsRejected(t *testing.T) {
	store := openStore(t)
	if err := store.Append("same", "1;", true); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Append("same", "2;", true); err == nil {
		t.Errorf("duplicate primary key should fail")
	}
}
