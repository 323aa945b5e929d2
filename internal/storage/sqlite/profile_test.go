// ABOUTME: Tests for user profile storage
// ABOUTME: Covers field upserts and user name helpers
package sqlite

import "testing"

func TestProfileStoreSetAndGet(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewProfileStore(db)

	if err := store.Set(1, "timezone", "US/Pacific"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(1, "timezone")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "US/Pacific" {
		t.Errorf("Get() = %q, want %q", got, "US/Pacific")
	}

	if err := store.Set(1, "timezone", "US/Eastern"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err = store.Get(1, "timezone")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "US/Eastern" {
		t.Errorf("Get() after update = %q, want %q", got, "US/Eastern")
	}
}

func TestProfileStoreGetMissing(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewProfileStore(db)

	got, err := store.Get(1, "never_set")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() = %q, want empty string", got)
	}
}

func TestProfileStoreUserName(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewProfileStore(db)

	name, err := store.UserName(1)
	if err != nil {
		t.Fatalf("UserName() error = %v", err)
	}
	if name != "" {
		t.Errorf("UserName() = %q, want empty before introduction", name)
	}

	if err := store.SetUserName(1, "Harper"); err != nil {
		t.Fatalf("SetUserName() error = %v", err)
	}

	name, err = store.UserName(1)
	if err != nil {
		t.Fatalf("UserName() error = %v", err)
	}
	if name != "Harper" {
		t.Errorf("UserName() = %q, want %q", name, "Harper")
	}
}

func TestProfileStoreAll(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewProfileStore(db)

	if err := store.SetUserName(1, "Harper"); err != nil {
		t.Fatalf("SetUserName() error = %v", err)
	}
	if err := store.Set(1, "pronouns", "they/them"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(2, "name", "Someone Else"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	all, err := store.All(1)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("All() returned %d fields, want 2", len(all))
	}
	if all["name"] != "Harper" {
		t.Errorf("All()[name] = %q, want %q", all["name"], "Harper")
	}
}
