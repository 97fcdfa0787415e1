package session

import (
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/ytget/scrolly/internal/model"
)

func newTestStore() *Store {
	app := test.NewApp()
	return NewStore(app.Preferences())
}

func TestGetEmpty(t *testing.T) {
	store := newTestStore()

	record, err := store.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if record != nil {
		t.Errorf("Get() = %+v, expected nil", record)
	}
	if store.IsLoggedIn() {
		t.Error("IsLoggedIn() should be false without a session")
	}
}

func TestSetAndGet(t *testing.T) {
	store := newTestStore()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	user := &model.User{ID: "u1", Name: "Ann"}
	if err := store.Set("u1", "tok", user); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	record, err := store.Get()
	if err != nil || record == nil {
		t.Fatalf("Get() = %v, %v", record, err)
	}
	if record.UserID != "u1" || record.Token != "tok" {
		t.Errorf("record = %+v", record)
	}
	if record.User == nil || record.User.Name != "Ann" {
		t.Errorf("record.User = %+v", record.User)
	}
	if !record.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, expected %v", record.Timestamp, fixed)
	}
	if !store.IsLoggedIn() {
		t.Error("IsLoggedIn() should be true")
	}
}

func TestClear(t *testing.T) {
	store := newTestStore()
	_ = store.Set("u1", "tok", nil)

	store.Clear()
	if record, _ := store.Get(); record != nil {
		t.Errorf("Get() after Clear() = %+v, expected nil", record)
	}
}

func TestCorruptRecordReadsAsAbsent(t *testing.T) {
	app := test.NewApp()
	app.Preferences().SetString(Key, "{not json")
	store := NewStore(app.Preferences())

	record, err := store.Get()
	if err != nil || record != nil {
		t.Errorf("Get() = %v, %v, expected nil, nil", record, err)
	}
}

func TestStoredFormat(t *testing.T) {
	app := test.NewApp()
	store := NewStore(app.Preferences())
	_ = store.Set("u1", "tok", nil)

	raw := app.Preferences().String(Key)
	for _, field := range []string{`"userId":"u1"`, `"token":"tok"`, `"timestamp":`} {
		if !strings.Contains(raw, field) {
			t.Errorf("stored record %s missing %s", raw, field)
		}
	}
}

func TestTokenlessRecordIsNotLoggedIn(t *testing.T) {
	store := newTestStore()
	_ = store.Set("u1", "", nil)
	if store.IsLoggedIn() {
		t.Error("IsLoggedIn() should require a token")
	}
}
