package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/admitdesk/admitdesk/internal/platform/kvstore"
)

// failingKV wraps a real store and fails writes on demand, for rollback tests.
type failingKV struct {
	kvstore.Store
	failSet bool
}

func (f *failingKV) Set(key string, value []byte) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.Store.Set(key, value)
}

func newTestKV(t *testing.T) kvstore.Store {
	t.Helper()
	kv, err := kvstore.NewFileStore(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return kv
}

func testInput() AppointmentInput {
	return AppointmentInput{
		Name:          "A",
		Email:         "a@x.com",
		Phone:         "9999999999",
		Department:    "CSE",
		PreferredDate: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdd_Defaults(t *testing.T) {
	store := NewStore(newTestKV(t))
	before := time.Now().UTC()

	a, err := store.Add(testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" {
		t.Error("expected a fresh id")
	}
	if a.Status != StatusPending {
		t.Errorf("expected status pending, got %s", a.Status)
	}
	if a.Timestamp.Before(before) || a.Timestamp.After(time.Now().UTC()) {
		t.Errorf("expected timestamp at call time, got %v", a.Timestamp)
	}
}

func TestAdd_UniqueIDs(t *testing.T) {
	store := NewStore(newTestKV(t))
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		a, err := store.Add(testInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestRoundTrip(t *testing.T) {
	kv := newTestKV(t)
	store := NewStore(kv)

	first, _ := store.Add(testInput())
	in := testInput()
	in.UserID = "u1"
	in.Remarks = "evening preferred"
	second, _ := store.Add(in)

	reloaded := NewStore(kv)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := reloaded.List()
	if len(items) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != second.ID {
		t.Error("expected insertion order to survive a reload")
	}
	if items[1].UserID != "u1" || items[1].Remarks != "evening preferred" {
		t.Errorf("expected fields to round-trip, got %+v", items[1])
	}
	if !items[0].Timestamp.Equal(first.Timestamp) {
		t.Errorf("expected timestamp to round-trip, got %v want %v", items[0].Timestamp, first.Timestamp)
	}
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	store := NewStore(newTestKV(t))
	if err := store.Load(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.List()) != 0 {
		t.Error("expected empty collection for missing key")
	}
}

func TestLoad_CorruptData(t *testing.T) {
	kv := newTestKV(t)
	kv.Set("appointments", []byte("{not json["))

	store := NewStore(kv)
	err := store.Load()
	if !errors.Is(err, ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}

	// Degrade-to-empty policy: reset discards the unreadable history.
	if err := store.Reset(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("unexpected error after reset: %v", err)
	}
	if len(store.List()) != 0 {
		t.Error("expected empty collection after reset")
	}
}

func TestAdd_RollbackOnWriteFailure(t *testing.T) {
	kv := &failingKV{Store: newTestKV(t)}
	store := NewStore(kv)

	store.Add(testInput())
	kv.failSet = true

	_, err := store.Add(testInput())
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if got := len(store.List()); got != 1 {
		t.Errorf("expected in-memory rollback to 1 appointment, got %d", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	kv := newTestKV(t)
	store := NewStore(kv)
	a, _ := store.Add(testInput())

	assigned := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err := store.UpdateStatus(a.ID, StatusConfirmed, &assigned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Errorf("expected status confirmed, got %s", updated.Status)
	}
	if updated.AssignedDate == nil || !updated.AssignedDate.Equal(assigned) {
		t.Errorf("expected assigned date %v, got %v", assigned, updated.AssignedDate)
	}
	if updated.Name != a.Name || updated.Email != a.Email || !updated.Timestamp.Equal(a.Timestamp) {
		t.Error("expected all other fields untouched")
	}

	// The change must survive a reload from storage.
	reloaded := NewStore(kv)
	reloaded.Load()
	got, err := reloaded.Get(a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusConfirmed || got.AssignedDate == nil || !got.AssignedDate.Equal(assigned) {
		t.Errorf("expected persisted confirmation, got %+v", got)
	}
}

func TestUpdateStatus_KeepsAssignedDateWhenOmitted(t *testing.T) {
	store := NewStore(newTestKV(t))
	a, _ := store.Add(testInput())

	assigned := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store.UpdateStatus(a.ID, StatusConfirmed, &assigned)

	updated, err := store.UpdateStatus(a.ID, StatusAttended, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AssignedDate == nil || !updated.AssignedDate.Equal(assigned) {
		t.Error("expected assigned date to be kept when not supplied")
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	store := NewStore(newTestKV(t))
	store.Add(testInput())

	_, err := store.UpdateStatus("missing", StatusApproved, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	items := store.List()
	if len(items) != 1 || items[0].Status != StatusPending {
		t.Error("expected collection unchanged after failed update")
	}
}

func TestUpdateStatus_InvalidEnum(t *testing.T) {
	store := NewStore(newTestKV(t))
	a, _ := store.Add(testInput())

	_, err := store.UpdateStatus(a.ID, "archived", nil)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatus_RollbackOnWriteFailure(t *testing.T) {
	kv := &failingKV{Store: newTestKV(t)}
	store := NewStore(kv)
	a, _ := store.Add(testInput())

	kv.failSet = true
	_, err := store.UpdateStatus(a.ID, StatusApproved, nil)
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	got, _ := store.Get(a.ID)
	if got.Status != StatusPending {
		t.Errorf("expected in-memory rollback to pending, got %s", got.Status)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	store := NewStore(newTestKV(t))
	a, _ := store.Add(testInput())
	store.Add(testInput())

	if err := store.Delete(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(a.ID); err != nil {
		t.Fatalf("expected second delete to be a no-op, got %v", err)
	}
	if len(store.List()) != 1 {
		t.Errorf("expected 1 appointment left, got %d", len(store.List()))
	}
}

func TestListByUser(t *testing.T) {
	store := NewStore(newTestKV(t))

	mine := testInput()
	mine.UserID = "u1"
	first, _ := store.Add(mine)
	store.Add(testInput()) // no user
	second, _ := store.Add(mine)

	items := store.ListByUser("u1")
	if len(items) != 2 {
		t.Fatalf("expected 2 appointments for u1, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != second.ID {
		t.Error("expected insertion order to be preserved")
	}
}

func TestCountByStatus(t *testing.T) {
	store := NewStore(newTestKV(t))
	a, _ := store.Add(testInput())
	store.Add(testInput())
	store.UpdateStatus(a.ID, StatusApproved, nil)

	counts := store.CountByStatus()
	if counts[StatusPending] != 1 || counts[StatusApproved] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
