package notify_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mesa-pos/terminal/internal/enum"
	"github.com/mesa-pos/terminal/internal/localstore"
	"github.com/mesa-pos/terminal/internal/notify"
)

func newInbox(t *testing.T) (*notify.Inbox, *localstore.Memory) {
	t.Helper()
	storage := localstore.NewMemory()
	return notify.NewInbox(storage), storage
}

func TestAdd_PrependsNewestFirst(t *testing.T) {
	in, _ := newInbox(t)
	in.Add(enum.NotificationInfo, "first", "", nil)
	in.Add(enum.NotificationInfo, "second", "", nil)

	all := in.All()
	if len(all) != 2 {
		t.Fatalf("len: got %d, want 2", len(all))
	}
	if all[0].Title != "second" || all[1].Title != "first" {
		t.Errorf("order: got [%q, %q], want [second, first]", all[0].Title, all[1].Title)
	}
	if all[0].Read {
		t.Error("new notifications must be unread")
	}
	if all[0].ID == all[1].ID {
		t.Error("ids must be unique")
	}
}

func TestCap_InsertingBeyond50EvictsOldest(t *testing.T) {
	in, _ := newInbox(t)
	for i := 1; i <= 55; i++ {
		in.Add(enum.NotificationInfo, fmt.Sprintf("n%d", i), "", nil)
	}

	all := in.All()
	if len(all) != notify.MaxEntries {
		t.Fatalf("len: got %d, want %d", len(all), notify.MaxEntries)
	}
	if all[0].Title != "n55" {
		t.Errorf("newest: got %q, want n55", all[0].Title)
	}
	// The 5 oldest (n1..n5) are gone; the tail is n6.
	if all[len(all)-1].Title != "n6" {
		t.Errorf("oldest surviving: got %q, want n6", all[len(all)-1].Title)
	}
}

func TestMarkRead(t *testing.T) {
	in, _ := newInbox(t)
	n := in.Add(enum.NotificationOrder, "order up", "", nil)
	in.Add(enum.NotificationInfo, "other", "", nil)

	in.MarkRead(n.ID)
	in.MarkRead("no-such-id") // no-op

	if got := in.UnreadCount(); got != 1 {
		t.Errorf("unread count: got %d, want 1", got)
	}
	unread := in.Unread()
	if len(unread) != 1 || unread[0].Title != "other" {
		t.Errorf("unread: %+v", unread)
	}
}

func TestMarkAllRead(t *testing.T) {
	in, _ := newInbox(t)
	in.Add(enum.NotificationInfo, "a", "", nil)
	in.Add(enum.NotificationInfo, "b", "", nil)

	in.MarkAllRead()
	if got := in.UnreadCount(); got != 0 {
		t.Errorf("unread count: got %d, want 0", got)
	}
}

func TestRemoveAndClearAll(t *testing.T) {
	in, _ := newInbox(t)
	n := in.Add(enum.NotificationInfo, "a", "", nil)
	in.Add(enum.NotificationInfo, "b", "", nil)

	in.Remove(n.ID)
	in.Remove("unknown") // no-op
	if len(in.All()) != 1 {
		t.Fatalf("len after remove: got %d, want 1", len(in.All()))
	}

	in.ClearAll()
	if len(in.All()) != 0 {
		t.Errorf("len after clear: got %d, want 0", len(in.All()))
	}
}

// --- Stock helpers and the enabled flag ---

func TestStockHelpers_RespectEnabledFlag(t *testing.T) {
	in, _ := newInbox(t)
	in.SetEnabled(false)

	in.NotifyLowStock("Rice", 2, "kg", 7)
	in.NotifyOutOfStock("Eggs", 8)
	if len(in.All()) != 0 {
		t.Fatalf("disabled helpers added %d notifications", len(in.All()))
	}

	// Add itself stays callable while disabled.
	in.Add(enum.NotificationError, "backend unreachable", "", nil)
	if len(in.All()) != 1 {
		t.Errorf("Add while disabled: got %d, want 1", len(in.All()))
	}

	in.SetEnabled(true)
	in.NotifyLowStock("Rice", 2, "kg", 7)
	all := in.All()
	if all[0].Type != enum.NotificationLowStock {
		t.Errorf("type: got %q, want %q", all[0].Type, enum.NotificationLowStock)
	}
	if all[0].Data["ingredientId"] != "7" {
		t.Errorf("data: got %v", all[0].Data)
	}
}

// --- Persistence ---

func TestPersistence_RoundTripWithTimestamps(t *testing.T) {
	storage := localstore.NewMemory()
	in := notify.NewInbox(storage)
	n := in.Add(enum.NotificationLowStock, "Low stock: Rice", "Rice is down to 2 kg", map[string]string{"ingredientId": "7"})
	in.MarkRead(n.ID)
	in.SetEnabled(false)

	reloaded := notify.NewInbox(storage)
	all := reloaded.All()
	if len(all) != 1 {
		t.Fatalf("len: got %d, want 1", len(all))
	}
	got := all[0]
	if got.ID != n.ID || got.Title != n.Title || !got.Read {
		t.Errorf("entry: %+v", got)
	}
	if !got.Timestamp.Equal(n.Timestamp) {
		t.Errorf("timestamp: got %v, want %v", got.Timestamp, n.Timestamp)
	}
	if reloaded.Enabled() {
		t.Error("enabled flag must persist")
	}
}

func TestPersistence_BadTimestampRehydratesToZeroTime(t *testing.T) {
	storage := localstore.NewMemory()
	snap := map[string]any{
		"schema":  1,
		"enabled": true,
		"items": []map[string]any{{
			"id":        "abc",
			"type":      "info",
			"title":     "t",
			"timestamp": "not-a-date",
		}},
	}
	b, _ := json.Marshal(snap)
	storage.Set("notifications", string(b))

	in := notify.NewInbox(storage)
	all := in.All()
	if len(all) != 1 {
		t.Fatalf("len: got %d, want 1", len(all))
	}
	if !all[0].Timestamp.Equal(time.Time{}) {
		t.Errorf("timestamp: got %v, want zero time", all[0].Timestamp)
	}
}

func TestPersistence_CorruptedSnapshotYieldsEmptyInbox(t *testing.T) {
	storage := localstore.NewMemory()
	storage.Set("notifications", "][ definitely not json")

	in := notify.NewInbox(storage)
	if len(in.All()) != 0 {
		t.Errorf("len: got %d, want 0", len(in.All()))
	}
	if !in.Enabled() {
		t.Error("corrupted snapshot must not disable notifications")
	}
}
