// Package notify is the bounded notification inbox: newest-first typed
// alerts with read state, capped at 50 entries, persisted across restarts.
package notify

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mesa-pos/terminal/internal/localstore"
)

const (
	snapshotKey = "notifications"

	// MaxEntries is the inbox cap; inserting beyond it evicts the oldest.
	MaxEntries = 50
)

// Notification is one inbox entry. Data carries optional navigation context,
// e.g. the id of the ingredient a low-stock alert refers to.
type Notification struct {
	ID          string
	Type        string
	Title       string
	Description string
	Timestamp   time.Time
	Read        bool
	Data        map[string]string
}

// Inbox is the notification state container. Safe for concurrent use; the
// websocket feed appends from its own goroutine.
type Inbox struct {
	storage localstore.Store

	mu      sync.Mutex
	items   []Notification
	enabled bool
	now     func() time.Time
}

// NewInbox creates an Inbox backed by the snapshot store and restores any
// persisted entries. A structurally invalid snapshot yields an empty inbox.
func NewInbox(storage localstore.Store) *Inbox {
	in := &Inbox{storage: storage, enabled: true, now: time.Now}
	in.restore()
	return in
}

// Add inserts an unread notification at the head with a fresh id and the
// current timestamp, trimming the tail beyond MaxEntries. Add ignores the
// enabled flag; only the stock helpers honor it.
func (in *Inbox) Add(typ, title, description string, data map[string]string) Notification {
	n := Notification{
		ID:          uuid.NewString(),
		Type:        typ,
		Title:       title,
		Description: description,
		Timestamp:   in.now(),
		Data:        data,
	}

	in.mu.Lock()
	in.items = append([]Notification{n}, in.items...)
	if len(in.items) > MaxEntries {
		in.items = in.items[:MaxEntries]
	}
	in.persistLocked()
	in.mu.Unlock()
	return n
}

// MarkRead flags the notification as read. Unknown ids are a no-op.
func (in *Inbox) MarkRead(id string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := range in.items {
		if in.items[i].ID == id {
			in.items[i].Read = true
			in.persistLocked()
			return
		}
	}
}

// MarkAllRead flags every notification as read.
func (in *Inbox) MarkAllRead() {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := range in.items {
		in.items[i].Read = true
	}
	in.persistLocked()
}

// Remove deletes the notification. Unknown ids are a no-op.
func (in *Inbox) Remove(id string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i := range in.items {
		if in.items[i].ID == id {
			in.items = append(in.items[:i], in.items[i+1:]...)
			in.persistLocked()
			return
		}
	}
}

// ClearAll empties the inbox.
func (in *Inbox) ClearAll() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.items = nil
	in.persistLocked()
}

// All returns the notifications newest-first.
func (in *Inbox) All() []Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]Notification, len(in.items))
	copy(out, in.items)
	return out
}

// Unread returns the unread notifications newest-first.
func (in *Inbox) Unread() []Notification {
	in.mu.Lock()
	defer in.mu.Unlock()
	var out []Notification
	for _, n := range in.items {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount returns the number of unread notifications.
func (in *Inbox) UnreadCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	count := 0
	for _, n := range in.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// SetEnabled toggles the user-facing notifications switch. The flag persists
// with the inbox.
func (in *Inbox) SetEnabled(enabled bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.enabled = enabled
	in.persistLocked()
}

func (in *Inbox) Enabled() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.enabled
}

func (in *Inbox) persistLocked() {
	b, err := marshalSnapshot(in.items, in.enabled)
	if err != nil {
		log.Printf("ERROR: snapshot inbox: %v", err)
		return
	}
	if err := in.storage.Set(snapshotKey, string(b)); err != nil {
		log.Printf("ERROR: persist inbox: %v", err)
	}
}

func (in *Inbox) restore() {
	raw, ok := in.storage.Get(snapshotKey)
	if !ok {
		return
	}
	items, enabled, err := unmarshalSnapshot([]byte(raw))
	if err != nil {
		log.Printf("WARN: discarding inbox snapshot: %v", err)
		return
	}
	in.items = items
	in.enabled = enabled
}
