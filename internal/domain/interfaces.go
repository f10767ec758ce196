package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by store mutators given an id that matches no
// record. The collection is left untouched in that case.
var ErrNotFound = errors.New("not found")

// Snapshot is the exact shape of state that survives a restart. Everything
// outside it resets to fixture values on reload.
type Snapshot struct {
	Authenticated bool
	User          *User
	Theme         Theme
	Automations   []Automation
	Notifications []Notification
}

// SessionRepository persists the Snapshot allow-list. Save replaces the
// whole snapshot and is a synchronous side effect of store mutations;
// Load returns nil when nothing has been persisted yet.
type SessionRepository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
