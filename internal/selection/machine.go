// Package selection holds the select-mode state: whether selection is
// active, which bucket it is scoped to, and which record ids are picked.
// The state lives only in memory; it never survives a restart.
package selection

import "sync"

// Snapshot is a point-in-time copy of the machine state, safe to read
// without holding the machine's lock.
type Snapshot struct {
	Active bool
	Scope  string
	IDs    map[string]bool
}

func (s Snapshot) Count() int { return len(s.IDs) }

func (s Snapshot) Selected(id string) bool { return s.IDs[id] }

// Machine is the selection-mode state machine. There is exactly one per
// process, owned by the selection controller; the mutex is only there
// because it sits behind HTTP handlers.
type Machine struct {
	mu     sync.Mutex
	active bool
	scope  string
	ids    map[string]bool
}

func NewMachine() *Machine {
	return &Machine{ids: map[string]bool{}}
}

// Enter activates selection scoped to the given bucket, dropping any prior
// selection.
func (m *Machine) Enter(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
	m.scope = scope
	m.ids = map[string]bool{}
}

// Exit returns to idle and clears the selection. Called on cancel, on any
// tab switch, and after a successful purge.
func (m *Machine) Exit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = false
	m.scope = ""
	m.ids = map[string]bool{}
}

// Toggle adds or removes an id. The caller reports whether the record sits
// inside the active scope's bucket; toggles while idle or for out-of-scope
// records are rejected and leave the set untouched. The returned count is
// the selection size after the toggle.
func (m *Machine) Toggle(id string, checked, inScope bool) (accepted bool, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.active || !inScope {
		return false, len(m.ids)
	}
	if checked {
		m.ids[id] = true
	} else {
		delete(m.ids, id)
	}
	return true, len(m.ids)
}

func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make(map[string]bool, len(m.ids))
	for id := range m.ids {
		ids[id] = true
	}
	return Snapshot{Active: m.active, Scope: m.scope, IDs: ids}
}
