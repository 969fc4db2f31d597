package service

import (
	"context"
	"fmt"

	"unitflow/internal/bucket"
	"unitflow/internal/model"
	"unitflow/internal/selection"
	"unitflow/internal/store"
)

// Selector mediates between the selection-mode machine and the record
// list: it decides scope membership at toggle time and materializes the
// selected records for the bulk operations.
type Selector struct {
	machine *selection.Machine
	store   *store.Store
	buckets *bucket.Bucketer
}

func NewSelector(m *selection.Machine, st *store.Store, b *bucket.Bucketer) *Selector {
	return &Selector{machine: m, store: st, buckets: b}
}

// Enter starts selection scoped to a bucket. Any prior selection is
// dropped.
func (s *Selector) Enter(scope string) error {
	if scope != bucket.ScopeToday && scope != bucket.ScopeWeek {
		return fmt.Errorf("unknown selection scope %q", scope)
	}
	s.machine.Enter(scope)
	return nil
}

// Exit returns to idle. Safe to call in any state.
func (s *Selector) Exit() {
	s.machine.Exit()
}

// Toggle applies a checkbox change. A record is in scope when it exists in
// the live list and its timestamp falls inside the active scope's bucket;
// everything else is rejected so the client reverts the checkbox.
func (s *Selector) Toggle(ctx context.Context, id string, checked bool) (accepted bool, count int) {
	snap := s.machine.Snapshot()
	if !snap.Active {
		return s.machine.Toggle(id, checked, false)
	}
	inScope := false
	start := s.buckets.StartOf(snap.Scope)
	for _, l := range s.store.LoadLogs(ctx) {
		if l.ID == id && l.Ts >= start {
			inScope = true
			break
		}
	}
	return s.machine.Toggle(id, checked, inScope)
}

func (s *Selector) Snapshot() selection.Snapshot {
	return s.machine.Snapshot()
}

// SelectedRecords reads the live list and keeps the records whose ids are
// in the selection set, in stored order. Empty while idle.
func (s *Selector) SelectedRecords(ctx context.Context) []model.LogRecord {
	snap := s.machine.Snapshot()
	if !snap.Active || snap.Count() == 0 {
		return nil
	}
	var out []model.LogRecord
	for _, l := range s.store.LoadLogs(ctx) {
		if snap.Selected(l.ID) {
			out = append(out, l)
		}
	}
	return out
}

// Scope returns the active scope, empty while idle.
func (s *Selector) Scope() string {
	return s.machine.Snapshot().Scope
}
