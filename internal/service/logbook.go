package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"unitflow/internal/bucket"
	"unitflow/internal/model"
	"unitflow/internal/phi"
	"unitflow/internal/selection"
	"unitflow/internal/store"
	"unitflow/internal/view"

	"github.com/google/uuid"
)

// Logbook owns the record list lifecycle: appending form submissions,
// projecting the view, purging. It is the only writer of the store.
type Logbook struct {
	store   *store.Store
	buckets *bucket.Bucketer
	now     func() time.Time
}

func NewLogbook(st *store.Store, b *bucket.Bucketer) *Logbook {
	return &Logbook{store: st, buckets: b, now: time.Now}
}

// Append applies the form-submission rules: trim, defaults, fresh id and
// timestamp, author carry-over, PHI check on notes and unit, then persists
// the grown list. Qty is kept exactly as entered. The returned bool is the
// PHI warning flag.
func (s *Logbook) Append(ctx context.Context, req model.NewEntryRequest) (model.LogRecord, bool, error) {
	author := strings.TrimSpace(req.Author)
	if author != "" {
		if err := s.store.SaveAuthor(ctx, author); err != nil {
			return model.LogRecord{}, false, fmt.Errorf("save author: %w", err)
		}
	} else {
		author = s.store.LoadAuthor(ctx)
	}

	typ := strings.TrimSpace(req.Type)
	if typ == "" {
		typ = model.TypeReplenishment
	}
	sev := strings.TrimSpace(req.Severity)
	if sev == "" {
		sev = model.SeverityLow
	}

	rec := model.LogRecord{
		ID:       newID(s.now),
		Ts:       s.now().UnixMilli(),
		Author:   author,
		Shift:    strings.TrimSpace(req.Shift),
		Unit:     strings.TrimSpace(req.Unit),
		Type:     typ,
		Severity: sev,
		Qty:      string(req.Qty),
		Notes:    strings.TrimSpace(req.Notes),
	}

	warn := phi.Likely(rec.Notes) || phi.Likely(rec.Unit)

	logs := s.store.LoadLogs(ctx)
	logs = append(logs, rec)
	if err := s.store.SaveLogs(ctx, logs); err != nil {
		return model.LogRecord{}, false, fmt.Errorf("persist entry: %w", err)
	}
	return rec, warn, nil
}

// Records returns the full stored list in insertion order.
func (s *Logbook) Records(ctx context.Context) []model.LogRecord {
	return s.store.LoadLogs(ctx)
}

// BucketRecords returns the stored records inside the given scope's
// bucket, in insertion order, against fresh boundaries.
func (s *Logbook) BucketRecords(ctx context.Context, scope string) []model.LogRecord {
	return bucket.Filter(s.store.LoadLogs(ctx), s.buckets.StartOf(scope))
}

func (s *Logbook) Author(ctx context.Context) string {
	return s.store.LoadAuthor(ctx)
}

// View projects the current list against fresh bucket boundaries and the
// given selection state.
func (s *Logbook) View(ctx context.Context, sel selection.Snapshot) view.Model {
	return view.Project(s.store.LoadLogs(ctx), s.buckets, sel)
}

// Purge removes every stored record. The caller is responsible for having
// confirmed the action with the user first.
func (s *Logbook) Purge(ctx context.Context) error {
	if err := s.store.PurgeLogs(ctx); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	return nil
}

// newID prefers a random UUID; if randomness is unavailable it falls back
// to the epoch-millis string, matching the original id scheme.
func newID(now func() time.Time) string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(now().UnixMilli(), 10)
	}
	return id.String()
}
