// Package view projects the record list into the structure the frontend
// renders. The projection is pure: records in, view-model out, no storage
// and no UI toolkit.
package view

import (
	"fmt"
	"sort"
	"time"

	"unitflow/internal/bucket"
	"unitflow/internal/model"
	"unitflow/internal/selection"
)

type Row struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	When          string `json:"when"`
	Author        string `json:"author,omitempty"`
	Shift         string `json:"shift,omitempty"`
	Unit          string `json:"unit,omitempty"`
	Qty           string `json:"qty,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Severity      string `json:"severity"`
	SeverityClass string `json:"severity_class"`
	Checked       bool   `json:"checked"`
	BoxDisabled   bool   `json:"box_disabled"`
}

type Bucket struct {
	Scope      string `json:"scope"`
	CountLabel string `json:"count_label"`
	EmptyText  string `json:"empty_text,omitempty"`
	Rows       []Row  `json:"rows"`
}

type ActionBar struct {
	Visible bool   `json:"visible"`
	Label   string `json:"label,omitempty"`
}

type Model struct {
	Today       Bucket    `json:"today"`
	Week        Bucket    `json:"week"`
	SelectMode  bool      `json:"select_mode"`
	SelectScope string    `json:"select_scope,omitempty"`
	ActionBar   ActionBar `json:"action_bar"`
}

// Project builds the view-model for both buckets. Records are shown newest
// first; ties keep their stored order.
func Project(logs []model.LogRecord, b *bucket.Bucketer, sel selection.Snapshot) Model {
	sorted := make([]model.LogRecord, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Ts > sorted[j].Ts })

	today := projectBucket(bucket.ScopeToday, bucket.Filter(sorted, b.StartOfToday()), sel,
		"No entries yet today.")
	week := projectBucket(bucket.ScopeWeek, bucket.Filter(sorted, b.StartOfWeek()), sel,
		"No entries yet this week.")

	bar := ActionBar{}
	if sel.Active && sel.Count() > 0 {
		bar = ActionBar{Visible: true, Label: fmt.Sprintf("%d selected", sel.Count())}
	}

	return Model{
		Today:       today,
		Week:        week,
		SelectMode:  sel.Active,
		SelectScope: sel.Scope,
		ActionBar:   bar,
	}
}

func projectBucket(scope string, logs []model.LogRecord, sel selection.Snapshot, emptyText string) Bucket {
	bkt := Bucket{Scope: scope, CountLabel: countLabel(len(logs)), Rows: []Row{}}
	if len(logs) == 0 {
		bkt.EmptyText = emptyText
		return bkt
	}
	for _, l := range logs {
		bkt.Rows = append(bkt.Rows, projectRow(l, scope, sel))
	}
	return bkt
}

func projectRow(l model.LogRecord, scope string, sel selection.Snapshot) Row {
	typ := l.Type
	if typ == "" {
		typ = "Entry"
	}
	sev := l.Severity
	if sev == "" {
		sev = model.SeverityLow
	}
	return Row{
		ID:            l.ID,
		Type:          typ,
		When:          time.UnixMilli(l.Ts).Format("2006-01-02 15:04"),
		Author:        l.Author,
		Shift:         l.Shift,
		Unit:          l.Unit,
		Qty:           l.Qty,
		Notes:         l.Notes,
		Severity:      sev,
		SeverityClass: severityClass(l.Severity),
		Checked:       sel.Active && sel.Selected(l.ID),
		BoxDisabled:   !sel.Active || sel.Scope != scope,
	}
}

func countLabel(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}

func severityClass(sev string) string {
	switch sev {
	case model.SeverityHigh:
		return "high"
	case model.SeverityMedium:
		return "med"
	default:
		return "low"
	}
}
