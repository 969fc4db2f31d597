// Package export serializes record lists for download and printing. All
// exports order records oldest first, the reverse of the on-screen list.
package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"unitflow/internal/model"
)

var csvHeader = []string{"timestamp", "author", "shift", "unit", "type", "severity", "qty", "notes"}

// CSV renders the records as CSV text with a fixed header row. Every field
// is quoted, internal quotes are doubled, and note newlines collapse to
// spaces so one record stays one line.
func CSV(logs []model.LogRecord) string {
	logs = sortAscending(logs)

	var sb strings.Builder
	writeRow(&sb, csvHeader)
	for _, l := range logs {
		sb.WriteByte('\n')
		writeRow(&sb, []string{
			Timestamp(l.Ts),
			l.Author,
			l.Shift,
			l.Unit,
			l.Type,
			l.Severity,
			l.Qty,
			flattenNotes(l.Notes),
		})
	}
	return sb.String()
}

// Filename builds `<prefix>_<YYYY-MM-DD>.csv` from the given date.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}

// Timestamp renders a record timestamp with its local timezone offset.
func Timestamp(ts int64) string {
	return time.UnixMilli(ts).Format("2006-01-02T15:04:05-07:00")
}

func writeRow(sb *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
}

func flattenNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "\r\n", " ")
	notes = strings.ReplaceAll(notes, "\n", " ")
	return strings.TrimSpace(notes)
}

func sortAscending(logs []model.LogRecord) []model.LogRecord {
	out := make([]model.LogRecord, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ts < out[j].Ts })
	return out
}
