package model

// Entry types and severities accepted by the form. Anything else is kept
// verbatim but the UI only offers these.
const (
	TypeReplenishment = "Replenishment"
	TypeIncident      = "Incident"
	TypeHandoff       = "Handoff"
	TypeMaintenance   = "Maintenance"

	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// LogRecord is one submitted shift-log entry. Records are immutable once
// created; the only removal path is the confirm-gated purge of the whole
// list. JSON tags match the persisted wire shape.
type LogRecord struct {
	ID       string `json:"id"`
	Ts       int64  `json:"ts"`
	Author   string `json:"author,omitempty"`
	Shift    string `json:"shift,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Qty      string `json:"qty,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// KVEntry is one row of the device-local key-value table backing the store.
type KVEntry struct {
	Key   string `gorm:"primaryKey;column:k"`
	Value string `gorm:"column:v"`
}

func (KVEntry) TableName() string { return "kv_entries" }
