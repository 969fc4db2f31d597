package model

import (
	"encoding/json"
	"fmt"
)

// Qty is a free-form quantity that may arrive as a JSON string or a JSON
// number; either way the text is kept exactly as sent, never coerced.
type Qty string

func (q *Qty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = Qty(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("qty must be a string or number")
	}
	*q = Qty(n.String())
	return nil
}

// NewEntryRequest is the form payload for creating a record.
type NewEntryRequest struct {
	Author   string `json:"author"`
	Shift    string `json:"shift"`
	Unit     string `json:"unit"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Qty      Qty    `json:"qty"`
	Notes    string `json:"notes"`
}

type NewEntryResponse struct {
	Record  LogRecord `json:"record"`
	PHIWarn bool      `json:"phi_warn"`
}

type SelectionEnterRequest struct {
	Scope string `json:"scope" binding:"required"`
}

type SelectionToggleRequest struct {
	ID      string `json:"id" binding:"required"`
	Checked bool   `json:"checked"`
}

// SelectionToggleResponse tells the client whether the toggle took effect.
// A rejected toggle means the checkbox must revert to unchecked.
type SelectionToggleResponse struct {
	Accepted bool `json:"accepted"`
	Count    int  `json:"count"`
}

type PurgeRequest struct {
	Confirm bool `json:"confirm"`
}

type AuthorResponse struct {
	Author string `json:"author"`
}
