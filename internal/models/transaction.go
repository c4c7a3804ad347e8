package models

import (
	"fmt"
	"strings"
	"time"
)

// TxType is the direction of a transaction. Credit increases the balance,
// debit decreases it.
type TxType string

const (
	Credit TxType = "credit"
	Debit  TxType = "debit"
)

// Frequency is the user-assigned recurrence classification.
type Frequency string

const (
	Regular   Frequency = "regular"
	Irregular Frequency = "irregular"
)

// Transaction represents a single transaction, either a candidate extracted
// from a statement or a record owned by the transaction store.
type Transaction struct {
	ID          string    `json:"id"`
	Date        Date      `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"` // always >= 0, direction is Type
	Type        TxType    `json:"type"`
	Frequency   Frequency `json:"frequency"`
	Category    string    `json:"category,omitempty"`
}

// IsCredit reports whether the transaction is an inflow.
func (t Transaction) IsCredit() bool {
	return t.Type == Credit
}

// ParseTxType accepts "credit"/"debit" in any case.
func ParseTxType(s string) (TxType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "credit", "cr":
		return Credit, nil
	case "debit", "dr":
		return Debit, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// ParseFrequency accepts "regular"/"irregular" in any case.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "recurring":
		return Regular, nil
	case "irregular", "one-time":
		return Irregular, nil
	default:
		return "", fmt.Errorf("unknown frequency %q", s)
	}
}

// Patch carries the fields of an explicit edit. Nil fields are left as-is.
type Patch struct {
	Date        *Date      `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Type        *TxType    `json:"type,omitempty"`
	Frequency   *Frequency `json:"frequency,omitempty"`
}

// Validate rejects edits that would break the transaction invariants.
func (p Patch) Validate() error {
	if p.Amount != nil && *p.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %v", *p.Amount)
	}
	if p.Type != nil && *p.Type != Credit && *p.Type != Debit {
		return fmt.Errorf("unknown transaction type %q", *p.Type)
	}
	if p.Frequency != nil && *p.Frequency != Regular && *p.Frequency != Irregular {
		return fmt.Errorf("unknown frequency %q", *p.Frequency)
	}
	return nil
}

// Apply returns a copy of t with the patch applied.
func (p Patch) Apply(t Transaction) Transaction {
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Frequency != nil {
		t.Frequency = *p.Frequency
	}
	return t
}

// SourceKind selects how uploaded content is turned into candidates.
type SourceKind string

const (
	// SourceStatement is raw text extracted from a statement PDF.
	SourceStatement SourceKind = "statement"
	// SourceTable is delimited tabular content (CSV export of a statement).
	SourceTable SourceKind = "table"
)

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // "date-prefix", "year", "amount", "description", "skipped", "header"
	Note    string `json:"note,omitempty"`
}

// StatementInfo holds the outcome of one extraction.
type StatementInfo struct {
	Source       SourceKind    `json:"source"`
	Bank         string        `json:"bank,omitempty"`
	Transactions []Transaction `json:"transactions"`
	DebugLines   []DebugLine   `json:"debugLines,omitempty"`
	// Placeholder is set when nothing was recognized and Transactions holds
	// the single explanatory record.
	Placeholder bool `json:"placeholder"`
}

// Today returns the UTC calendar date of now.
func Today(now time.Time) Date {
	return DateOf(now.UTC())
}
