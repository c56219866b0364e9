package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncStatus tracks whether a local record has been pushed to the remote
// system of record.
type SyncStatus string

const (
	SyncPending  SyncStatus = "pending"
	SyncSynced   SyncStatus = "synced"
	SyncConflict SyncStatus = "conflict"
)

// ImportSource records how a transaction entered the local store.
type ImportSource string

const (
	SourceManual ImportSource = "manual"
	SourceCSV    ImportSource = "csv"
	SourceAPI    ImportSource = "api"
	SourceSync   ImportSource = "sync"
)

// CategorizationMethod records what assigned a transaction's category.
type CategorizationMethod string

const (
	CategorizedManual CategorizationMethod = "manual"
	CategorizedRule   CategorizationMethod = "rule"
	CategorizedAuto   CategorizationMethod = "auto"
	CategorizedSystem CategorizationMethod = "system"
)

// Confidence is a categorization confidence tier. Empty means no match.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Score converts a confidence tier to a 0-1 score for persistence.
func (c Confidence) Score() *decimal.Decimal {
	var s decimal.Decimal
	switch c {
	case ConfidenceHigh:
		s = decimal.NewFromFloat(0.9)
	case ConfidenceMedium:
		s = decimal.NewFromFloat(0.6)
	case ConfidenceLow:
		s = decimal.NewFromFloat(0.3)
	default:
		return nil
	}
	return &s
}

// ParsedTransaction is the output of a statement parser. It carries no
// identity until persisted.
type ParsedTransaction struct {
	TransactionDate time.Time
	Description     string
	Amount          decimal.Decimal // negative = expense, positive = income
	BalanceAfter    *decimal.Decimal
	BankReference   string // seeds the dedup key; empty if none found
	RawDescription  string // unmodified source text
	ImportSource    ImportSource
}

// Transaction is a persisted ParsedTransaction plus identity, categorization
// state and sync state.
type Transaction struct {
	ParsedTransaction

	LocalID  string // client-generated, stable, never reused
	ServerID string // assigned on first successful sync

	CategoryID      string // empty = uncategorized
	IsCategorized   bool   // invariant: IsCategorized == (CategoryID != "")
	CategorizedBy   CategorizationMethod
	ConfidenceScore *decimal.Decimal // 0-1, nil when not auto-assigned

	SyncStatus   SyncStatus
	Version      int // starts at 1, incremented on every local mutation
	LastSyncedAt *time.Time
}
