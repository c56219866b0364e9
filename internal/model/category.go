package model

import "time"

// Category is a spending or income category. System categories are seeded
// into the local store; user categories are created on demand.
type Category struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	ParentID  string // empty = top-level; depth is not enforced
	IsIncome  bool
	IsSystem  bool
	SortOrder int

	SyncStatus SyncStatus
}

// MatchType selects how a rule pattern is compared against a description.
type MatchType string

const (
	MatchContains   MatchType = "contains"
	MatchStartsWith MatchType = "starts_with"
	MatchExact      MatchType = "exact"
)

// CategoryRule is a user-defined categorization rule, created when a user
// manually categorizes a transaction and opts to apply it to similar ones.
type CategoryRule struct {
	ID            string
	Pattern       string
	CategoryID    string
	CategoryName  string // denormalized for display without a join
	MatchType     MatchType
	IsUserDefined bool
	CreatedAt     time.Time
	HitCount      int // incremented every time the rule fires

	SyncStatus SyncStatus
}
