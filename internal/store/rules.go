package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pocketledger-dev/pocketledger/internal/id"
	"github.com/pocketledger-dev/pocketledger/internal/model"
)

const ruleColumns = `id, pattern, category_id, category_name, match_type, is_user_defined,
	created_at, hit_count, sync_status`

// AddRule persists a categorization rule. Rules start with a zero hit
// count and are mutated only by hit-count increments.
func (s *Store) AddRule(r model.CategoryRule) (model.CategoryRule, error) {
	if r.ID == "" {
		r.ID = id.NewLocal()
	}
	if r.MatchType == "" {
		r.MatchType = model.MatchContains
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.HitCount = 0
	r.SyncStatus = model.SyncPending

	_, err := s.db.Exec(`
		INSERT INTO category_rules (`+ruleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Pattern, r.CategoryID, r.CategoryName, string(r.MatchType), r.IsUserDefined,
		r.CreatedAt.Format(time.RFC3339), r.HitCount, string(r.SyncStatus))
	if err != nil {
		return model.CategoryRule{}, fmt.Errorf("inserting rule: %w", err)
	}
	return r, nil
}

// ListRules returns all rules in insertion order, which is also their
// evaluation order.
func (s *Store) ListRules() ([]model.CategoryRule, error) {
	rows, err := s.db.Query(`SELECT ` + ruleColumns + ` FROM category_rules ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying rules: %w", err)
	}
	defer rows.Close()

	var rules []model.CategoryRule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// FindRuleByPattern returns the rule with the given pattern, if any.
func (s *Store) FindRuleByPattern(pattern string) (model.CategoryRule, error) {
	row := s.db.QueryRow(`SELECT `+ruleColumns+` FROM category_rules WHERE pattern = ? COLLATE NOCASE`, pattern)
	r, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CategoryRule{}, ErrNotFound
	}
	if err != nil {
		return model.CategoryRule{}, fmt.Errorf("querying rule: %w", err)
	}
	return r, nil
}

// IncrementRuleHit bumps a rule's hit count after it fires.
func (s *Store) IncrementRuleHit(ruleID string) error {
	res, err := s.db.Exec(`UPDATE category_rules SET hit_count = hit_count + 1 WHERE id = ?`, ruleID)
	if err != nil {
		return fmt.Errorf("incrementing rule hits: %w", err)
	}
	return checkFound(res)
}

// DeleteRule removes a rule. Rules are only deleted explicitly by the
// user.
func (s *Store) DeleteRule(ruleID string) error {
	res, err := s.db.Exec(`DELETE FROM category_rules WHERE id = ?`, ruleID)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}
	return checkFound(res)
}

func scanRule(row interface{ Scan(dest ...any) error }) (model.CategoryRule, error) {
	var (
		r         model.CategoryRule
		matchType string
		createdAt string
		status    string
	)
	err := row.Scan(&r.ID, &r.Pattern, &r.CategoryID, &r.CategoryName, &matchType,
		&r.IsUserDefined, &createdAt, &r.HitCount, &status)
	if err != nil {
		return model.CategoryRule{}, err
	}
	r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return model.CategoryRule{}, fmt.Errorf("parsing rule created time: %w", err)
	}
	r.MatchType = model.MatchType(matchType)
	r.SyncStatus = model.SyncStatus(status)
	return r, nil
}
