package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketledger-dev/pocketledger/internal/id"
	"github.com/pocketledger-dev/pocketledger/internal/model"
)

const categoryColumns = `id, name, icon, color, parent_id, is_income, is_system, sort_order, sync_status`

// SeedDefaultCategories inserts the built-in system categories if the
// store has none yet. Safe to call on every open.
func (s *Store) SeedDefaultCategories() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, c := range DefaultCategories() {
		if _, err := s.AddCategory(c); err != nil {
			return fmt.Errorf("seeding category %s: %w", c.Name, err)
		}
	}
	return nil
}

// AddCategory persists a category, generating an identifier if missing.
func (s *Store) AddCategory(c model.Category) (model.Category, error) {
	if c.ID == "" {
		c.ID = id.NewLocal()
	}
	if c.SyncStatus == "" {
		c.SyncStatus = model.SyncPending
	}
	_, err := s.db.Exec(`
		INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Icon, c.Color, c.ParentID, c.IsIncome, c.IsSystem, c.SortOrder, string(c.SyncStatus))
	if err != nil {
		return model.Category{}, fmt.Errorf("inserting category: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories, expenses before income, in sort
// order.
func (s *Store) ListCategories() ([]model.Category, error) {
	rows, err := s.db.Query(`
		SELECT ` + categoryColumns + ` FROM categories
		ORDER BY is_income, sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// GetCategoryByName returns the category with the given name.
func (s *Store) GetCategoryByName(name string) (model.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE name = ? COLLATE NOCASE`, name)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, ErrNotFound
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("querying category: %w", err)
	}
	return c, nil
}

// ReplaceCategories swaps the full category set, e.g. after pulling the
// authoritative list from the remote system.
func (s *Store) ReplaceCategories(cats []model.Category) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning category replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM categories`); err != nil {
		return fmt.Errorf("clearing categories: %w", err)
	}
	for _, c := range cats {
		if c.ID == "" {
			c.ID = id.NewLocal()
		}
		if c.SyncStatus == "" {
			c.SyncStatus = model.SyncSynced
		}
		_, err := tx.Exec(`
			INSERT INTO categories (`+categoryColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Name, c.Icon, c.Color, c.ParentID, c.IsIncome, c.IsSystem, c.SortOrder, string(c.SyncStatus))
		if err != nil {
			return fmt.Errorf("inserting category %s: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(categoryID string) error {
	res, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return checkFound(res)
}

func scanCategory(row interface{ Scan(dest ...any) error }) (model.Category, error) {
	var (
		c      model.Category
		status string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.ParentID, &c.IsIncome, &c.IsSystem, &c.SortOrder, &status)
	if err != nil {
		return model.Category{}, err
	}
	c.SyncStatus = model.SyncStatus(status)
	return c, nil
}
