package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger-dev/pocketledger/internal/id"
	"github.com/pocketledger-dev/pocketledger/internal/model"
)

const dateLayout = "2006-01-02"

const txnColumns = `local_id, server_id, transaction_date, description, amount, balance_after,
	bank_reference, raw_description, import_source, category_id, is_categorized,
	categorized_by, confidence_score, sync_status, version, last_synced_at`

// Filter narrows a transaction query. Zero-value fields are ignored.
type Filter struct {
	Start       *time.Time
	End         *time.Time
	CategoryID  string
	Categorized *bool
	Query       string
	SyncStatus  model.SyncStatus
}

// AddTransaction persists one transaction. A missing local identifier is
// generated; the record always starts pending at version 1.
func (s *Store) AddTransaction(txn model.Transaction) (model.Transaction, error) {
	txns, err := s.AddTransactionsBulk([]model.Transaction{txn})
	if err != nil {
		return model.Transaction{}, err
	}
	return txns[0], nil
}

// AddTransactionsBulk persists transactions in one database transaction.
// Records without a local identifier get a freshly generated one.
func (s *Store) AddTransactionsBulk(txns []model.Transaction) ([]model.Transaction, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning bulk insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (` + txnColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("preparing bulk insert: %w", err)
	}
	defer stmt.Close()

	inserted := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if txn.LocalID == "" {
			txn.LocalID = id.NewLocal()
		}
		txn.SyncStatus = model.SyncPending
		txn.Version = 1
		txn.IsCategorized = txn.CategoryID != ""
		txn.ServerID = ""
		txn.LastSyncedAt = nil
		if txn.ImportSource == "" {
			txn.ImportSource = model.SourceManual
		}

		_, err := stmt.Exec(
			txn.LocalID,
			txn.ServerID,
			txn.TransactionDate.Format(dateLayout),
			txn.Description,
			txn.Amount.String(),
			nullDecimal(txn.BalanceAfter),
			txn.BankReference,
			txn.RawDescription,
			string(txn.ImportSource),
			txn.CategoryID,
			txn.IsCategorized,
			string(txn.CategorizedBy),
			nullDecimal(txn.ConfidenceScore),
			string(txn.SyncStatus),
			txn.Version,
			nullTime(txn.LastSyncedAt),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting transaction %s: %w", txn.LocalID, err)
		}
		inserted = append(inserted, txn)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing bulk insert: %w", err)
	}
	return inserted, nil
}

// GetTransaction returns a transaction by local identifier.
func (s *Store) GetTransaction(localID string) (model.Transaction, error) {
	row := s.db.QueryRow(`SELECT `+txnColumns+` FROM transactions WHERE local_id = ?`, localID)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, ErrNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("querying transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions returns all transactions, newest first.
func (s *Store) ListTransactions() ([]model.Transaction, error) {
	return s.FindTransactions(Filter{})
}

// FindTransactions returns transactions matching the filter, newest first.
func (s *Store) FindTransactions(f Filter) ([]model.Transaction, error) {
	var (
		where []string
		args  []any
	)
	if f.Start != nil {
		where = append(where, "transaction_date >= ?")
		args = append(args, f.Start.Format(dateLayout))
	}
	if f.End != nil {
		where = append(where, "transaction_date <= ?")
		args = append(args, f.End.Format(dateLayout))
	}
	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.Categorized != nil {
		where = append(where, "is_categorized = ?")
		args = append(args, *f.Categorized)
	}
	if f.Query != "" {
		where = append(where, "(description LIKE ? COLLATE NOCASE OR raw_description LIKE ? COLLATE NOCASE)")
		pattern := "%" + f.Query + "%"
		args = append(args, pattern, pattern)
	}
	if f.SyncStatus != "" {
		where = append(where, "sync_status = ?")
		args = append(args, string(f.SyncStatus))
	}

	query := `SELECT ` + txnColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY transaction_date DESC, local_id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// PendingTransactions returns all transactions awaiting sync, in stable
// date order.
func (s *Store) PendingTransactions() ([]model.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT ` + txnColumns + ` FROM transactions
		WHERE sync_status = 'pending'
		ORDER BY transaction_date, local_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pending transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

// SetTransactionCategory assigns (or clears, with an empty categoryID) a
// transaction's category. The is-categorized flag always tracks the
// category, the record reopens to pending, and the version is bumped.
func (s *Store) SetTransactionCategory(localID, categoryID string, by model.CategorizationMethod, confidence *decimal.Decimal) error {
	if categoryID == "" {
		by = ""
		confidence = nil
	}
	res, err := s.db.Exec(`
		UPDATE transactions
		SET category_id = ?, is_categorized = ?, categorized_by = ?, confidence_score = ?,
		    sync_status = 'pending', version = version + 1
		WHERE local_id = ?
	`, categoryID, categoryID != "", string(by), nullDecimal(confidence), localID)
	if err != nil {
		return fmt.Errorf("updating transaction category: %w", err)
	}
	return checkFound(res)
}

// MarkSynced stamps a successfully pushed transaction with its server
// identifier. This is a sync bookkeeping write, not a local mutation, so
// the version is not bumped.
func (s *Store) MarkSynced(localID, serverID string, at time.Time) error {
	res, err := s.db.Exec(`
		UPDATE transactions
		SET server_id = ?, sync_status = 'synced', last_synced_at = ?
		WHERE local_id = ?
	`, serverID, at.UTC().Format(time.RFC3339), localID)
	if err != nil {
		return fmt.Errorf("marking transaction synced: %w", err)
	}
	return checkFound(res)
}

// DeleteTransaction removes a transaction immediately (no soft delete).
func (s *Store) DeleteTransaction(localID string) error {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE local_id = ?`, localID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return checkFound(res)
}

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTransaction(row interface{ Scan(dest ...any) error }) (model.Transaction, error) {
	var (
		txn        model.Transaction
		dateStr    string
		amountStr  string
		balance    sql.NullString
		source     string
		by         string
		confidence sql.NullString
		status     string
		lastSynced sql.NullString
	)
	err := row.Scan(
		&txn.LocalID, &txn.ServerID, &dateStr, &txn.Description, &amountStr, &balance,
		&txn.BankReference, &txn.RawDescription, &source, &txn.CategoryID, &txn.IsCategorized,
		&by, &confidence, &status, &txn.Version, &lastSynced,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	txn.TransactionDate, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing transaction date %q: %w", dateStr, err)
	}
	txn.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", amountStr, err)
	}
	if txn.BalanceAfter, err = parseNullDecimal(balance); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing balance: %w", err)
	}
	if txn.ConfidenceScore, err = parseNullDecimal(confidence); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing confidence: %w", err)
	}
	if lastSynced.Valid {
		t, err := time.Parse(time.RFC3339, lastSynced.String)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing last synced time: %w", err)
		}
		txn.LastSyncedAt = &t
	}
	txn.ImportSource = model.ImportSource(source)
	txn.CategorizedBy = model.CategorizationMethod(by)
	txn.SyncStatus = model.SyncStatus(status)
	return txn, nil
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullDecimal(v sql.NullString) (*decimal.Decimal, error) {
	if !v.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
