package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// BulkItem is one transaction in a bulk-create request.
type BulkItem struct {
	TransactionDate string           `json:"transaction_date"`
	Description     string           `json:"description"`
	Amount          decimal.Decimal  `json:"amount"`
	BalanceAfter    *decimal.Decimal `json:"balance_after,omitempty"`
	BankReference   string           `json:"bank_reference,omitempty"`
	RawDescription  string           `json:"raw_description,omitempty"`
	LocalID         string           `json:"local_id,omitempty"`
}

// NewBulkItem converts a stored transaction to its wire form.
func NewBulkItem(txn model.Transaction) BulkItem {
	raw := txn.RawDescription
	if raw == "" {
		raw = txn.Description
	}
	return BulkItem{
		TransactionDate: txn.TransactionDate.Format("2006-01-02"),
		Description:     txn.Description,
		Amount:          txn.Amount,
		BalanceAfter:    txn.BalanceAfter,
		BankReference:   txn.BankReference,
		RawDescription:  raw,
		LocalID:         txn.LocalID,
	}
}

// CreatedItem maps a server-assigned identifier back to the originating
// local identifier.
type CreatedItem struct {
	ID      string `json:"id"`
	LocalID string `json:"local_id"`
}

// BulkResult is the remote's response to a bulk create. Partial success is
// the normal case: duplicates (by user + bank reference) are reported as
// skipped, not errors.
type BulkResult struct {
	CreatedCount int           `json:"created_count"`
	SkippedCount int           `json:"skipped_count"`
	Created      []CreatedItem `json:"created"`
	Skipped      []string      `json:"skipped"` // bank references
}

// CategorySummary aggregates one category over a date range.
type CategorySummary struct {
	CategoryID       string          `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TransactionCount int             `json:"transaction_count"`
}

// Summary is the remote's per-category and overall aggregate view.
type Summary struct {
	ByCategory []CategorySummary `json:"by_category"`
	Totals     struct {
		TotalExpenses    decimal.Decimal `json:"total_expenses"`
		TotalIncome      decimal.Decimal `json:"total_income"`
		TransactionCount int             `json:"transaction_count"`
	} `json:"totals"`
}

// Client talks to the remote system of record. The HTTP client enforces
// the request timeout; a timeout surfaces as a batch-level failure.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a remote API client.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// BulkCreate pushes up to 500 transactions in one request.
func (c *Client) BulkCreate(ctx context.Context, items []BulkItem) (*BulkResult, error) {
	if len(items) == 0 {
		return &BulkResult{}, nil
	}
	if len(items) > 500 {
		return nil, fmt.Errorf("bulk create accepts at most 500 items, got %d", len(items))
	}

	body := map[string]any{"transactions": items}
	var result BulkResult
	if err := c.do(ctx, http.MethodPost, "/transactions/bulk", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type categoryPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	ParentID  string `json:"parent_id"`
	IsIncome  bool   `json:"is_income"`
	IsSystem  bool   `json:"is_system"`
	SortOrder int    `json:"sort_order"`
}

// ListCategories fetches the authoritative category list, used to resolve
// category names to identifiers.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var payload []categoryPayload
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &payload); err != nil {
		return nil, err
	}

	cats := make([]model.Category, len(payload))
	for i, p := range payload {
		cats[i] = model.Category{
			ID:         p.ID,
			Name:       p.Name,
			Icon:       p.Icon,
			Color:      p.Color,
			ParentID:   p.ParentID,
			IsIncome:   p.IsIncome,
			IsSystem:   p.IsSystem,
			SortOrder:  p.SortOrder,
			SyncStatus: model.SyncSynced,
		}
	}
	return cats, nil
}

// GetSummary fetches per-category and overall aggregates for a date range.
func (c *Client) GetSummary(ctx context.Context, start, end time.Time) (*Summary, error) {
	query := url.Values{
		"start_date": {start.Format("2006-01-02")},
		"end_date":   {end.Format("2006-01-02")},
	}
	var summary Summary
	if err := c.do(ctx, http.MethodGet, "/transactions/summary?"+query.Encode(), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// envelope is the remote's standard response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: remote returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
