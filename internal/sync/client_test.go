package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_BulkCreate(t *testing.T) {
	var gotAuth string
	var gotBody struct {
		Transactions []BulkItem `json:"transactions"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/transactions/bulk", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"created_count": 1,
				"skipped_count": 1,
				"created": [{"id": "srv-1", "local_id": "t1"}],
				"skipped": ["ref-2"]
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", "secret", 5*time.Second)
	result, err := c.BulkCreate(context.Background(), []BulkItem{
		{TransactionDate: "2025-01-16", Description: "CHECKERS", Amount: decimal.NewFromInt(-100), LocalID: "t1", BankReference: "ref-1"},
		{TransactionDate: "2025-01-17", Description: "SPAR", Amount: decimal.NewFromInt(-50), LocalID: "t2", BankReference: "ref-2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	require.Len(t, gotBody.Transactions, 2)
	assert.Equal(t, "ref-1", gotBody.Transactions[0].BankReference)

	assert.Equal(t, 1, result.CreatedCount)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "srv-1", result.Created[0].ID)
	assert.Equal(t, "t1", result.Created[0].LocalID)
	assert.Equal(t, []string{"ref-2"}, result.Skipped)
}

func TestClient_BulkCreate_Empty(t *testing.T) {
	c := NewClient("http://unused", "", time.Second)
	result, err := c.BulkCreate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, &BulkResult{}, result)
}

func TestClient_BulkCreate_TooLarge(t *testing.T) {
	c := NewClient("http://unused", "", time.Second)
	_, err := c.BulkCreate(context.Background(), make([]BulkItem, 501))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 500")
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Unauthenticated."}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.BulkCreate(context.Background(), []BulkItem{{LocalID: "t1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Unauthenticated")
}

func TestClient_ListCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "srv-1", "name": "Groceries", "icon": "shopping_cart", "is_income": false, "sort_order": 1},
				{"id": "srv-2", "name": "Salary", "is_income": true, "is_system": true, "sort_order": 1}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	cats, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Groceries", cats[0].Name)
	assert.True(t, cats[1].IsIncome)
	assert.True(t, cats[1].IsSystem)
}

func TestClient_GetSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/summary", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-01-31", r.URL.Query().Get("end_date"))
		_, _ = w.Write([]byte(`{
			"data": {
				"by_category": [
					{"category_id": "srv-1", "category_name": "Groceries", "total_expenses": "1450.50", "transaction_count": 4}
				],
				"totals": {"total_expenses": "1450.50", "total_income": "25000.00", "transaction_count": 5}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	summary, err := c.GetSummary(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, summary.ByCategory, 1)
	assert.Equal(t, "1450.50", summary.ByCategory[0].TotalExpenses.StringFixed(2))
	assert.Equal(t, "25000.00", summary.Totals.TotalIncome.StringFixed(2))
	assert.Equal(t, 5, summary.Totals.TransactionCount)
}
