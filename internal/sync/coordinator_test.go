package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

type fakeLocal struct {
	pending    []model.Transaction
	synced     map[string]string // local id -> server id
	syncing    bool
	lastSync   *time.Time
	markFailAt int // fail the nth MarkSynced call (1-based), 0 = never
	markCalls  int
}

func newFakeLocal(pending ...model.Transaction) *fakeLocal {
	return &fakeLocal{pending: pending, synced: make(map[string]string)}
}

func (f *fakeLocal) BeginSync() error {
	if f.syncing {
		return errors.New("sync already in flight")
	}
	f.syncing = true
	return nil
}

func (f *fakeLocal) EndSync() { f.syncing = false }

func (f *fakeLocal) PendingTransactions() ([]model.Transaction, error) {
	return f.pending, nil
}

func (f *fakeLocal) MarkSynced(localID, serverID string, at time.Time) error {
	f.markCalls++
	if f.markFailAt > 0 && f.markCalls >= f.markFailAt {
		return errors.New("database is locked")
	}
	f.synced[localID] = serverID
	return nil
}

func (f *fakeLocal) SetLastSyncTime(t time.Time) error {
	f.lastSync = &t
	return nil
}

type fakeRemote struct {
	calls     [][]BulkItem
	duplicate map[string]bool // bank refs the remote already has
	failAfter int             // fail on call number failAfter (1-based), 0 = never
}

func (f *fakeRemote) BulkCreate(ctx context.Context, items []BulkItem) (*BulkResult, error) {
	f.calls = append(f.calls, items)
	if f.failAfter > 0 && len(f.calls) >= f.failAfter {
		return nil, errors.New("connection refused")
	}

	result := &BulkResult{}
	for i, item := range items {
		if f.duplicate[item.BankReference] {
			result.SkippedCount++
			result.Skipped = append(result.Skipped, item.BankReference)
			continue
		}
		result.CreatedCount++
		result.Created = append(result.Created, CreatedItem{
			ID:      "srv-" + item.LocalID,
			LocalID: items[i].LocalID,
		})
	}
	return result, nil
}

func pendingTxn(localID, ref string) model.Transaction {
	return model.Transaction{
		LocalID:    localID,
		SyncStatus: model.SyncPending,
		ParsedTransaction: model.ParsedTransaction{
			TransactionDate: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
			Description:     "CHECKERS",
			Amount:          decimal.NewFromInt(-100),
			BankReference:   ref,
		},
	}
}

func TestPush_NothingPending(t *testing.T) {
	local := newFakeLocal()
	remote := &fakeRemote{}
	c := NewCoordinator(local, remote, 0, zerolog.Nop())

	result, err := c.Push(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PushResult{}, result)
	assert.Empty(t, remote.calls)
	assert.Nil(t, local.lastSync)
	assert.False(t, local.syncing)
}

func TestPush_CreatedAndSkipped(t *testing.T) {
	local := newFakeLocal(
		pendingTxn("t1", "ref-1"),
		pendingTxn("t2", "ref-2"),
		pendingTxn("t3", "ref-3"),
	)
	remote := &fakeRemote{duplicate: map[string]bool{"ref-2": true}}
	c := NewCoordinator(local, remote, 0, zerolog.Nop())

	result, err := c.Push(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"ref-2"}, result.SkippedRefs)
	assert.Equal(t, 0, result.Errors)

	// Created records carry their server identifiers; the duplicate was
	// never marked synced.
	assert.Equal(t, "srv-t1", local.synced["t1"])
	assert.Equal(t, "srv-t3", local.synced["t3"])
	_, marked := local.synced["t2"]
	assert.False(t, marked)

	require.NotNil(t, local.lastSync)
}

func TestPush_Batching(t *testing.T) {
	local := newFakeLocal(
		pendingTxn("t1", "ref-1"),
		pendingTxn("t2", "ref-2"),
		pendingTxn("t3", "ref-3"),
	)
	remote := &fakeRemote{}
	c := NewCoordinator(local, remote, 2, zerolog.Nop())

	result, err := c.Push(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Pushed)

	require.Len(t, remote.calls, 2)
	assert.Len(t, remote.calls[0], 2)
	assert.Len(t, remote.calls[1], 1)
}

func TestPush_RemoteFailureLeavesRecordsPending(t *testing.T) {
	local := newFakeLocal(
		pendingTxn("t1", "ref-1"),
		pendingTxn("t2", "ref-2"),
		pendingTxn("t3", "ref-3"),
	)
	remote := &fakeRemote{failAfter: 2}
	c := NewCoordinator(local, remote, 2, zerolog.Nop())

	result, err := c.Push(context.Background())
	require.Error(t, err)

	// First batch was confirmed; the failed batch stays pending and is
	// counted as unsynced.
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 1, result.Errors)
	_, marked := local.synced["t3"]
	assert.False(t, marked)
	assert.Nil(t, local.lastSync)
	assert.False(t, local.syncing)
}

func TestPush_MarkSyncedFailureCountsUnconfirmed(t *testing.T) {
	local := newFakeLocal(
		pendingTxn("t1", "ref-1"),
		pendingTxn("t2", "ref-2"),
		pendingTxn("t3", "ref-3"),
	)
	local.markFailAt = 2
	c := NewCoordinator(local, &fakeRemote{}, 0, zerolog.Nop())

	result, err := c.Push(context.Background())
	require.Error(t, err)

	// The first record was confirmed before the bookkeeping write failed;
	// the other two remain pending and are reported as unsynced.
	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 2, result.Errors)
	assert.Nil(t, local.lastSync)
	assert.False(t, local.syncing)
}

func TestPush_ConcurrentPushRejected(t *testing.T) {
	local := newFakeLocal(pendingTxn("t1", "ref-1"))
	require.NoError(t, local.BeginSync())

	c := NewCoordinator(local, &fakeRemote{}, 0, zerolog.Nop())
	_, err := c.Push(context.Background())
	assert.Error(t, err)
}

func TestPush_RetryAfterFailureIsIdempotent(t *testing.T) {
	txns := []model.Transaction{pendingTxn("t1", "ref-1")}
	local := newFakeLocal(txns...)
	remote := &fakeRemote{failAfter: 1}
	c := NewCoordinator(local, remote, 0, zerolog.Nop())

	_, err := c.Push(context.Background())
	require.Error(t, err)

	// On retry the remote has recovered but already holds ref-1 from a
	// request that failed mid-flight: the record drains as a skip.
	remote.failAfter = 0
	remote.duplicate = map[string]bool{"ref-1": true}

	result, err := c.Push(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Pushed)
	assert.Equal(t, 1, result.Skipped)
}

func TestNewBulkItem(t *testing.T) {
	balance := decimal.NewFromFloat(1200.50)
	txn := pendingTxn("t1", "ref-1")
	txn.BalanceAfter = &balance

	item := NewBulkItem(txn)
	assert.Equal(t, "2025-01-16", item.TransactionDate)
	assert.Equal(t, "CHECKERS", item.Description)
	assert.Equal(t, "t1", item.LocalID)
	assert.Equal(t, "ref-1", item.BankReference)
	// Raw description falls back to the cleaned one.
	assert.Equal(t, "CHECKERS", item.RawDescription)
	require.NotNil(t, item.BalanceAfter)
}
