// Package sync pushes locally pending transactions to the remote system
// of record. Local state is the working copy; the remote owns dedup by
// bank reference, so pushes are idempotent and safe to retry.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// MaxBatchSize is the largest batch the remote accepts in one request.
const MaxBatchSize = 500

// Remote is the subset of the API client the coordinator needs.
type Remote interface {
	BulkCreate(ctx context.Context, items []BulkItem) (*BulkResult, error)
}

// LocalStore is the subset of the local store the coordinator needs.
type LocalStore interface {
	BeginSync() error
	EndSync()
	PendingTransactions() ([]model.Transaction, error)
	MarkSynced(localID, serverID string, at time.Time) error
	SetLastSyncTime(t time.Time) error
}

// PushResult summarizes one push cycle.
type PushResult struct {
	Pushed      int
	Skipped     int
	Errors      int
	SkippedRefs []string
}

// Coordinator drives the push cycle: collect pending records, upload in
// batches, and record confirmations.
type Coordinator struct {
	store     LocalStore
	remote    Remote
	batchSize int
	now       func() time.Time
	log       zerolog.Logger
}

// NewCoordinator creates a push coordinator. batchSize is clamped to the
// remote's limit; zero or negative means the limit.
func NewCoordinator(store LocalStore, remote Remote, batchSize int, log zerolog.Logger) *Coordinator {
	if batchSize <= 0 || batchSize > MaxBatchSize {
		batchSize = MaxBatchSize
	}
	return &Coordinator{
		store:     store,
		remote:    remote,
		batchSize: batchSize,
		now:       time.Now,
		log:       log,
	}
}

// Push uploads all pending transactions. Only one push may run at a
// time; a concurrent call fails with the store's in-flight error.
//
// Created records are marked synced with their server identifier.
// Records the remote skipped as duplicates stay pending and are reported
// via SkippedRefs. On a batch failure the remaining pending records are
// left untouched and counted as Errors; the next push retries them.
func (c *Coordinator) Push(ctx context.Context) (PushResult, error) {
	if err := c.store.BeginSync(); err != nil {
		return PushResult{}, err
	}
	defer c.store.EndSync()

	pending, err := c.store.PendingTransactions()
	if err != nil {
		return PushResult{}, fmt.Errorf("loading pending transactions: %w", err)
	}
	if len(pending) == 0 {
		c.log.Debug().Msg("nothing to sync")
		return PushResult{}, nil
	}

	c.log.Info().Int("pending", len(pending)).Msg("starting push")

	var result PushResult
	for start := 0; start < len(pending); start += c.batchSize {
		end := min(start+c.batchSize, len(pending))
		batch := pending[start:end]

		items := make([]BulkItem, len(batch))
		for i, txn := range batch {
			items[i] = NewBulkItem(txn)
		}

		resp, err := c.remote.BulkCreate(ctx, items)
		if err != nil {
			result.Errors = len(pending) - start
			c.log.Warn().Err(err).
				Int("unsynced", result.Errors).
				Msg("push batch failed, remaining records stay pending")
			return result, fmt.Errorf("pushing batch: %w", err)
		}

		syncedAt := c.now()
		for _, created := range resp.Created {
			if created.LocalID == "" {
				continue
			}
			if err := c.store.MarkSynced(created.LocalID, created.ID, syncedAt); err != nil {
				// Everything not yet confirmed stays pending, same as a
				// failed upload.
				result.Errors = len(pending) - result.Pushed - result.Skipped
				return result, fmt.Errorf("recording synced transaction %s: %w", created.LocalID, err)
			}
			result.Pushed++
		}
		result.Skipped += resp.SkippedCount
		result.SkippedRefs = append(result.SkippedRefs, resp.Skipped...)
	}

	if err := c.store.SetLastSyncTime(c.now()); err != nil {
		return result, fmt.Errorf("recording sync time: %w", err)
	}

	c.log.Info().
		Int("pushed", result.Pushed).
		Int("skipped", result.Skipped).
		Msg("push complete")
	return result, nil
}
