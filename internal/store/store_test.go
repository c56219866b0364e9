package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_CreatesSchema(t *testing.T) {
	st := openTestStore(t)

	cats, err := st.ListCategories()
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestSeedDefaultCategories(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.SeedDefaultCategories())
	cats, err := st.ListCategories()
	require.NoError(t, err)
	assert.Len(t, cats, 24)

	// Expenses sort before income.
	assert.False(t, cats[0].IsIncome)
	assert.Equal(t, "Groceries", cats[0].Name)
	assert.True(t, cats[len(cats)-1].IsIncome)

	for _, c := range cats {
		assert.NotEmpty(t, c.ID, c.Name)
		assert.True(t, c.IsSystem, c.Name)
	}

	// Seeding again is a no-op.
	require.NoError(t, st.SeedDefaultCategories())
	again, err := st.ListCategories()
	require.NoError(t, err)
	assert.Len(t, again, 24)
}

func TestGetCategoryByName(t *testing.T) {
	st := openTestStore(t)
	require.NoError(t, st.SeedDefaultCategories())

	cat, err := st.GetCategoryByName("groceries")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", cat.Name)

	_, err = st.GetCategoryByName("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSyncGuard(t *testing.T) {
	st := openTestStore(t)

	require.NoError(t, st.BeginSync())
	assert.ErrorIs(t, st.BeginSync(), ErrSyncInFlight)

	st.EndSync()
	require.NoError(t, st.BeginSync())
	st.EndSync()
}

func TestLastSyncTime(t *testing.T) {
	st := openTestStore(t)

	last, err := st.LastSyncTime()
	require.NoError(t, err)
	assert.Nil(t, last)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.SetLastSyncTime(now))

	last, err = st.LastSyncTime()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.Equal(now))

	// Overwrites on the next sync.
	later := now.Add(time.Hour)
	require.NoError(t, st.SetLastSyncTime(later))
	last, err = st.LastSyncTime()
	require.NoError(t, err)
	assert.True(t, last.Equal(later))
}
