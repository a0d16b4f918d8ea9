package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"sticker_factory_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*SessionStore, *time.Time) {
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Hour, models.DefaultStickerLayout())
	store.now = func() time.Time { return current }
	return store, &current
}

func TestSessionStore(t *testing.T) {
	records := makeRecords(3)

	t.Run("GetUnknownReturnsDefaultsWithoutStoring", func(t *testing.T) {
		store, _ := newTestStore()

		for i := 0; i < 50; i++ {
			sess := store.Get(fmt.Sprintf("client-chosen-%d", i))
			assert.Equal(t, models.DefaultStickerLayout(), sess.Layout)
			assert.Empty(t, sess.Records)
			assert.Zero(t, sess.Generation)
		}
		assert.Equal(t, 0, store.Len())

		sess := store.Get("a")
		assert.Equal(t, "a", sess.ID)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("WritesCreateSession", func(t *testing.T) {
		store, _ := newTestStore()

		store.BeginExtraction("a")
		layout := models.DefaultStickerLayout()
		layout.Columns = 2
		store.SetLayout("b", layout)
		assert.Equal(t, 2, store.Len())
		assert.Equal(t, 2, store.Get("b").Layout.Columns)
	})

	t.Run("CommitReplacesRecords", func(t *testing.T) {
		store, _ := newTestStore()

		gen := store.BeginExtraction("a")
		require.NoError(t, store.CommitExtraction("a", gen, "stock.xlsx", records))

		sess := store.Get("a")
		assert.Equal(t, "stock.xlsx", sess.FileName)
		assert.Equal(t, records, sess.Records)

		gen = store.BeginExtraction("a")
		require.NoError(t, store.CommitExtraction("a", gen, "next.xlsx", records[:1]))
		assert.Len(t, store.Get("a").Records, 1)
	})

	t.Run("StaleCommitIsRejected", func(t *testing.T) {
		store, _ := newTestStore()

		first := store.BeginExtraction("a")
		second := store.BeginExtraction("a")
		require.NoError(t, store.CommitExtraction("a", second, "new.xlsx", records[:1]))

		err := store.CommitExtraction("a", first, "old.xlsx", records)
		assert.ErrorIs(t, err, ErrStaleExtraction)

		sess := store.Get("a")
		assert.Equal(t, "new.xlsx", sess.FileName)
		assert.Len(t, sess.Records, 1)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		store, _ := newTestStore()
		assert.ErrorIs(t, store.CommitExtraction("missing", 1, "x.xlsx", records), ErrSessionNotFound)
	})

	t.Run("FailClearsOnlyCurrentGeneration", func(t *testing.T) {
		store, _ := newTestStore()

		gen := store.BeginExtraction("a")
		require.NoError(t, store.CommitExtraction("a", gen, "stock.xlsx", records))

		stale := store.BeginExtraction("a")
		current := store.BeginExtraction("a")

		store.FailExtraction("a", stale)
		assert.Len(t, store.Get("a").Records, 3)

		store.FailExtraction("a", current)
		sess := store.Get("a")
		assert.Empty(t, sess.Records)
		assert.Empty(t, sess.FileName)
	})

	t.Run("SetLayoutKeepsRecords", func(t *testing.T) {
		store, _ := newTestStore()

		gen := store.BeginExtraction("a")
		require.NoError(t, store.CommitExtraction("a", gen, "stock.xlsx", records))

		layout := models.DefaultStickerLayout()
		layout.Columns = 2
		sess := store.SetLayout("a", layout)

		assert.Equal(t, 2, sess.Layout.Columns)
		assert.Len(t, sess.Records, 3)
		assert.Equal(t, 2, store.Get("a").Layout.Columns)
	})

	t.Run("SnapshotIsACopy", func(t *testing.T) {
		store, _ := newTestStore()

		gen := store.BeginExtraction("a")
		require.NoError(t, store.CommitExtraction("a", gen, "stock.xlsx", records))

		sess := store.Get("a")
		sess.Records[0].Name = "changed"
		assert.Equal(t, "r0", store.Get("a").Records[0].Name)

		input := makeRecords(2)
		gen = store.BeginExtraction("b")
		require.NoError(t, store.CommitExtraction("b", gen, "other.xlsx", input))
		input[1].Name = "changed"
		assert.Equal(t, "r1", store.Get("b").Records[1].Name)
	})

	t.Run("CleanupRemovesIdleSessions", func(t *testing.T) {
		store, now := newTestStore()

		store.Get("old")
		*now = now.Add(45 * time.Minute)
		store.Get("fresh")
		*now = now.Add(30 * time.Minute)

		assert.Equal(t, 1, store.Cleanup())
		assert.Equal(t, 1, store.Len())

		*now = now.Add(2 * time.Hour)
		assert.Equal(t, 1, store.Cleanup())
		assert.Equal(t, 0, store.Len())
	})

	t.Run("ConcurrentUploads", func(t *testing.T) {
		store, _ := newTestStore()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				gen := store.BeginExtraction("a")
				_ = store.CommitExtraction("a", gen, "stock.xlsx", records)
			}()
		}
		wg.Wait()

		assert.Equal(t, uint64(20), store.Get("a").Generation)
	})
}

func TestStartCleanupStopsWithContext(t *testing.T) {
	store := NewSessionStore(time.Nanosecond, models.DefaultStickerLayout())
	store.Get("a")

	ctx, cancel := context.WithCancel(context.Background())
	store.StartCleanup(ctx, time.Millisecond)

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
