package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/models"
	"github.com/kgrady/boltcard-gateway/internal/registry/mocks"
)

func newTestCache(store Store) *Cache {
	return NewCache(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCache_Reload(t *testing.T) {
	ctx := context.Background()

	t.Run("starts empty", func(t *testing.T) {
		cache := newTestCache(mocks.NewMockStore(t))

		assert.Empty(t, cache.Cards())
	})

	t.Run("reload populates the list", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		cards := []*models.Card{{ID: uuid.New()}, {ID: uuid.New()}}
		store.On("ListCards", ctx).Return(cards, nil)
		cache := newTestCache(store)

		require.NoError(t, cache.Reload(ctx))

		assert.Equal(t, cards, cache.Cards())
	})

	t.Run("reload failure keeps the previous list", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		cards := []*models.Card{{ID: uuid.New()}}
		store.On("ListCards", ctx).Return(cards, nil).Once()
		store.On("ListCards", ctx).Return(nil, assert.AnError).Once()
		cache := newTestCache(store)

		require.NoError(t, cache.Reload(ctx))
		require.Error(t, cache.Reload(ctx))

		assert.Equal(t, cards, cache.Cards())
	})
}

func TestCache_SaveCard(t *testing.T) {
	ctx := context.Background()

	t.Run("write-through patches the cached entry", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		card := &models.Card{ID: uuid.New(), LastKnownCounter: 1}
		store.On("ListCards", ctx).Return([]*models.Card{card}, nil)
		cache := newTestCache(store)
		require.NoError(t, cache.Reload(ctx))

		updated := card.WithCounter(2)
		store.On("SaveCard", ctx, updated).Return(nil)

		require.NoError(t, cache.SaveCard(ctx, updated))

		require.Len(t, cache.Cards(), 1)
		assert.Equal(t, uint32(2), cache.Cards()[0].LastKnownCounter)
	})

	t.Run("patch never writes the handed-out slice", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		card := &models.Card{ID: uuid.New(), LastKnownCounter: 1}
		store.On("ListCards", ctx).Return([]*models.Card{card}, nil)
		cache := newTestCache(store)
		require.NoError(t, cache.Reload(ctx))

		snapshot := cache.Cards()
		store.On("SaveCard", ctx, mock.Anything).Return(nil)

		require.NoError(t, cache.SaveCard(ctx, card.WithCounter(2)))

		// A matcher iterating the old snapshot keeps seeing the old entry;
		// only fresh Cards calls observe the patch.
		assert.Equal(t, uint32(1), snapshot[0].LastKnownCounter)
		assert.Equal(t, uint32(2), cache.Cards()[0].LastKnownCounter)
	})

	t.Run("concurrent readers during patching", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		card := &models.Card{ID: uuid.New(), LastKnownCounter: 0}
		store.On("ListCards", ctx).Return([]*models.Card{card}, nil)
		store.On("SaveCard", ctx, mock.Anything).Return(nil)
		cache := newTestCache(store)
		require.NoError(t, cache.Reload(ctx))

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := uint32(1); i <= 100; i++ {
				assert.NoError(t, cache.SaveCard(ctx, card.WithCounter(i)))
			}
		}()
		for i := 0; i < 100; i++ {
			for _, c := range cache.Cards() {
				_ = c.LastKnownCounter
			}
		}
		<-done

		assert.Equal(t, uint32(100), cache.Cards()[0].LastKnownCounter)
	})

	t.Run("store failure leaves the cache untouched", func(t *testing.T) {
		store := mocks.NewMockStore(t)
		card := &models.Card{ID: uuid.New(), LastKnownCounter: 1}
		store.On("ListCards", ctx).Return([]*models.Card{card}, nil)
		cache := newTestCache(store)
		require.NoError(t, cache.Reload(ctx))

		store.On("SaveCard", ctx, mock.Anything).Return(assert.AnError)

		require.Error(t, cache.SaveCard(ctx, card.WithCounter(2)))

		assert.Equal(t, uint32(1), cache.Cards()[0].LastKnownCounter)
	})
}

func TestCache_ListCards_BypassesCache(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore(t)
	fresh := []*models.Card{{ID: uuid.New()}}
	store.On("ListCards", ctx).Return(fresh, nil)
	cache := newTestCache(store)

	got, err := cache.ListCards(ctx)

	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	assert.Empty(t, cache.Cards())
}
