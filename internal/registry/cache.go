package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/models"
)

// Cache keeps the card list in memory so the matcher can try every card's
// keys without a database round trip per tap. The cache may legitimately be
// empty right after process start; callers fall back to the store directly
// for that cold-start window.
type Cache struct {
	store  Store
	logger *slog.Logger

	mu    sync.RWMutex
	cards []*models.Card
}

// NewCache creates a card cache over the given store. It starts empty;
// call Reload to populate it.
func NewCache(store Store, logger *slog.Logger) *Cache {
	return &Cache{store: store, logger: logger}
}

// Cards returns the cached card list. The slice is shared; callers must not
// mutate it.
func (c *Cache) Cards() []*models.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cards
}

// Reload replaces the cached list from the store.
func (c *Cache) Reload(ctx context.Context) error {
	cards, err := c.store.ListCards(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cards = cards
	c.mu.Unlock()

	c.logger.Debug("card cache reloaded", "count", len(cards))
	return nil
}

// ReloadJob returns a cron-schedulable wrapper around Reload.
func (c *Cache) ReloadJob(ctx context.Context) func() {
	return func() {
		if err := c.Reload(ctx); err != nil {
			c.logger.Warn("card cache reload failed", "error", err)
		}
	}
}

// ListCards reads the backing store directly, bypassing the cache. Used for
// the cold-start fallback when the cache has not been populated yet.
func (c *Cache) ListCards(ctx context.Context) ([]*models.Card, error) {
	return c.store.ListCards(ctx)
}

// SaveCard writes through to the store and patches the cached entry so the
// next tap sees the advanced counter without waiting for a reload. The patch
// replaces the whole slice, like Reload; slice headers handed out by Cards
// may still be iterated by a concurrent matcher, so the shared backing array
// is never written.
func (c *Cache) SaveCard(ctx context.Context, card *models.Card) error {
	if err := c.store.SaveCard(ctx, card); err != nil {
		return err
	}

	c.mu.Lock()
	for i, cached := range c.cards {
		if cached.ID == card.ID {
			patched := make([]*models.Card, len(c.cards))
			copy(patched, c.cards)
			patched[i] = card
			c.cards = patched
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// PaymentsSince delegates to the backing store.
func (c *Cache) PaymentsSince(ctx context.Context, cardID uuid.UUID, since time.Time) ([]*models.CardPayment, error) {
	return c.store.PaymentsSince(ctx, cardID, since)
}

// RecordPayment delegates to the backing store.
func (c *Cache) RecordPayment(ctx context.Context, payment *models.CardPayment) error {
	return c.store.RecordPayment(ctx, payment)
}

// UpdatePaymentStatus delegates to the backing store.
func (c *Cache) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status models.PaymentStatus) error {
	return c.store.UpdatePaymentStatus(ctx, paymentID, status)
}
