// Package rates maintains a snapshot of fiat exchange rates used to evaluate
// fiat-denominated spending limits.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Snapshot maps upper-case ISO 4217 codes to fiat units per bitcoin.
type Snapshot map[string]float64

// Cache is the in-memory rate snapshot the limit evaluator reads. Lookups
// never block on network I/O; a missing rate is reported as absent, not
// fetched lazily.
type Cache struct {
	mu        sync.RWMutex
	rates     Snapshot
	updatedAt time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{rates: Snapshot{}}
}

// Rate returns the fiat-per-BTC rate for a currency code, if known.
func (c *Cache) Rate(code string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rate, ok := c.rates[strings.ToUpper(code)]
	return rate, ok
}

// Update replaces the snapshot.
func (c *Cache) Update(rates Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = rates
	c.updatedAt = time.Now()
}

// UpdatedAt returns when the snapshot was last replaced.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

// Client fetches rates from a ticker endpoint returning
// {"USD": {"last": 64250.12}, ...}.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a rate fetcher.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch retrieves the current snapshot.
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ticker map[string]struct {
		Last float64 `json:"last"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	snapshot := make(Snapshot, len(ticker))
	for code, entry := range ticker {
		snapshot[strings.ToUpper(code)] = entry.Last
	}
	return snapshot, nil
}

// RefreshJob returns a function suitable for a cron schedule that fetches a
// new snapshot into the cache. Fetch failures keep the previous snapshot.
func RefreshJob(cache *Cache, client *Client, logger *slog.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		snapshot, err := client.Fetch(ctx)
		if err != nil {
			logger.Warn("exchange rate refresh failed", "error", err)
			return
		}
		cache.Update(snapshot)
		logger.Debug("exchange rates refreshed", "currencies", len(snapshot))
	}
}
