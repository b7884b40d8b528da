// Package claims records which process owns each withdrawal request. It is
// the exactly-once core: two uncoordinated OS processes can receive the same
// physical tap, and whichever lands its claim first pays the invoice.
package claims

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kgrady/boltcard-gateway/internal/kv"
	"github.com/kgrady/boltcard-gateway/internal/models"
)

const (
	// storeKey is the single logical key holding the serialized claim list.
	storeKey = "withdraw_claims"

	// retention bounds the claim list; entries older than this are pruned
	// on the next write. Replay protection does not depend on it: the card
	// counter rejects re-taps long after the claim is gone.
	retention = 7 * 24 * time.Hour

	// maxAttempts caps the optimistic retry loop. Contention is two
	// processes racing on one tap, so losers converge after one retry;
	// the cap only guards against a misbehaving store.
	maxAttempts = 64
)

// Store coordinates withdrawal ownership through a versioned kv entry.
type Store struct {
	kv     kv.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a claim store on top of the shared kv store.
func New(store kv.Store, logger *slog.Logger) *Store {
	return &Store{kv: store, logger: logger, now: time.Now}
}

// TryClaim attempts to take ownership of a withdrawal. It returns true when
// this call created the claim, false when the hash was already claimed by
// any process (including this one).
//
// The read-prune-append-write cycle is retried whenever the conditional write
// loses a race; every losing retry re-reads the winner's claim and exits via
// the already-claimed path.
func (s *Store) TryClaim(ctx context.Context, withdrawHash string, process models.ProcessID) (bool, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value, version, err := s.kv.Get(ctx, storeKey)
		if err != nil {
			return false, fmt.Errorf("failed to read claims: %w", err)
		}

		var records []models.ClaimRecord
		if len(value) > 0 {
			if err := json.Unmarshal(value, &records); err != nil {
				return false, fmt.Errorf("failed to decode claims: %w", err)
			}
		}

		for _, record := range records {
			if record.WithdrawHash == withdrawHash {
				s.logger.Debug("withdrawal already claimed",
					"withdraw_hash", withdrawHash,
					"claimed_by", record.Process,
					"claimed_at", record.Date,
				)
				return false, nil
			}
		}

		if len(records) > 0 {
			records = s.prune(records)
		}

		records = append(records, models.ClaimRecord{
			WithdrawHash: withdrawHash,
			Process:      process,
			Date:         s.now().UTC(),
		})

		updated, err := json.Marshal(records)
		if err != nil {
			return false, fmt.Errorf("failed to encode claims: %w", err)
		}

		_, ok, err := s.kv.PutIfUnchanged(ctx, storeKey, updated, version)
		if err != nil {
			return false, fmt.Errorf("failed to write claims: %w", err)
		}
		if ok {
			s.logger.Debug("withdrawal claimed",
				"withdraw_hash", withdrawHash,
				"process", process,
				"attempt", attempt,
			)
			return true, nil
		}

		// Another writer won; re-read and decide again.
	}

	return false, fmt.Errorf("claim write lost %d consecutive races", maxAttempts)
}

// Sweep prunes expired claims outside the write path so the list stays
// bounded in quiet deployments where no new claims trigger pruning. Losing
// the conditional write is fine; the winner either pruned already or will on
// its next claim.
func (s *Store) Sweep(ctx context.Context) error {
	value, version, err := s.kv.Get(ctx, storeKey)
	if err != nil {
		return fmt.Errorf("failed to read claims: %w", err)
	}
	if len(value) == 0 {
		return nil
	}

	var records []models.ClaimRecord
	if err := json.Unmarshal(value, &records); err != nil {
		return fmt.Errorf("failed to decode claims: %w", err)
	}

	kept := s.prune(records)
	if len(kept) == len(records) {
		return nil
	}

	updated, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("failed to encode claims: %w", err)
	}

	_, ok, err := s.kv.PutIfUnchanged(ctx, storeKey, updated, version)
	if err != nil {
		return fmt.Errorf("failed to write claims: %w", err)
	}
	if !ok {
		s.logger.Debug("claim sweep lost a write race, skipping")
	} else {
		s.logger.Info("pruned stale claims", "removed", len(records)-len(kept), "kept", len(kept))
	}
	return nil
}

// SweepJob adapts Sweep for a cron scheduler.
func (s *Store) SweepJob(ctx context.Context) func() {
	return func() {
		if err := s.Sweep(ctx); err != nil {
			s.logger.Error("claim sweep failed", "error", err)
		}
	}
}

// prune drops records older than the retention window. The caller has
// already established that the hash being claimed is not among them, so
// pruning can never erase the decision for an in-flight withdrawal.
func (s *Store) prune(records []models.ClaimRecord) []models.ClaimRecord {
	cutoff := s.now().Add(-retention)
	kept := records[:0]
	for _, record := range records {
		if !record.Date.Before(cutoff) {
			kept = append(kept, record)
		}
	}
	return kept
}
