package registry

import (
	"context"
	"fmt"

	"github.com/kgrady/boltcard-gateway/internal/db"
)

// PaymentIndex answers duplicate and in-flight payment questions for the
// invoice checker, keyed by payment hash across all cards.
type PaymentIndex struct {
	db *db.DB
}

// NewPaymentIndex creates a payment index over the card_payments table.
func NewPaymentIndex(database *db.DB) *PaymentIndex {
	return &PaymentIndex{db: database}
}

// IsPaid reports whether a settled payment exists for the hash.
func (p *PaymentIndex) IsPaid(ctx context.Context, paymentHash [32]byte) (bool, error) {
	return p.exists(ctx, paymentHash[:], "SETTLED")
}

// IsPending reports whether a payment for the hash is still in flight.
func (p *PaymentIndex) IsPending(ctx context.Context, paymentHash [32]byte) (bool, error) {
	return p.exists(ctx, paymentHash[:], "PENDING")
}

func (p *PaymentIndex) exists(ctx context.Context, paymentHash []byte, status string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM card_payments
			WHERE payment_hash = $1 AND status = $2
		)
	`

	var exists bool
	if err := p.db.QueryRowContext(ctx, query, paymentHash, status).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to query payment index: %w", err)
	}
	return exists, nil
}
