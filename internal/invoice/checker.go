package invoice

import (
	"context"
	"fmt"
	"time"
)

// RejectReason classifies why a structurally-valid invoice must not be paid.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectAlreadyPaid
	RejectPending
	RejectExpired
	RejectChainMismatch
	RejectOther
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "ok"
	case RejectAlreadyPaid:
		return "already paid"
	case RejectPending:
		return "payment pending"
	case RejectExpired:
		return "expired"
	case RejectChainMismatch:
		return "chain mismatch"
	default:
		return "other"
	}
}

// PaymentIndex answers whether a payment hash has been paid before or has a
// payment in flight. Backed by the payment history store.
type PaymentIndex interface {
	IsPaid(ctx context.Context, paymentHash [32]byte) (bool, error)
	IsPending(ctx context.Context, paymentHash [32]byte) (bool, error)
}

// Checker performs the semantic invoice checks: chain match, expiry,
// duplicate and pending payment detection.
type Checker struct {
	chain    string
	payments PaymentIndex
	now      func() time.Time
}

// NewChecker creates a Checker for the given chain.
func NewChecker(chain string, payments PaymentIndex) *Checker {
	return &Checker{chain: chain, payments: payments, now: time.Now}
}

// Check returns the first rejection reason that applies, or RejectNone when
// the invoice is safe to pay.
func (c *Checker) Check(ctx context.Context, inv *Invoice) (RejectReason, error) {
	if inv.Chain != c.chain {
		return RejectChainMismatch, nil
	}
	if inv.IsExpired(c.now()) {
		return RejectExpired, nil
	}

	paid, err := c.payments.IsPaid(ctx, inv.PaymentHash)
	if err != nil {
		return RejectOther, fmt.Errorf("duplicate check: %w", err)
	}
	if paid {
		return RejectAlreadyPaid, nil
	}

	pending, err := c.payments.IsPending(ctx, inv.PaymentHash)
	if err != nil {
		return RejectOther, fmt.Errorf("pending check: %w", err)
	}
	if pending {
		return RejectPending, nil
	}

	return RejectNone, nil
}
