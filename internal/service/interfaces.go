package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/invoice"
	"github.com/kgrady/boltcard-gateway/internal/models"
)

// CardRegistry is the card store plus its in-memory view. Cards returns the
// cached list and may be empty right after process start; ListCards reads the
// backing store directly.
type CardRegistry interface {
	Cards() []*models.Card
	ListCards(ctx context.Context) ([]*models.Card, error)
	SaveCard(ctx context.Context, card *models.Card) error
	PaymentsSince(ctx context.Context, cardID uuid.UUID, since time.Time) ([]*models.CardPayment, error)
	RecordPayment(ctx context.Context, payment *models.CardPayment) error
	UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status models.PaymentStatus) error
}

// InvoiceChecker performs semantic invoice validation.
type InvoiceChecker interface {
	Check(ctx context.Context, inv *invoice.Invoice) (invoice.RejectReason, error)
}

// Claimer is the cross-process exactly-once ledger.
type Claimer interface {
	TryClaim(ctx context.Context, withdrawHash string, process models.ProcessID) (bool, error)
}

// ReadinessWaiter blocks until the channel layer can carry a payment.
type ReadinessWaiter interface {
	WaitUntilReady(ctx context.Context) error
}

// RateProvider supplies fiat-per-BTC exchange rates.
type RateProvider interface {
	Rate(code string) (float64, bool)
}

// SettlementNotifier reports withdrawal outcomes, best effort.
type SettlementNotifier interface {
	PostResult(ctx context.Context, nodeID, withdrawHash, errMessage string) bool
}

// Withdrawer runs the withdrawal authorization pipeline and tracks the
// resulting payment.
type Withdrawer interface {
	CheckWithdraw(ctx context.Context, req models.WithdrawRequest, process models.ProcessID) (*WithdrawStatus, error)
	ResolvePayment(ctx context.Context, paymentID uuid.UUID, settled bool) error
}

// CardManager exposes card lifecycle operations.
type CardManager interface {
	CreateCard(ctx context.Context, input CreateCardInput) (*models.Card, error)
	ListCards(ctx context.Context) ([]*models.Card, error)
	GetCard(ctx context.Context, id uuid.UUID) (*models.Card, error)
	SetFrozen(ctx context.Context, id uuid.UUID, frozen bool) (*models.Card, error)
	ArchiveCard(ctx context.Context, id uuid.UUID) (*models.Card, error)
	UpdateLimits(ctx context.Context, id uuid.UUID, daily, monthly *models.CurrencyAmount) (*models.Card, error)
	ResetCounter(ctx context.Context, id uuid.UUID, counter uint32) (*models.Card, error)
}

// Ensure concrete types implement interfaces
var _ Withdrawer = (*WithdrawService)(nil)
var _ CardManager = (*CardService)(nil)
