package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/invoice"
	"github.com/kgrady/boltcard-gateway/internal/models"
	"github.com/kgrady/boltcard-gateway/internal/ntag"
)

// Decision is the terminal outcome of an authorized withdrawal.
type Decision int

const (
	// DecisionSendPayment means this process owns the withdrawal and must
	// dispatch the payment.
	DecisionSendPayment Decision = iota

	// DecisionHandledElsewhere means another process claimed the same tap
	// first; this process must not pay.
	DecisionHandledElsewhere
)

// WithdrawStatus is the success result of the pipeline. PaymentID is set only
// for DecisionSendPayment; the caller reports the dispatch outcome against it
// via ResolvePayment.
type WithdrawStatus struct {
	Card       *models.Card
	Invoice    *invoice.Invoice
	AmountMsat int64
	PaymentID  uuid.UUID
	Decision   Decision
}

// WithdrawService composes card matching, replay protection, invoice
// validation, spending limits, channel readiness and the cross-process claim
// into one authorization decision per tap.
type WithdrawService struct {
	registry   CardRegistry
	checker    InvoiceChecker
	claims     Claimer
	readiness  ReadinessWaiter
	rates      RateProvider
	settlement SettlementNotifier
	logger     *slog.Logger
	nodeID     string
}

// NewWithdrawService creates a WithdrawService.
func NewWithdrawService(
	nodeID string,
	registry CardRegistry,
	checker InvoiceChecker,
	claims Claimer,
	readiness ReadinessWaiter,
	rates RateProvider,
	settlement SettlementNotifier,
	logger *slog.Logger,
) *WithdrawService {
	return &WithdrawService{
		nodeID:     nodeID,
		registry:   registry,
		checker:    checker,
		claims:     claims,
		readiness:  readiness,
		rates:      rates,
		settlement: settlement,
		logger:     logger,
	}
}

// CheckWithdraw authorizes one tap for the given process identity. The
// outcome is always reported to the settlement service afterwards; delivery
// failures are logged and never alter the decision.
func (s *WithdrawService) CheckWithdraw(ctx context.Context, req models.WithdrawRequest, process models.ProcessID) (*WithdrawStatus, error) {
	status, err := s.authorize(ctx, req, process)

	errMessage := ""
	if err != nil {
		if svcErr, ok := err.(*ServiceError); ok {
			errMessage = svcErr.ResponseMessage()
		} else {
			errMessage = "internal error"
		}
	}
	s.settlement.PostResult(ctx, s.nodeID, req.WithdrawHash, errMessage)

	return status, err
}

// authorize runs the pipeline steps in their fixed order. Once the replay
// guard has passed, every exit path advances the card's counter except the
// handled-elsewhere outcome, where the owning process performs the update.
func (s *WithdrawService) authorize(ctx context.Context, req models.WithdrawRequest, process models.ProcessID) (status *WithdrawStatus, retErr error) {
	// Step 1: match the tap against every known card's keys.
	card, piccData, err := s.matchCard(ctx, req)
	if err != nil {
		return nil, err
	}

	// Step 2: anti-replay. This must precede everything else: it is the
	// sole defense against an attacker replaying an intercepted tap.
	if piccData.Counter <= card.LastKnownCounter {
		s.logger.Warn("replay detected",
			"card_id", card.ID,
			"tap_counter", piccData.Counter,
			"last_known_counter", card.LastKnownCounter,
		)
		return nil, &ServiceError{
			Code:    ErrCodeReplayDetected,
			Message: "replay detected",
			Card:    card,
		}
	}

	defer func() {
		if status != nil && status.Decision == DecisionHandledElsewhere {
			// The owning process advances the counter.
			return
		}
		updated := card.WithCounter(piccData.Counter)
		if saveErr := s.registry.SaveCard(ctx, updated); saveErr != nil {
			s.logger.Error("failed to persist card counter",
				"card_id", card.ID,
				"counter", piccData.Counter,
				"error", saveErr,
			)
		}
	}()

	// Step 3: frozen card check.
	if !card.IsActive {
		s.logger.Debug("card is frozen", "card_id", card.ID)
		return nil, &ServiceError{
			Code:    ErrCodeFrozenCard,
			Message: "frozen card",
			Card:    card,
		}
	}

	// Step 4: structural and semantic invoice validation.
	inv, err := s.validateInvoice(ctx, card, req.Invoice)
	if err != nil {
		return nil, err
	}

	// Step 5: spending limits, only when the card defines any.
	if card.HasSpendingLimit() {
		if err := s.checkSpendingLimits(ctx, card, inv.AmountMsat); err != nil {
			return nil, err
		}
	}

	// Step 6: wait for the peer connection and channel readiness. Must
	// precede the claim: only one process can hold the peer connection,
	// and the claim must not be taken before payment is possible.
	if err := s.readiness.WaitUntilReady(ctx); err != nil {
		return nil, internalError(card, "channel layer not ready", err)
	}

	// Step 7: atomically claim the withdrawal.
	owner, err := s.claims.TryClaim(ctx, req.WithdrawHash, process)
	if err != nil {
		return nil, internalError(card, "claim failed", err)
	}
	if !owner {
		s.logger.Info("withdrawal handled elsewhere",
			"withdraw_hash", req.WithdrawHash,
			"process", process,
		)
		return &WithdrawStatus{
			Decision: DecisionHandledElsewhere,
			Card:     card,
		}, nil
	}

	// Step 8: record the pending payment so the spending windows and the
	// duplicate checks see it while it is in flight. Recording is best
	// effort: the claim is already held, so failing here would strand the
	// withdrawal without anyone paying it.
	payment := &models.CardPayment{
		ID:          uuid.New(),
		CardID:      card.ID,
		PaymentHash: inv.PaymentHash[:],
		AmountMsat:  inv.AmountMsat,
		Status:      models.PaymentStatusPending,
	}
	if err := s.registry.RecordPayment(ctx, payment); err != nil {
		s.logger.Error("failed to record pending payment",
			"withdraw_hash", req.WithdrawHash,
			"card_id", card.ID,
			"error", err,
		)
	}

	s.logger.Info("withdrawal authorized",
		"withdraw_hash", req.WithdrawHash,
		"card_id", card.ID,
		"amount_msat", inv.AmountMsat,
		"process", process,
	)
	return &WithdrawStatus{
		Decision:   DecisionSendPayment,
		Card:       card,
		Invoice:    inv,
		AmountMsat: inv.AmountMsat,
		PaymentID:  payment.ID,
	}, nil
}

// ResolvePayment moves an authorized payment to its terminal status once the
// dispatching process knows the outcome.
func (s *WithdrawService) ResolvePayment(ctx context.Context, paymentID uuid.UUID, settled bool) error {
	status := models.PaymentStatusFailed
	if settled {
		status = models.PaymentStatusSettled
	}

	if err := s.registry.UpdatePaymentStatus(ctx, paymentID, status); err != nil {
		return internalError(nil, "failed to update payment status", err)
	}

	s.logger.Info("payment resolved", "payment_id", paymentID, "status", status)
	return nil
}

// matchCard tries every known card's key pair against the tap payload in
// registry order and returns the first that authenticates. If two cards'
// keys both happen to authenticate the same payload, the first in registry
// order silently wins.
func (s *WithdrawService) matchCard(ctx context.Context, req models.WithdrawRequest) (*models.Card, *ntag.PiccData, error) {
	cards := s.registry.Cards()
	if len(cards) == 0 {
		// Cold start: the cache may not be populated yet, so read the
		// backing store directly before concluding no card exists.
		stored, err := s.registry.ListCards(ctx)
		if err != nil {
			return nil, nil, internalError(nil, "card registry unavailable", err)
		}
		cards = stored
	}

	for _, card := range cards {
		if card.IsForeign || card.IsArchived {
			continue
		}

		keys := ntag.KeySet{PiccDataKey: card.PiccDataKey, CmacKey: card.CmacKey}
		piccData, err := ntag.ExtractPiccData(keys, req.PiccData, req.Cmac)
		if err != nil {
			continue
		}

		s.logger.Debug("card matched", "card_id", card.ID, "counter", piccData.Counter)
		return card, piccData, nil
	}

	return nil, nil, &ServiceError{
		Code:    ErrCodeUnknownCard,
		Message: "unknown card",
	}
}

// validateInvoice parses the invoice and runs the semantic checks, mapping
// each rejection reason to its taxonomy code.
func (s *WithdrawService) validateInvoice(ctx context.Context, card *models.Card, raw string) (*invoice.Invoice, error) {
	inv, err := invoice.Parse(raw)
	if err != nil {
		return nil, &ServiceError{
			Code:    ErrCodeBadInvoice,
			Message: "bad invoice: parse error",
			Err:     err,
			Card:    card,
		}
	}
	if inv.AmountMsat <= 0 {
		return nil, &ServiceError{
			Code:    ErrCodeBadInvoice,
			Message: "bad invoice: missing amount",
			Card:    card,
		}
	}

	reason, err := s.checker.Check(ctx, inv)
	if err != nil {
		return nil, internalError(card, "invoice validation failed", err)
	}

	switch reason {
	case invoice.RejectNone:
		return inv, nil
	case invoice.RejectAlreadyPaid:
		return nil, &ServiceError{Code: ErrCodeAlreadyPaidInvoice, Message: "already paid invoice", Card: card}
	case invoice.RejectPending:
		return nil, &ServiceError{Code: ErrCodePaymentPending, Message: "payment pending", Card: card}
	case invoice.RejectExpired:
		return nil, &ServiceError{Code: ErrCodeBadInvoice, Message: "bad invoice: expired", Card: card}
	case invoice.RejectChainMismatch:
		return nil, &ServiceError{Code: ErrCodeBadInvoice, Message: "bad invoice: chain mismatch", Card: card}
	default:
		return nil, internalError(card, "invoice rejected", nil)
	}
}
