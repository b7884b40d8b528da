package service

import (
	"context"
	"time"

	"github.com/kgrady/boltcard-gateway/internal/models"
)

const (
	dailyWindow   = 24 * time.Hour
	monthlyWindow = 30 * 24 * time.Hour
)

// checkSpendingLimits rejects the candidate payment when it would push the
// card's settled spend over a configured window limit. An amount exactly at
// the limit passes; only strictly greater is rejected.
func (s *WithdrawService) checkSpendingLimits(ctx context.Context, card *models.Card, amountMsat int64) error {
	now := time.Now()
	payments, err := s.registry.PaymentsSince(ctx, card.ID, now.Add(-monthlyWindow))
	if err != nil {
		return internalError(card, "payment history unavailable", err)
	}

	var dailyMsat, monthlyMsat int64
	dailyCutoff := now.Add(-dailyWindow)
	for _, p := range payments {
		if p.Status != models.PaymentStatusSettled {
			continue
		}
		monthlyMsat += p.AmountMsat
		if p.CreatedAt.After(dailyCutoff) {
			dailyMsat += p.AmountMsat
		}
	}

	if card.DailyLimit != nil {
		if err := s.checkWindowLimit(card, *card.DailyLimit, dailyMsat, amountMsat, ErrCodeDailyLimitExceeded, "daily limit exceeded"); err != nil {
			return err
		}
	}
	if card.MonthlyLimit != nil {
		if err := s.checkWindowLimit(card, *card.MonthlyLimit, monthlyMsat, amountMsat, ErrCodeMonthlyLimitExceeded, "monthly limit exceeded"); err != nil {
			return err
		}
	}
	return nil
}

// checkWindowLimit evaluates one window in the limit's own currency. Fiat
// limits convert the msat totals through the current exchange rate; a missing
// rate fails closed. A rejection carries the invoice amount alone, not the
// window total, so the caller learns what was attempted without learning the
// card's prior spend.
func (s *WithdrawService) checkWindowLimit(card *models.Card, limit models.CurrencyAmount, spentMsat, amountMsat int64, code, message string) error {
	var total, invoiceAmount float64
	if limit.Currency.IsFiat() {
		rate, ok := s.rates.Rate(limit.Currency.Fiat)
		if !ok {
			return internalError(card, "exchange rate unavailable for "+limit.Currency.Fiat, nil)
		}
		total = models.MsatToFiat(spentMsat+amountMsat, rate)
		invoiceAmount = models.MsatToFiat(amountMsat, rate)
	} else {
		perUnit := float64(limit.Currency.Unit.MsatPerUnit())
		total = float64(spentMsat+amountMsat) / perUnit
		invoiceAmount = float64(amountMsat) / perUnit
	}

	if total > limit.Amount {
		over := models.CurrencyAmount{Currency: limit.Currency, Amount: invoiceAmount}
		s.logger.Info(message,
			"card_id", card.ID,
			"invoice_amount", invoiceAmount,
			"new_total", total,
			"limit", limit.Amount,
			"currency", limit.Currency,
		)
		return &ServiceError{
			Code:      code,
			Message:   message,
			Card:      card,
			OverLimit: &over,
		}
	}
	return nil
}
