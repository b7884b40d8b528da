package service

import (
	"fmt"

	"github.com/kgrady/boltcard-gateway/internal/models"
)

// ServiceError represents a withdrawal rejection with a code. Every pipeline
// failure is a typed rejection returned to the caller; none are fatal.
type ServiceError struct {
	Err       error
	Card      *models.Card           // matched card, when known
	OverLimit *models.CurrencyAmount // set for limit-exceeded codes
	Message   string
	Code      string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Withdrawal rejection codes
const (
	ErrCodeUnknownCard          = "unknown_card"
	ErrCodeReplayDetected       = "replay_detected"
	ErrCodeFrozenCard           = "frozen_card"
	ErrCodeDailyLimitExceeded   = "daily_limit_exceeded"
	ErrCodeMonthlyLimitExceeded = "monthly_limit_exceeded"
	ErrCodeBadInvoice           = "bad_invoice"
	ErrCodeAlreadyPaidInvoice   = "already_paid_invoice"
	ErrCodePaymentPending       = "payment_pending"
	ErrCodeInternalError        = "internal_error"

	// Card management codes
	ErrCodeCardNotFound = "card_not_found"
	ErrCodeInvalidCard  = "invalid_card"
)

// ResponseMessage is the externally visible rejection text. It deliberately
// reveals less than Error(): limit rejections don't disclose which window
// tripped, and internal errors don't disclose details.
func (e *ServiceError) ResponseMessage() string {
	switch e.Code {
	case ErrCodeUnknownCard:
		return "unknown card"
	case ErrCodeReplayDetected:
		return "replay detected"
	case ErrCodeFrozenCard:
		return "frozen card"
	case ErrCodeDailyLimitExceeded, ErrCodeMonthlyLimitExceeded:
		return "limit exceeded"
	case ErrCodeBadInvoice:
		return e.Message
	case ErrCodeAlreadyPaidInvoice:
		return "already paid invoice"
	case ErrCodePaymentPending:
		return "payment pending"
	default:
		return "internal error"
	}
}

func internalError(card *models.Card, message string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeInternalError,
		Message: message,
		Err:     err,
		Card:    card,
	}
}
