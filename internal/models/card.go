package models

import (
	"time"

	"github.com/google/uuid"
)

// Card represents a linked bolt card and its NTAG424 key material.
//
// The two symmetric keys are written to the physical tag when the card is
// linked: PiccDataKey decrypts the tap payload, CmacKey verifies the
// authentication tag. LastKnownCounter is the highest tap counter observed so
// far and is the sole defense against payload replay.
type Card struct {
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
	Name             string          `db:"name"`
	UID              []byte          `db:"uid"`
	PiccDataKey      []byte          `db:"picc_data_key"`
	CmacKey          []byte          `db:"cmac_key"`
	DailyLimit       *CurrencyAmount `db:"daily_limit"`
	MonthlyLimit     *CurrencyAmount `db:"monthly_limit"`
	LastKnownCounter uint32          `db:"last_known_counter"`
	IsActive         bool            `db:"is_active"`
	IsArchived       bool            `db:"is_archived"`
	IsForeign        bool            `db:"is_foreign"`
	ID               uuid.UUID       `db:"id"`
}

// WithCounter returns a copy of the card with LastKnownCounter advanced.
func (c *Card) WithCounter(counter uint32) *Card {
	updated := *c
	updated.LastKnownCounter = counter
	return &updated
}

// HasSpendingLimit reports whether the card defines any spending limit.
func (c *Card) HasSpendingLimit() bool {
	return c.DailyLimit != nil || c.MonthlyLimit != nil
}

// PaymentStatus tracks a card payment through dispatch.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSettled PaymentStatus = "SETTLED"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// CardPayment is one payment attributed to a card. Settled rows feed the
// trailing spending windows and are never deleted while the card exists.
type CardPayment struct {
	CreatedAt   time.Time     `db:"created_at"`
	Status      PaymentStatus `db:"status"`
	PaymentHash []byte        `db:"payment_hash"`
	AmountMsat  int64         `db:"amount_msat"`
	ID          uuid.UUID     `db:"id"`
	CardID      uuid.UUID     `db:"card_id"`
}
