// Package registry provides data access for linked cards and their payment
// history.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/db"
	"github.com/kgrady/boltcard-gateway/internal/models"
)

// ErrCardNotFound is returned when a card id matches no row.
var ErrCardNotFound = errors.New("card not found")

// Store defines the interface for card and payment data access
type Store interface {
	ListCards(ctx context.Context) ([]*models.Card, error)
	FindCard(ctx context.Context, id uuid.UUID) (*models.Card, error)
	CreateCard(ctx context.Context, card *models.Card) error
	SaveCard(ctx context.Context, card *models.Card) error
	PaymentsSince(ctx context.Context, cardID uuid.UUID, since time.Time) ([]*models.CardPayment, error)
	RecordPayment(ctx context.Context, payment *models.CardPayment) error
	UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status models.PaymentStatus) error
}

// store implements Store on postgres
type store struct {
	db *db.DB
}

// NewStore creates a postgres-backed Store
func NewStore(database *db.DB) Store {
	return &store{db: database}
}

const cardColumns = `
	id, name, uid, picc_data_key, cmac_key, last_known_counter,
	is_active, is_archived, is_foreign, daily_limit, monthly_limit,
	created_at, updated_at
`

// ListCards returns all non-archived cards in registry (creation) order.
// The matcher relies on this ordering: the first authenticating card wins.
func (s *store) ListCards(ctx context.Context) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE is_archived = FALSE
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}

	return cards, nil
}

// FindCard retrieves a card by id, archived or not.
func (s *store) FindCard(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE id = $1
	`

	row := s.db.QueryRowContext(ctx, query, id)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// CreateCard inserts a new card.
func (s *store) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (
			id, name, uid, picc_data_key, cmac_key, last_known_counter,
			is_active, is_archived, is_foreign, daily_limit, monthly_limit,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`

	dailyLimit, monthlyLimit, err := marshalLimits(card)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query,
		card.ID, card.Name, card.UID, card.PiccDataKey, card.CmacKey,
		card.LastKnownCounter, card.IsActive, card.IsArchived, card.IsForeign,
		dailyLimit, monthlyLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// SaveCard persists counter, flag and limit changes. Key material and UID are
// immutable after linking.
func (s *store) SaveCard(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE cards
		SET name = $2, last_known_counter = $3, is_active = $4,
		    is_archived = $5, daily_limit = $6, monthly_limit = $7,
		    updated_at = NOW()
		WHERE id = $1
	`

	dailyLimit, monthlyLimit, err := marshalLimits(card)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, query,
		card.ID, card.Name, card.LastKnownCounter, card.IsActive,
		card.IsArchived, dailyLimit, monthlyLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrCardNotFound
	}
	return nil
}

// PaymentsSince returns a card's payments created at or after the given time.
func (s *store) PaymentsSince(ctx context.Context, cardID uuid.UUID, since time.Time) ([]*models.CardPayment, error) {
	query := `
		SELECT id, card_id, payment_hash, amount_msat, status, created_at
		FROM card_payments
		WHERE card_id = $1 AND created_at >= $2
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, cardID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch card payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.CardPayment
	for rows.Next() {
		var payment models.CardPayment
		if err := rows.Scan(
			&payment.ID, &payment.CardID, &payment.PaymentHash,
			&payment.AmountMsat, &payment.Status, &payment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card payment: %w", err)
		}
		payments = append(payments, &payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate card payments: %w", err)
	}

	return payments, nil
}

// RecordPayment inserts a payment row.
func (s *store) RecordPayment(ctx context.Context, payment *models.CardPayment) error {
	query := `
		INSERT INTO card_payments (id, card_id, payment_hash, amount_msat, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	createdAt := payment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		payment.ID, payment.CardID, payment.PaymentHash,
		payment.AmountMsat, payment.Status, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

// UpdatePaymentStatus moves a payment to its terminal status.
func (s *store) UpdatePaymentStatus(ctx context.Context, paymentID uuid.UUID, status models.PaymentStatus) error {
	query := `
		UPDATE card_payments
		SET status = $2
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, paymentID, status)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var card models.Card
	var dailyLimit, monthlyLimit []byte

	err := row.Scan(
		&card.ID, &card.Name, &card.UID, &card.PiccDataKey, &card.CmacKey,
		&card.LastKnownCounter, &card.IsActive, &card.IsArchived, &card.IsForeign,
		&dailyLimit, &monthlyLimit, &card.CreatedAt, &card.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan card: %w", err)
	}

	if card.DailyLimit, err = unmarshalLimit(dailyLimit); err != nil {
		return nil, err
	}
	if card.MonthlyLimit, err = unmarshalLimit(monthlyLimit); err != nil {
		return nil, err
	}

	return &card, nil
}

// Limits are stored as JSON so a currency-tagged amount stays one column.
func marshalLimits(card *models.Card) (daily, monthly []byte, err error) {
	if card.DailyLimit != nil {
		if daily, err = json.Marshal(card.DailyLimit); err != nil {
			return nil, nil, fmt.Errorf("failed to encode daily limit: %w", err)
		}
	}
	if card.MonthlyLimit != nil {
		if monthly, err = json.Marshal(card.MonthlyLimit); err != nil {
			return nil, nil, fmt.Errorf("failed to encode monthly limit: %w", err)
		}
	}
	return daily, monthly, nil
}

func unmarshalLimit(raw []byte) (*models.CurrencyAmount, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var limit models.CurrencyAmount
	if err := json.Unmarshal(raw, &limit); err != nil {
		return nil, fmt.Errorf("failed to decode limit: %w", err)
	}
	return &limit, nil
}
