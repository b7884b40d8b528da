package service

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/models"
	"github.com/kgrady/boltcard-gateway/internal/registry"
)

// CardService handles card lifecycle operations: linking, freezing,
// archiving and limit changes.
type CardService struct {
	store  registry.Store
	cache  *registry.Cache
	logger *slog.Logger
}

// NewCardService creates a CardService.
func NewCardService(store registry.Store, cache *registry.Cache, logger *slog.Logger) *CardService {
	return &CardService{store: store, cache: cache, logger: logger}
}

// CreateCardInput carries the caller-supplied fields for linking a card.
// The UID is the 7-byte tag identifier recorded at link time.
type CreateCardInput struct {
	Name         string
	UID          []byte
	DailyLimit   *models.CurrencyAmount
	MonthlyLimit *models.CurrencyAmount
	IsForeign    bool
}

// CreateCard links a new card. Fresh AES-128 keys are generated here and
// must be programmed onto the physical tag by the caller.
func (s *CardService) CreateCard(ctx context.Context, input CreateCardInput) (*models.Card, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ServiceError{Code: ErrCodeInvalidCard, Message: "card name is required"}
	}
	if len(input.UID) != 7 {
		return nil, &ServiceError{Code: ErrCodeInvalidCard, Message: "card uid must be 7 bytes"}
	}
	if err := validateLimit(input.DailyLimit); err != nil {
		return nil, err
	}
	if err := validateLimit(input.MonthlyLimit); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	card := &models.Card{
		ID:           uuid.New(),
		Name:         name,
		UID:          input.UID,
		PiccDataKey:  newAESKey(),
		CmacKey:      newAESKey(),
		DailyLimit:   input.DailyLimit,
		MonthlyLimit: input.MonthlyLimit,
		IsActive:     true,
		IsForeign:    input.IsForeign,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateCard(ctx, card); err != nil {
		return nil, internalError(nil, "failed to create card", err)
	}
	s.reloadCache(ctx)

	s.logger.Info("card created", "card_id", card.ID, "name", card.Name)
	return card, nil
}

// ListCards returns all non-archived cards.
func (s *CardService) ListCards(ctx context.Context) ([]*models.Card, error) {
	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, internalError(nil, "failed to list cards", err)
	}
	return cards, nil
}

// GetCard retrieves one card by id.
func (s *CardService) GetCard(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	return s.findCard(ctx, id)
}

// SetFrozen freezes or unfreezes a card. A frozen card still advances its
// tap counter but every withdrawal is rejected.
func (s *CardService) SetFrozen(ctx context.Context, id uuid.UUID, frozen bool) (*models.Card, error) {
	return s.update(ctx, id, func(card *models.Card) error {
		card.IsActive = !frozen
		return nil
	})
}

// ArchiveCard retires a card permanently. Archived cards never match taps
// and are excluded from listings.
func (s *CardService) ArchiveCard(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	return s.update(ctx, id, func(card *models.Card) error {
		card.IsArchived = true
		card.IsActive = false
		return nil
	})
}

// UpdateLimits replaces both spending limits. A nil limit removes the
// corresponding window.
func (s *CardService) UpdateLimits(ctx context.Context, id uuid.UUID, daily, monthly *models.CurrencyAmount) (*models.Card, error) {
	if err := validateLimit(daily); err != nil {
		return nil, err
	}
	if err := validateLimit(monthly); err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(card *models.Card) error {
		card.DailyLimit = daily
		card.MonthlyLimit = monthly
		return nil
	})
}

// ResetCounter overwrites the card's last known counter. Used after a tag
// is re-provisioned, which resets its hardware counter to zero.
func (s *CardService) ResetCounter(ctx context.Context, id uuid.UUID, counter uint32) (*models.Card, error) {
	return s.update(ctx, id, func(card *models.Card) error {
		card.LastKnownCounter = counter
		return nil
	})
}

func (s *CardService) update(ctx context.Context, id uuid.UUID, mutate func(*models.Card) error) (*models.Card, error) {
	card, err := s.findCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(card); err != nil {
		return nil, err
	}
	card.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveCard(ctx, card); err != nil {
		return nil, internalError(card, "failed to save card", err)
	}
	s.reloadCache(ctx)
	return card, nil
}

func (s *CardService) findCard(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	card, err := s.store.FindCard(ctx, id)
	if err != nil {
		if errors.Is(err, registry.ErrCardNotFound) {
			return nil, &ServiceError{Code: ErrCodeCardNotFound, Message: "card not found"}
		}
		return nil, internalError(nil, "failed to load card", err)
	}
	return card, nil
}

func (s *CardService) reloadCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Reload(ctx); err != nil {
		s.logger.Warn("card cache reload failed after write", "error", err)
	}
}

func validateLimit(limit *models.CurrencyAmount) error {
	if limit == nil {
		return nil
	}
	if limit.Amount <= 0 {
		return &ServiceError{Code: ErrCodeInvalidCard, Message: "limit amount must be positive"}
	}
	if limit.Currency.IsFiat() {
		if len(limit.Currency.Fiat) != 3 {
			return &ServiceError{Code: ErrCodeInvalidCard, Message: "fiat currency must be a 3-letter code"}
		}
		return nil
	}
	if limit.Currency.Unit.MsatPerUnit() == 0 {
		return &ServiceError{Code: ErrCodeInvalidCard, Message: "unknown bitcoin unit"}
	}
	return nil
}

func newAESKey() []byte {
	key := make([]byte, 16)
	if _, err := rand.Read(key); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return key
}
