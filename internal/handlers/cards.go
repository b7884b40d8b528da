package handlers

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/models"
	"github.com/kgrady/boltcard-gateway/internal/service"
)

type limitPayload struct {
	Unit   string  `json:"unit,omitempty"`
	Fiat   string  `json:"fiat,omitempty"`
	Amount float64 `json:"amount"`
}

type createCardRequest struct {
	Name         string        `json:"name"`
	UID          string        `json:"uid"`
	DailyLimit   *limitPayload `json:"daily_limit,omitempty"`
	MonthlyLimit *limitPayload `json:"monthly_limit,omitempty"`
	IsForeign    bool          `json:"is_foreign,omitempty"`
}

type updateLimitsRequest struct {
	DailyLimit   *limitPayload `json:"daily_limit,omitempty"`
	MonthlyLimit *limitPayload `json:"monthly_limit,omitempty"`
}

type resetCounterRequest struct {
	Counter uint32 `json:"counter"`
}

type cardResponse struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	UID              string        `json:"uid"`
	LastKnownCounter uint32        `json:"last_known_counter"`
	IsActive         bool          `json:"is_active"`
	IsArchived       bool          `json:"is_archived"`
	IsForeign        bool          `json:"is_foreign"`
	DailyLimit       *limitPayload `json:"daily_limit,omitempty"`
	MonthlyLimit     *limitPayload `json:"monthly_limit,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// createCardResponse additionally exposes the generated key material: the
// caller needs it once, to program the physical tag. It is never returned
// again.
type createCardResponse struct {
	cardResponse
	PiccDataKey string `json:"picc_data_key"`
	CmacKey     string `json:"cmac_key"`
}

// CreateCard handles POST /api/v1/cards
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var body createCardRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	uid, err := hex.DecodeString(body.UID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "uid must be hex encoded")
		return
	}

	card, err := h.cardService.CreateCard(r.Context(), service.CreateCardInput{
		Name:         body.Name,
		UID:          uid,
		DailyLimit:   toCurrencyAmount(body.DailyLimit),
		MonthlyLimit: toCurrencyAmount(body.MonthlyLimit),
		IsForeign:    body.IsForeign,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createCardResponse{
		cardResponse: toCardResponse(card),
		PiccDataKey:  hex.EncodeToString(card.PiccDataKey),
		CmacKey:      hex.EncodeToString(card.CmacKey),
	})
}

// ListCards handles GET /api/v1/cards
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardService.ListCards(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	out := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, toCardResponse(card))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCard handles GET /api/v1/cards/{cardId}
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// FreezeCard handles POST /api/v1/cards/{cardId}/freeze
func (h *Handler) FreezeCard(w http.ResponseWriter, r *http.Request) {
	h.setFrozen(w, r, true)
}

// UnfreezeCard handles POST /api/v1/cards/{cardId}/unfreeze
func (h *Handler) UnfreezeCard(w http.ResponseWriter, r *http.Request) {
	h.setFrozen(w, r, false)
}

func (h *Handler) setFrozen(w http.ResponseWriter, r *http.Request, frozen bool) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	card, err := h.cardService.SetFrozen(r.Context(), id, frozen)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// ArchiveCard handles POST /api/v1/cards/{cardId}/archive
func (h *Handler) ArchiveCard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	card, err := h.cardService.ArchiveCard(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// UpdateLimits handles PUT /api/v1/cards/{cardId}/limits
func (h *Handler) UpdateLimits(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	var body updateLimitsRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	card, err := h.cardService.UpdateLimits(r.Context(), id, toCurrencyAmount(body.DailyLimit), toCurrencyAmount(body.MonthlyLimit))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

// ResetCounter handles POST /api/v1/cards/{cardId}/counter
func (h *Handler) ResetCounter(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cardID(w, r)
	if !ok {
		return
	}

	var body resetCounterRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	card, err := h.cardService.ResetCounter(r.Context(), id, body.Counter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCardResponse(card))
}

func (h *Handler) cardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("cardId"))
	if err != nil {
		writeError(w, http.StatusNotFound, service.ErrCodeCardNotFound, "card not found")
		return uuid.Nil, false
	}
	return id, true
}

func toCurrencyAmount(p *limitPayload) *models.CurrencyAmount {
	if p == nil {
		return nil
	}
	return &models.CurrencyAmount{
		Currency: models.Currency{Unit: models.BitcoinUnit(p.Unit), Fiat: p.Fiat},
		Amount:   p.Amount,
	}
}

func toLimitPayload(a *models.CurrencyAmount) *limitPayload {
	if a == nil {
		return nil
	}
	return &limitPayload{
		Unit:   string(a.Currency.Unit),
		Fiat:   a.Currency.Fiat,
		Amount: a.Amount,
	}
}

func toCardResponse(card *models.Card) cardResponse {
	return cardResponse{
		ID:               card.ID.String(),
		Name:             card.Name,
		UID:              hex.EncodeToString(card.UID),
		LastKnownCounter: card.LastKnownCounter,
		IsActive:         card.IsActive,
		IsArchived:       card.IsArchived,
		IsForeign:        card.IsForeign,
		DailyLimit:       toLimitPayload(card.DailyLimit),
		MonthlyLimit:     toLimitPayload(card.MonthlyLimit),
		CreatedAt:        card.CreatedAt,
		UpdatedAt:        card.UpdatedAt,
	}
}
