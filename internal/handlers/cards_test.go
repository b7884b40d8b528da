package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kgrady/boltcard-gateway/internal/models"
	"github.com/kgrady/boltcard-gateway/internal/service"
)

func sampleCard() *models.Card {
	return &models.Card{
		ID:          uuid.New(),
		Name:        "pocket card",
		UID:         []byte{1, 2, 3, 4, 5, 6, 7},
		PiccDataKey: []byte{0: 1, 15: 2},
		CmacKey:     []byte{0: 3, 15: 4},
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// serveCard routes a request through a mux with the card path patterns so
// PathValue is populated.
func serveCard(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/cards", h.CreateCard)
	mux.HandleFunc("GET /api/v1/cards", h.ListCards)
	mux.HandleFunc("GET /api/v1/cards/{cardId}", h.GetCard)
	mux.HandleFunc("POST /api/v1/cards/{cardId}/freeze", h.FreezeCard)
	mux.HandleFunc("POST /api/v1/cards/{cardId}/unfreeze", h.UnfreezeCard)
	mux.HandleFunc("POST /api/v1/cards/{cardId}/archive", h.ArchiveCard)
	mux.HandleFunc("PUT /api/v1/cards/{cardId}/limits", h.UpdateLimits)
	mux.HandleFunc("POST /api/v1/cards/{cardId}/counter", h.ResetCounter)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandler_CreateCard(t *testing.T) {
	t.Run("returns generated keys once", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		card := sampleCard()
		cardManager.On("CreateCard", mock.Anything, mock.MatchedBy(func(in service.CreateCardInput) bool {
			return in.Name == "pocket card" && len(in.UID) == 7
		})).Return(card, nil)

		rec := serveCard(h, http.MethodPost, "/api/v1/cards", `{"name":"pocket card","uid":"01020304050607"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp createCardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, card.ID.String(), resp.ID)
		assert.NotEmpty(t, resp.PiccDataKey)
		assert.NotEmpty(t, resp.CmacKey)
	})

	t.Run("passes limits through", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		cardManager.On("CreateCard", mock.Anything, mock.MatchedBy(func(in service.CreateCardInput) bool {
			return in.DailyLimit != nil && in.DailyLimit.Currency.Fiat == "USD" && in.DailyLimit.Amount == 50
		})).Return(sampleCard(), nil)

		rec := serveCard(h, http.MethodPost, "/api/v1/cards",
			`{"name":"card","uid":"01020304050607","daily_limit":{"fiat":"USD","amount":50}}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("invalid attributes map to bad request", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		cardManager.On("CreateCard", mock.Anything, mock.Anything).
			Return(nil, &service.ServiceError{Code: service.ErrCodeInvalidCard, Message: "card uid must be 7 bytes"})

		rec := serveCard(h, http.MethodPost, "/api/v1/cards", `{"name":"card","uid":"0102"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-hex uid rejected", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		rec := serveCard(h, http.MethodPost, "/api/v1/cards", `{"name":"card","uid":"zz"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_CardLifecycle(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		cardManager.On("ListCards", mock.Anything).Return([]*models.Card{sampleCard(), sampleCard()}, nil)

		rec := serveCard(h, http.MethodGet, "/api/v1/cards", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []cardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		// Listing never exposes key material.
		assert.NotContains(t, rec.Body.String(), "picc_data_key")
	})

	t.Run("freeze", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		card := sampleCard()
		card.IsActive = false
		cardManager.On("SetFrozen", mock.Anything, card.ID, true).Return(card, nil)

		rec := serveCard(h, http.MethodPost, "/api/v1/cards/"+card.ID.String()+"/freeze", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp cardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.IsActive)
	})

	t.Run("unfreeze", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		card := sampleCard()
		cardManager.On("SetFrozen", mock.Anything, card.ID, false).Return(card, nil)

		rec := serveCard(h, http.MethodPost, "/api/v1/cards/"+card.ID.String()+"/unfreeze", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("archive", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		card := sampleCard()
		card.IsArchived = true
		cardManager.On("ArchiveCard", mock.Anything, card.ID).Return(card, nil)

		rec := serveCard(h, http.MethodPost, "/api/v1/cards/"+card.ID.String()+"/archive", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp cardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.IsArchived)
	})

	t.Run("update limits", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		card := sampleCard()
		cardManager.On("UpdateLimits", mock.Anything, card.ID,
			mock.MatchedBy(func(a *models.CurrencyAmount) bool {
				return a != nil && a.Currency.Unit == models.UnitSat && a.Amount == 10000
			}),
			(*models.CurrencyAmount)(nil),
		).Return(card, nil)

		rec := serveCard(h, http.MethodPut, "/api/v1/cards/"+card.ID.String()+"/limits",
			`{"daily_limit":{"unit":"sat","amount":10000}}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reset counter", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		card := sampleCard()
		cardManager.On("ResetCounter", mock.Anything, card.ID, uint32(0)).Return(card, nil)

		rec := serveCard(h, http.MethodPost, "/api/v1/cards/"+card.ID.String()+"/counter", `{"counter":0}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown card id", func(t *testing.T) {
		h, _, cardManager := newTestHandler(t)
		id := uuid.New()
		cardManager.On("GetCard", mock.Anything, id).
			Return(nil, &service.ServiceError{Code: service.ErrCodeCardNotFound, Message: "card not found"})

		rec := serveCard(h, http.MethodGet, "/api/v1/cards/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed card id", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		rec := serveCard(h, http.MethodGet, "/api/v1/cards/not-a-uuid", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
