package handlers

import (
	"encoding/hex"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kgrady/boltcard-gateway/internal/models"
	"github.com/kgrady/boltcard-gateway/internal/ntag"
	"github.com/kgrady/boltcard-gateway/internal/service"
)

type withdrawRequest struct {
	PiccData string `json:"picc_data"`
	Cmac     string `json:"cmac"`
	Invoice  string `json:"invoice"`
	Process  string `json:"process"`
}

type withdrawResponse struct {
	Status       string `json:"status"`
	WithdrawHash string `json:"withdraw_hash"`
	CardID       string `json:"card_id,omitempty"`
	AmountMsat   int64  `json:"amount_msat,omitempty"`
	PaymentID    string `json:"payment_id,omitempty"`
}

type paymentResultRequest struct {
	Status string `json:"status"`
}

// Withdraw handles POST /api/v1/withdraw
func (h *Handler) Withdraw(nodeID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body withdrawRequest
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
			return
		}

		piccData, err := hex.DecodeString(body.PiccData)
		if err != nil || len(piccData) != ntag.PiccDataLength {
			writeError(w, http.StatusBadRequest, "bad_request", "picc_data must be 16 hex-encoded bytes")
			return
		}
		mac, err := hex.DecodeString(body.Cmac)
		if err != nil || len(mac) != ntag.CmacLength {
			writeError(w, http.StatusBadRequest, "bad_request", "cmac must be 8 hex-encoded bytes")
			return
		}
		if body.Invoice == "" {
			writeError(w, http.StatusBadRequest, "bad_request", "invoice is required")
			return
		}
		process := models.ProcessID(body.Process)
		if !process.Valid() {
			writeError(w, http.StatusBadRequest, "bad_request", "process must be app or notifier")
			return
		}

		req := models.NewWithdrawRequest(nodeID, piccData, mac, body.Invoice, time.Now())

		status, err := h.withdrawService.CheckWithdraw(r.Context(), req, process)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}

		resp := withdrawResponse{
			WithdrawHash: req.WithdrawHash,
			CardID:       status.Card.ID.String(),
		}
		switch status.Decision {
		case service.DecisionSendPayment:
			resp.Status = "authorized"
			resp.AmountMsat = status.AmountMsat
			resp.PaymentID = status.PaymentID.String()
		case service.DecisionHandledElsewhere:
			resp.Status = "handled_elsewhere"
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// ReportPaymentResult handles POST /api/v1/withdraw/{paymentId}/result. The
// process that dispatched the payment calls back here once the outcome is
// known.
func (h *Handler) ReportPaymentResult(w http.ResponseWriter, r *http.Request) {
	paymentID, err := uuid.Parse(r.PathValue("paymentId"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "payment not found")
		return
	}

	var body paymentResultRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	var settled bool
	switch body.Status {
	case "settled":
		settled = true
	case "failed":
		settled = false
	default:
		writeError(w, http.StatusBadRequest, "bad_request", "status must be settled or failed")
		return
	}

	if err := h.withdrawService.ResolvePayment(r.Context(), paymentID, settled); err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}
