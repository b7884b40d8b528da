package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kgrady/boltcard-gateway/internal/service"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // Nothing useful to do if write fails
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeServiceError maps a pipeline or card-management error to its HTTP
// status. Rejection bodies carry the redacted message, never the internal one.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("unexpected handler error", "error", err)
		writeError(w, http.StatusInternalServerError, service.ErrCodeInternalError, "internal error")
		return
	}

	writeError(w, statusForCode(svcErr.Code), svcErr.Code, svcErr.ResponseMessage())
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeUnknownCard, service.ErrCodeCardNotFound:
		return http.StatusNotFound
	case service.ErrCodeInvalidCard:
		return http.StatusBadRequest
	case service.ErrCodeReplayDetected,
		service.ErrCodeFrozenCard,
		service.ErrCodeDailyLimitExceeded,
		service.ErrCodeMonthlyLimitExceeded,
		service.ErrCodeBadInvoice,
		service.ErrCodeAlreadyPaidInvoice,
		service.ErrCodePaymentPending:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
