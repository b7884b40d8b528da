// Package settlement reports withdrawal outcomes to the remote settlement
// service. Delivery is strictly best effort: the authorization decision is
// already made by the time a report is sent, and nothing here can change it.
package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Notifier posts withdrawal results to the settlement endpoint.
type Notifier struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewNotifier creates a Notifier. An empty url disables reporting.
func NewNotifier(url string, timeout time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

type resultBody struct {
	NodeID       string `json:"node_id"`
	WithdrawHash string `json:"withdraw_hash"`
	ErrMessage   string `json:"err_message,omitempty"`
}

// PostResult reports one withdrawal outcome. errMessage is empty for an
// authorized withdrawal. The return value exists for observability only;
// callers never branch on it.
func (n *Notifier) PostResult(ctx context.Context, nodeID, withdrawHash, errMessage string) bool {
	if n.url == "" {
		return false
	}

	body, err := json.Marshal(resultBody{
		NodeID:       nodeID,
		WithdrawHash: withdrawHash,
		ErrMessage:   errMessage,
	})
	if err != nil {
		n.logger.Error("failed to encode settlement report", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("failed to create settlement request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("settlement report failed",
			"withdraw_hash", withdrawHash,
			"error", err,
		)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("settlement report rejected",
			"withdraw_hash", withdrawHash,
			"status", resp.StatusCode,
		)
		return false
	}

	n.logger.Debug("settlement report delivered", "withdraw_hash", withdrawHash)
	return true
}
