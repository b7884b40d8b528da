package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// WithdrawRequest is one physical NFC tap, as delivered by either intake
// process. It is immutable; only its hash is ever persisted.
type WithdrawRequest struct {
	Timestamp    time.Time
	NodeID       string
	Invoice      string
	WithdrawHash string
	PiccData     []byte
	Cmac         []byte
}

// NewWithdrawRequest builds a request and computes its withdraw hash.
func NewWithdrawRequest(nodeID string, piccData, cmac []byte, invoice string, timestamp time.Time) WithdrawRequest {
	return WithdrawRequest{
		NodeID:       nodeID,
		PiccData:     piccData,
		Cmac:         cmac,
		Invoice:      invoice,
		Timestamp:    timestamp,
		WithdrawHash: calculateWithdrawHash(nodeID, piccData, cmac, invoice),
	}
}

// calculateWithdrawHash produces the content hash that correlates a withdrawal
// attempt across both local processes and the remote settlement service. The
// remote side computes the same hash, so the exact byte layout is a wire
// contract: lowercased node id, lowercase-hex picc data, lowercase-hex cmac,
// then the raw invoice string.
func calculateWithdrawHash(nodeID string, piccData, cmac []byte, invoice string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(nodeID)))
	h.Write([]byte(hex.EncodeToString(piccData)))
	h.Write([]byte(hex.EncodeToString(cmac)))
	h.Write([]byte(invoice))
	return hex.EncodeToString(h.Sum(nil))
}
