package models

import "time"

// ProcessID identifies which OS process claimed a withdrawal. The foreground
// app and the background notification handler run independent instances of
// the pipeline and coordinate only through the claim store.
type ProcessID string

const (
	ProcessForeground ProcessID = "app"
	ProcessBackground ProcessID = "notifier"
)

// Valid reports whether p is one of the known process identities.
func (p ProcessID) Valid() bool {
	return p == ProcessForeground || p == ProcessBackground
}

// ClaimRecord asserts that one process has taken ownership of a withdrawal.
// Records are append-only and pruned by age; at most one record ever exists
// per withdraw hash.
type ClaimRecord struct {
	Date         time.Time `json:"date"`
	WithdrawHash string    `json:"withdraw_hash"`
	Process      ProcessID `json:"process"`
}
