package models

import "time"

// WithdrawalReceipt describes a committed withdrawal. It is archived after
// the fact and is not part of the vault state.
type WithdrawalReceipt struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Source      string    `json:"source"`
	Amount      uint64    `json:"amount"`
	PromotedAt  int64     `json:"last_promotion_time"`
	CommittedAt time.Time `json:"committed_at"`
	LedgerEntry string    `json:"ledger_entry"`
}
