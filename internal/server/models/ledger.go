package models

import "time"

// Ledger entry kinds.
const (
	EntryKindMint     = "mint"
	EntryKindTransfer = "transfer"
)

// LedgerAccount is a token balance held at an address. Vault sub-accounts are
// addressed by the vault authority address; owners by their user id.
type LedgerAccount struct {
	Address   string
	Balance   uint64
	UpdatedAt time.Time
}

// LedgerEntry is one journaled mint or transfer.
type LedgerEntry struct {
	ID          string
	Kind        string
	Source      string
	Destination string
	Amount      uint64
	Authority   string
	CreatedAt   time.Time
}
