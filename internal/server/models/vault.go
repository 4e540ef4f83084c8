// Package models defines server-side data models persisted in the database.
package models

import "time"

// Vault is the per-user reward entitlement record. Exactly one exists per
// owner; it is created lazily on the first accrual and never removed.
type Vault struct {
	// Owner is the user identity the vault belongs to. Immutable.
	Owner string
	// PendingBalance is accrued but not yet eligible for withdrawal.
	PendingBalance uint64
	// WithdrawableBalance is eligible for withdrawal now.
	WithdrawableBalance uint64
	// LastPromotionTime is the unix time of the last promotion or withdrawal.
	LastPromotionTime int64
	// Initialized guards against re-initialisation.
	Initialized bool
	// AuthorityTag lets the vault authority be recomputed and checked.
	AuthorityTag string
	// TotalWithdrawn is the sum of all completed withdrawals.
	TotalWithdrawn uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}
