// Package vault implements the reward vault state machine: lazy creation,
// accrual into the pending bucket, cooldown-gated promotion into the
// withdrawable bucket, and settlement of a withdrawal.
//
// Every function here is pure. Persistence and locking live in the services
// and repositories packages.
package vault

import (
	"fmt"
	"math/bits"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/timex"
)

// New returns the initial record for owner.
func New(owner string, now int64, authorityTag string) models.Vault {
	return models.Vault{
		Owner:             owner,
		LastPromotionTime: now,
		Initialized:       true,
		AuthorityTag:      authorityTag,
	}
}

// CooldownElapsed reports whether the cooldown window has passed since the
// last promotion. A clock reading earlier than the last promotion counts as
// zero elapsed time.
func CooldownElapsed(now int64, v models.Vault) bool {
	return timex.ElapsedSeconds(now, v.LastPromotionTime) >= uint64(common.CooldownSeconds)
}

// Promote moves the pending balance into the withdrawable bucket once the
// cooldown has elapsed, and stamps now as the promotion time. Before that it
// returns v unchanged. Calling it again with the same now is a no-op.
func Promote(now int64, v models.Vault) (models.Vault, error) {
	if !CooldownElapsed(now, v) {
		return v, nil
	}
	w, err := Add(v.WithdrawableBalance, v.PendingBalance)
	if err != nil {
		return v, fmt.Errorf("promote pending balance: %w", err)
	}
	v.WithdrawableBalance = w
	v.PendingBalance = 0
	v.LastPromotionTime = now
	return v, nil
}

// Accrue promotes against the existing balances first and only then adds
// quantum to pending, so a fresh reward is never promotable in the same call.
func Accrue(now int64, v models.Vault, quantum uint64) (models.Vault, error) {
	v, err := Promote(now, v)
	if err != nil {
		return v, err
	}
	p, err := Add(v.PendingBalance, quantum)
	if err != nil {
		return v, fmt.Errorf("accrue reward: %w", err)
	}
	v.PendingBalance = p
	return v, nil
}

// Settle records a completed withdrawal of the whole withdrawable balance.
// The promotion time never moves backwards.
func Settle(now int64, v models.Vault) (models.Vault, uint64, error) {
	amount := v.WithdrawableBalance
	if amount == 0 {
		return v, 0, common.ErrNothingWithdrawable
	}
	total, err := Add(v.TotalWithdrawn, amount)
	if err != nil {
		return v, 0, fmt.Errorf("settle withdrawal: %w", err)
	}
	v.WithdrawableBalance = 0
	v.TotalWithdrawn = total
	if now > v.LastPromotionTime {
		v.LastPromotionTime = now
	}
	return v, amount, nil
}

// Add returns a+b or ErrArithmeticOverflow.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, common.ErrArithmeticOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrArithmeticOverflow when b > a.
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, common.ErrArithmeticOverflow
	}
	return diff, nil
}

// Entitlement is pending + withdrawable + withdrawn: everything ever granted.
func Entitlement(v models.Vault) (uint64, error) {
	s, err := Add(v.PendingBalance, v.WithdrawableBalance)
	if err != nil {
		return 0, err
	}
	return Add(s, v.TotalWithdrawn)
}
