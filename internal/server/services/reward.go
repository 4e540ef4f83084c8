package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/dbx"
	"github.com/dmitrijs2005/reviewvault/internal/logging"
	"github.com/dmitrijs2005/reviewvault/internal/server/authority"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/server/receipts"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/reviewvault/internal/server/tokenledger"
	"github.com/dmitrijs2005/reviewvault/internal/server/vault"
	"github.com/jonboulle/clockwork"
	"github.com/segmentio/ksuid"
)

// TokenLedger is the part of the token ledger the reward flow depends on.
type TokenLedger interface {
	Mint(ctx context.Context, account string, amount uint64, proof authority.Proof) (*models.LedgerEntry, error)
	Transfer(ctx context.Context, source, destination string, amount uint64, proof authority.Proof) (*models.LedgerEntry, error)
	Balance(ctx context.Context, address string) (uint64, error)
}

// LedgerFactory binds a TokenLedger to a transaction or the plain pool.
type LedgerFactory func(db dbx.DBTX) TokenLedger

// VaultSummary is a read-only view of a vault and the balances around it.
type VaultSummary struct {
	Vault models.Vault
	// WithdrawableNow is what Withdraw would move at the time of the call.
	WithdrawableNow uint64
	// CooldownRemaining is the number of seconds until pending rewards can
	// be promoted; zero when promotion is already possible.
	CooldownRemaining int64
	PoolAddress       string
	PoolBalance       uint64
	WalletBalance     uint64
}

// RewardService grants review rewards into vaults and executes withdrawals
// out of them.
type RewardService struct {
	db       *sql.DB
	vaults   *VaultService
	capsule  *authority.Capsule
	ledger   LedgerFactory
	receipts receipts.Store
	clock    clockwork.Clock
	logger   logging.Logger
}

func NewRewardService(db *sql.DB, m repomanager.RepositoryManager, vaults *VaultService, capsule *authority.Capsule,
	store receipts.Store, clock clockwork.Clock, logger logging.Logger) *RewardService {
	return &RewardService{
		db:      db,
		vaults:  vaults,
		capsule: capsule,
		ledger: func(db dbx.DBTX) TokenLedger {
			return tokenledger.New(m.Ledger(db), capsule)
		},
		receipts: store,
		clock:    clock,
		logger:   logger.With("module", "rewards"),
	}
}

// OnReviewAccepted grants one reward quantum to reviewer. It must run inside
// the transaction that accepted the review so both commit or abort together.
func (s *RewardService) OnReviewAccepted(ctx context.Context, tx dbx.DBTX, reviewer string) (*models.Vault, error) {
	if !dbx.InTx(tx) {
		return nil, fmt.Errorf("%w: review reward outside a transaction", common.ErrorInternal)
	}
	return s.accrue(ctx, tx, reviewer, common.RewardQuantum)
}

// Accrue grants quantum to owner in its own transaction.
func (s *RewardService) Accrue(ctx context.Context, owner string, quantum uint64) (*models.Vault, error) {
	if quantum == 0 {
		return nil, fmt.Errorf("%w: quantum must be positive", common.ErrorValidation)
	}

	var out *models.Vault
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		out, err = s.accrue(ctx, tx, owner, quantum)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// accrue promotes against the existing balances, adds quantum to pending and
// mints quantum into the vault's pool sub-account.
func (s *RewardService) accrue(ctx context.Context, tx dbx.DBTX, owner string, quantum uint64) (*models.Vault, error) {
	v, err := s.vaults.UpsertTx(ctx, tx, owner, func(ctx context.Context, tx dbx.DBTX, now int64, v models.Vault, a *authority.Authority) (models.Vault, error) {
		next, err := vault.Accrue(now, v, quantum)
		if err != nil {
			return v, err
		}

		mint, err := s.capsule.MintAuthority()
		if err != nil {
			return v, err
		}
		proof := mint.Authorize(tokenledger.MintPayload(a.Address, quantum))
		if _, err := s.ledger(tx).Mint(ctx, a.Address, quantum, proof); err != nil {
			return v, err
		}

		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "reward accrued", "owner", owner, "quantum", quantum, "pending", v.PendingBalance)
	return v, nil
}

// Withdraw promotes, then transfers the whole withdrawable balance from the
// vault's pool sub-account to the owner's account and zeroes it. It returns
// the amount transferred.
func (s *RewardService) Withdraw(ctx context.Context, owner string) (uint64, error) {
	var receipt *models.WithdrawalReceipt

	_, err := s.vaults.Update(ctx, owner, func(ctx context.Context, tx dbx.DBTX, now int64, v models.Vault, a *authority.Authority) (models.Vault, error) {
		promoted, err := vault.Promote(now, v)
		if err != nil {
			return v, err
		}

		next, amount, err := vault.Settle(now, promoted)
		if err != nil {
			return v, err
		}

		proof := a.Authorize(tokenledger.TransferPayload(a.Address, owner, amount))
		entry, err := s.ledger(tx).Transfer(ctx, a.Address, owner, amount, proof)
		if err != nil {
			return v, err
		}

		receipt = &models.WithdrawalReceipt{
			ID:          ksuid.New().String(),
			Owner:       owner,
			Source:      a.Address,
			Amount:      amount,
			PromotedAt:  next.LastPromotionTime,
			LedgerEntry: entry.ID,
		}
		return next, nil
	})
	if err != nil {
		return 0, err
	}

	receipt.CommittedAt = s.clock.Now().UTC()
	s.logger.Info(ctx, "withdrawal committed", "owner", owner, "amount", receipt.Amount, "entry", receipt.LedgerEntry)
	s.archive(ctx, receipt)

	return receipt.Amount, nil
}

// archive stores the receipt. Failure is logged and otherwise ignored: the
// withdrawal has already committed.
func (s *RewardService) archive(ctx context.Context, r *models.WithdrawalReceipt) {
	if err := s.receipts.Put(ctx, r); err != nil {
		s.logger.Warn(ctx, "receipt not archived", "owner", r.Owner, "receipt", r.ID, "error", err)
	}
}

// Summary reports the vault of owner together with pool and wallet balances.
func (s *RewardService) Summary(ctx context.Context, owner string) (*VaultSummary, error) {
	v, err := s.vaults.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	a, err := s.capsule.Check(authority.DomainVault, owner, v.AuthorityTag)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().Unix()
	promoted, err := vault.Promote(now, *v)
	if err != nil {
		return nil, err
	}

	ledger := s.ledger(s.db)
	pool, err := ledger.Balance(ctx, a.Address)
	if err != nil {
		return nil, err
	}
	wallet, err := ledger.Balance(ctx, owner)
	if err != nil {
		return nil, err
	}

	var remaining int64
	if !vault.CooldownElapsed(now, *v) {
		remaining = common.CooldownSeconds - (now - v.LastPromotionTime)
		if remaining > common.CooldownSeconds {
			remaining = common.CooldownSeconds
		}
	}

	return &VaultSummary{
		Vault:             *v,
		WithdrawableNow:   promoted.WithdrawableBalance,
		CooldownRemaining: remaining,
		PoolAddress:       a.Address,
		PoolBalance:       pool,
		WalletBalance:     wallet,
	}, nil
}
