// Package services contains server-side business logic. This file implements
// VaultService, the per-owner vault ledger: reads, explicit creation and
// locked read-modify-write updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/dbx"
	"github.com/dmitrijs2005/reviewvault/internal/server/authority"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/reviewvault/internal/server/vault"
	"github.com/jonboulle/clockwork"
)

// Mutation computes the next state of a locked vault. It runs inside the
// transaction that holds the row lock, so any ledger call it makes through
// tx commits or aborts together with the new state. now is the unix time of
// the update and a is the vault's authority, already checked against the
// recorded tag.
type Mutation func(ctx context.Context, tx dbx.DBTX, now int64, v models.Vault, a *authority.Authority) (models.Vault, error)

type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	capsule     *authority.Capsule
	clock       clockwork.Clock
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, capsule *authority.Capsule, clock clockwork.Clock) *VaultService {
	return &VaultService{db: db, repomanager: m, capsule: capsule, clock: clock}
}

// Get returns the stored vault of owner or ErrNoSuchVault.
func (s *VaultService) Get(ctx context.Context, owner string) (*models.Vault, error) {
	return s.repomanager.Vaults(s.db).Get(ctx, owner)
}

// Create initializes the vault of owner. A second call fails with
// ErrDuplicateVault and leaves the existing vault unchanged.
func (s *VaultService) Create(ctx context.Context, owner string) (*models.Vault, error) {
	a, err := s.capsule.Derive(authority.DomainVault, owner)
	if err != nil {
		return nil, err
	}
	v := vault.New(owner, s.clock.Now().Unix(), a.Tag)
	if err := s.repomanager.Vaults(s.db).Create(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Update runs mutation on the vault of owner in its own transaction.
func (s *VaultService) Update(ctx context.Context, owner string, mutation Mutation) (*models.Vault, error) {
	var out *models.Vault
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		out, err = s.UpdateTx(ctx, tx, owner, mutation)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTx locks the vault of owner within tx and applies mutation. A
// missing vault is ErrNoSuchVault.
func (s *VaultService) UpdateTx(ctx context.Context, tx dbx.DBTX, owner string, mutation Mutation) (*models.Vault, error) {
	return s.update(ctx, tx, owner, false, mutation)
}

// UpsertTx is UpdateTx that first creates the vault when it does not exist.
func (s *VaultService) UpsertTx(ctx context.Context, tx dbx.DBTX, owner string, mutation Mutation) (*models.Vault, error) {
	return s.update(ctx, tx, owner, true, mutation)
}

func (s *VaultService) update(ctx context.Context, tx dbx.DBTX, owner string, create bool, mutation Mutation) (*models.Vault, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", common.ErrorValidation)
	}

	repo := s.repomanager.Vaults(tx)
	now := s.clock.Now().Unix()

	v, err := repo.GetForUpdate(ctx, owner)
	if errors.Is(err, common.ErrNoSuchVault) && create {
		v, err = s.createLocked(ctx, tx, owner, now)
	}
	if err != nil {
		return nil, err
	}

	a, err := s.capsule.Check(authority.DomainVault, owner, v.AuthorityTag)
	if err != nil {
		return nil, err
	}

	next, err := mutation(ctx, tx, now, *v, a)
	if err != nil {
		return nil, err
	}
	next.Owner = v.Owner
	next.AuthorityTag = v.AuthorityTag
	next.Initialized = true

	if err := repo.Save(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// createLocked inserts a fresh vault inside tx. When a concurrent
// transaction created it first, the existing row is locked and returned.
func (s *VaultService) createLocked(ctx context.Context, tx dbx.DBTX, owner string, now int64) (*models.Vault, error) {
	a, err := s.capsule.Derive(authority.DomainVault, owner)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Vaults(tx)
	v := vault.New(owner, now, a.Tag)

	err = repo.Create(ctx, &v)
	switch {
	case err == nil:
		return &v, nil
	case errors.Is(err, common.ErrDuplicateVault):
		return repo.GetForUpdate(ctx, owner)
	default:
		return nil, err
	}
}
