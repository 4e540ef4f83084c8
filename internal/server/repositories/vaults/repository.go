// Package vaults persists vault records, one row per owner.
package vaults

import (
	"context"

	"github.com/dmitrijs2005/reviewvault/internal/server/models"
)

// Repository is the vault ledger. GetForUpdate must be called inside a
// transaction: it holds the row lock until commit, which is what makes a
// read-modify-write on one vault indivisible.
type Repository interface {
	Get(ctx context.Context, owner string) (*models.Vault, error)
	GetForUpdate(ctx context.Context, owner string) (*models.Vault, error)
	Create(ctx context.Context, v *models.Vault) error
	Save(ctx context.Context, v *models.Vault) error
}
