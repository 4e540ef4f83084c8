// Package ledger stores token balances per address and the journal of
// mints and transfers that produced them.
package ledger

import (
	"context"

	"github.com/dmitrijs2005/reviewvault/internal/server/models"
)

type Repository interface {
	// Balance returns zero for an address that has never held tokens.
	Balance(ctx context.Context, address string) (uint64, error)
	// Credit adds amount to address, creating the account when needed.
	Credit(ctx context.Context, address string, amount uint64) (uint64, error)
	// Debit removes amount from address or fails with ErrInsufficientBalance.
	Debit(ctx context.Context, address string, amount uint64) (uint64, error)
	Append(ctx context.Context, e *models.LedgerEntry) error
	Entries(ctx context.Context, address string, limit int) ([]models.LedgerEntry, error)
}
