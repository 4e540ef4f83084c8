package vaults

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/dbx"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectVault = `SELECT owner, pending_balance, withdrawable_balance, last_promotion_time,
		initialized, authority_tag, total_withdrawn, created_at, updated_at
		FROM vaults
		WHERE owner = $1`

func (r *PostgresRepository) Get(ctx context.Context, owner string) (*models.Vault, error) {
	return r.get(ctx, selectVault, owner)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, owner string) (*models.Vault, error) {
	return r.get(ctx, selectVault+`
		FOR UPDATE`, owner)
}

func (r *PostgresRepository) get(ctx context.Context, query, owner string) (*models.Vault, error) {
	v := &models.Vault{}
	err := r.db.QueryRowContext(ctx, query, owner).Scan(
		&v.Owner, &v.PendingBalance, &v.WithdrawableBalance, &v.LastPromotionTime,
		&v.Initialized, &v.AuthorityTag, &v.TotalWithdrawn, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoSuchVault
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

// Create inserts a new vault. An existing row for the owner is left untouched
// and reported as ErrDuplicateVault.
func (r *PostgresRepository) Create(ctx context.Context, v *models.Vault) error {
	query :=
		`INSERT INTO vaults (owner, pending_balance, withdrawable_balance, last_promotion_time,
			initialized, authority_tag, total_withdrawn)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (owner) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query,
		v.Owner, v.PendingBalance, v.WithdrawableBalance, v.LastPromotionTime,
		v.Initialized, v.AuthorityTag, v.TotalWithdrawn)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrDuplicateVault
	}
	return nil
}

// Save writes the mutable columns of an existing vault.
func (r *PostgresRepository) Save(ctx context.Context, v *models.Vault) error {
	query :=
		`UPDATE vaults
		 SET pending_balance = $2, withdrawable_balance = $3, last_promotion_time = $4,
			total_withdrawn = $5, updated_at = now()
		 WHERE owner = $1 AND initialized
		 `

	res, err := r.db.ExecContext(ctx, query,
		v.Owner, v.PendingBalance, v.WithdrawableBalance, v.LastPromotionTime, v.TotalWithdrawn)
	if err != nil {
		if dbx.IsOutOfRange(err) {
			return common.ErrArithmeticOverflow
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNoSuchVault
	}
	return nil
}
