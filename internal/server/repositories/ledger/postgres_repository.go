package ledger

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

func (r *PostgresRepository) Balance(ctx context.Context, address string) (uint64, error) {
	query := `SELECT balance FROM ledger_accounts WHERE address = $1`

	var balance uint64
	err := r.db.QueryRowContext(ctx, query, address).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) Credit(ctx context.Context, address string, amount uint64) (uint64, error) {
	query :=
		`INSERT INTO ledger_accounts (address, balance)
		 VALUES ($1, $2)
		 ON CONFLICT (address) DO UPDATE
			SET balance = ledger_accounts.balance + EXCLUDED.balance, updated_at = now()
		 RETURNING balance
		 `

	var balance uint64
	err := r.db.QueryRowContext(ctx, query, address, amount).Scan(&balance)
	if err != nil {
		if dbx.IsOutOfRange(err) {
			return 0, common.ErrArithmeticOverflow
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) Debit(ctx context.Context, address string, amount uint64) (uint64, error) {
	query :=
		`UPDATE ledger_accounts
		 SET balance = balance - $2, updated_at = now()
		 WHERE address = $1 AND balance >= $2
		 RETURNING balance
		 `

	var balance uint64
	err := r.db.QueryRowContext(ctx, query, address, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrInsufficientBalance
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

func (r *PostgresRepository) Append(ctx context.Context, e *models.LedgerEntry) error {
	query :=
		`INSERT INTO ledger_entries (id, kind, source, destination, amount, authority)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		e.ID, e.Kind, e.Source, e.Destination, e.Amount, e.Authority).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Entries lists the newest entries touching address, newest first.
func (r *PostgresRepository) Entries(ctx context.Context, address string, limit int) ([]models.LedgerEntry, error) {
	query :=
		`SELECT id, kind, source, destination, amount, authority, created_at
		 FROM ledger_entries
		 WHERE source = $1 OR destination = $1
		 ORDER BY id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, address, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Source, &e.Destination, &e.Amount, &e.Authority, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
