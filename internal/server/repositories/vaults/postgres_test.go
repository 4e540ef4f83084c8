package vaults

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vaultColumns = []string{"owner", "pending_balance", "withdrawable_balance", "last_promotion_time",
	"initialized", "authority_tag", "total_withdrawn", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestGet_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT\s+owner,.*FROM\s+vaults\s+WHERE\s+owner\s*=\s*\$1$`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(vaultColumns).
			AddRow("alice", "5000000000", "0", int64(300), true, "v1.tag", "0", now, now))

	v, err := repo.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", v.Owner)
	assert.Equal(t, common.RewardQuantum, v.PendingBalance)
	assert.Equal(t, int64(300), v.LastPromotionTime)
	assert.True(t, v.Initialized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+vaults`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNoSuchVault)
}

func TestGet_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+vaults`).
		WithArgs("alice").
		WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "alice")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetForUpdate_LocksRow(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)FROM\s+vaults\s+WHERE\s+owner\s*=\s*\$1\s+FOR\s+UPDATE$`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(vaultColumns).
			AddRow("alice", "0", "5000000000", int64(0), true, "v1.tag", "0", now, now))

	v, err := repo.GetForUpdate(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, common.RewardQuantum, v.WithdrawableBalance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate(t *testing.T) {
	q := `(?s)^INSERT\s+INTO\s+vaults\s*\(.*\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*ON\s+CONFLICT\s*\(owner\)\s*DO\s+NOTHING\s*$`
	v := &models.Vault{Owner: "alice", LastPromotionTime: 10, Initialized: true, AuthorityTag: "v1.tag"}

	t.Run("inserted", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).
			WithArgs("alice", uint64(0), uint64(0), int64(10), true, "v1.tag", uint64(0)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), v))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already exists", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Create(context.Background(), v), common.ErrDuplicateVault)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnError(errors.New("db down"))

		err := repo.Create(context.Background(), v)
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrDuplicateVault)
	})
}

func TestSave(t *testing.T) {
	q := `(?s)^UPDATE\s+vaults\s+SET\s+pending_balance\s*=\s*\$2,.*WHERE\s+owner\s*=\s*\$1\s+AND\s+initialized\s*$`
	v := &models.Vault{Owner: "alice", PendingBalance: 1, WithdrawableBalance: 2, LastPromotionTime: 300, TotalWithdrawn: 3}

	t.Run("updated", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).
			WithArgs("alice", uint64(1), uint64(2), int64(300), uint64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Save(context.Background(), v))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Save(context.Background(), v), common.ErrNoSuchVault)
	})

	t.Run("range violation", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(q).WillReturnError(&pgconn.PgError{Code: "23514"})

		assert.ErrorIs(t, repo.Save(context.Background(), v), common.ErrArithmeticOverflow)
	})
}
