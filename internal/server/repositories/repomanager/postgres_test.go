package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/movies"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/vaults"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m, err := NewPostgresRepositoryManager(newDB(t))
	require.NoError(t, err)
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)
	m := &PostgresRepositoryManager{}

	assert.IsType(t, &vaults.PostgresRepository{}, m.Vaults(db))
	assert.IsType(t, &ledger.PostgresRepository{}, m.Ledger(db))
	assert.IsType(t, &movies.PostgresRepository{}, m.Movies(db))
	assert.IsType(t, &reviews.PostgresRepository{}, m.Reviews(db))
}

func TestRunMigrations_Success(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}

	m := &PostgresRepositoryManager{}
	require.NoError(t, m.RunMigrations(context.Background(), newDB(t)))
	assert.Equal(t, ".", gotDir)
}

func TestRunMigrations_Error(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	m := &PostgresRepositoryManager{}
	err := m.RunMigrations(context.Background(), newDB(t))
	assert.EqualError(t, err, "boom")
}
