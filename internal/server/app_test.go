package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/reviewvault/internal/server/config"
	"github.com/dmitrijs2005/reviewvault/internal/server/receipts"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	return c
}

// stubSeams points the package seams at sqlmock and restores them afterwards.
func stubSeams(t *testing.T, migrateErr error) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	origOpen, origMigrate, origStore := openDB, runMigrations, newReceiptStore
	t.Cleanup(func() {
		openDB, runMigrations, newReceiptStore = origOpen, origMigrate, origStore
	})

	openDB = func(string) (*sql.DB, error) { return db, nil }
	runMigrations = func(context.Context, repomanager.RepositoryManager, *sql.DB) error { return migrateErr }
	newReceiptStore = func(context.Context, *config.Config) (receipts.Store, error) { return receipts.NopStore{}, nil }

	return mock
}

func TestNewApp_OK(t *testing.T) {
	mock := stubSeams(t, nil)
	mock.ExpectPing()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	assert.NotNil(t, app.movieService)
	assert.NotNil(t, app.reviewService)
	assert.NotNil(t, app.rewardService)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		stubSeams(t, nil)
		openDB = func(string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "db init error")
	})

	t.Run("ping", func(t *testing.T) {
		mock := stubSeams(t, nil)
		mock.ExpectPing().WillReturnError(errors.New("refused"))
		mock.ExpectClose()

		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "db ping error")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("migrations", func(t *testing.T) {
		mock := stubSeams(t, errors.New("dirty"))
		mock.ExpectPing()
		mock.ExpectClose()

		_, err := NewApp(context.Background(), testConfig())
		assert.ErrorContains(t, err, "migrations error")
	})

	t.Run("seed", func(t *testing.T) {
		mock := stubSeams(t, nil)
		mock.ExpectPing()
		mock.ExpectClose()

		c := testConfig()
		c.AuthoritySeed = "zz"
		_, err := NewApp(context.Background(), c)
		assert.ErrorContains(t, err, "authority init error")
	})

	t.Run("logger", func(t *testing.T) {
		stubSeams(t, nil)
		c := testConfig()
		c.LogFormat = "xml"

		_, err := NewApp(context.Background(), c)
		assert.ErrorContains(t, err, "logger init error")
	})
}

func TestRun_StopsOnCancel(t *testing.T) {
	mock := stubSeams(t, nil)
	mock.ExpectPing()
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app.Run(ctx)

	require.NoError(t, mock.ExpectationsWereMet())
}
