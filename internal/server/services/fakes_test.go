package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/dbx"
	"github.com/dmitrijs2005/reviewvault/internal/logging"
	"github.com/dmitrijs2005/reviewvault/internal/server/authority"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/server/receipts"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/ledger"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/movies"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/vaults"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeVaultsRepo struct {
	rows map[string]models.Vault

	// onCreate runs before Create touches rows; returning an error aborts it.
	onCreate func(v *models.Vault) error
	saveErr  error
	saves    int
}

func (f *fakeVaultsRepo) Get(_ context.Context, owner string) (*models.Vault, error) {
	v, ok := f.rows[owner]
	if !ok {
		return nil, common.ErrNoSuchVault
	}
	return &v, nil
}

func (f *fakeVaultsRepo) GetForUpdate(ctx context.Context, owner string) (*models.Vault, error) {
	return f.Get(ctx, owner)
}

func (f *fakeVaultsRepo) Create(_ context.Context, v *models.Vault) error {
	if f.onCreate != nil {
		if err := f.onCreate(v); err != nil {
			return err
		}
	}
	if _, ok := f.rows[v.Owner]; ok {
		return common.ErrDuplicateVault
	}
	f.rows[v.Owner] = *v
	return nil
}

func (f *fakeVaultsRepo) Save(_ context.Context, v *models.Vault) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.rows[v.Owner]; !ok {
		return common.ErrNoSuchVault
	}
	f.saves++
	f.rows[v.Owner] = *v
	return nil
}

type fakeLedgerRepo struct {
	balances  map[string]uint64
	entries   []models.LedgerEntry
	creditErr error
}

func (f *fakeLedgerRepo) Balance(_ context.Context, address string) (uint64, error) {
	return f.balances[address], nil
}

func (f *fakeLedgerRepo) Credit(_ context.Context, address string, amount uint64) (uint64, error) {
	if f.creditErr != nil {
		return 0, f.creditErr
	}
	f.balances[address] += amount
	return f.balances[address], nil
}

func (f *fakeLedgerRepo) Debit(_ context.Context, address string, amount uint64) (uint64, error) {
	if f.balances[address] < amount {
		return 0, common.ErrInsufficientBalance
	}
	f.balances[address] -= amount
	return f.balances[address], nil
}

func (f *fakeLedgerRepo) Append(_ context.Context, e *models.LedgerEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLedgerRepo) Entries(context.Context, string, int) ([]models.LedgerEntry, error) {
	return f.entries, nil
}

type fakeMoviesRepo struct {
	rows      map[string]models.Movie
	createErr error
}

func (f *fakeMoviesRepo) Create(_ context.Context, m *models.Movie) (*models.Movie, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.rows {
		if existing.Title == m.Title {
			return nil, common.ErrDuplicateMovie
		}
	}
	m.CreatedAt = time.Unix(0, 0)
	f.rows[m.ID] = *m
	return m, nil
}

func (f *fakeMoviesRepo) Get(_ context.Context, id string) (*models.Movie, error) {
	m, ok := f.rows[id]
	if !ok {
		return nil, common.ErrMovieNotFound
	}
	return &m, nil
}

func (f *fakeMoviesRepo) List(context.Context) ([]models.Movie, error) {
	out := make([]models.Movie, 0, len(f.rows))
	for _, m := range f.rows {
		out = append(out, m)
	}
	return out, nil
}

type fakeReviewsRepo struct {
	rows map[string]models.Review
}

func (f *fakeReviewsRepo) Create(_ context.Context, r *models.Review) (*models.Review, error) {
	for _, existing := range f.rows {
		if existing.MovieID == r.MovieID && existing.Reviewer == r.Reviewer {
			return nil, common.ErrDuplicateReview
		}
	}
	f.rows[r.ID] = *r
	return r, nil
}

func (f *fakeReviewsRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, common.ErrReviewNotFound
	}
	return &r, nil
}

func (f *fakeReviewsRepo) Update(_ context.Context, r *models.Review) (*models.Review, error) {
	if _, ok := f.rows[r.ID]; !ok {
		return nil, common.ErrReviewNotFound
	}
	f.rows[r.ID] = *r
	return r, nil
}

func (f *fakeReviewsRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return common.ErrReviewNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeReviewsRepo) ListByMovie(_ context.Context, movieID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.rows {
		if r.MovieID == movieID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	vaults  *fakeVaultsRepo
	ledger  *fakeLedgerRepo
	movies  *fakeMoviesRepo
	reviews *fakeReviewsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		vaults:  &fakeVaultsRepo{rows: map[string]models.Vault{}},
		ledger:  &fakeLedgerRepo{balances: map[string]uint64{}},
		movies:  &fakeMoviesRepo{rows: map[string]models.Movie{}},
		reviews: &fakeReviewsRepo{rows: map[string]models.Review{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Vaults(dbx.DBTX) vaults.Repository            { return m.vaults }
func (m *fakeRepoManager) Ledger(dbx.DBTX) ledger.Repository            { return m.ledger }
func (m *fakeRepoManager) Movies(dbx.DBTX) movies.Repository            { return m.movies }
func (m *fakeRepoManager) Reviews(dbx.DBTX) reviews.Repository          { return m.reviews }

type recordingStore struct {
	got []models.WithdrawalReceipt
	err error
}

func (r *recordingStore) Put(_ context.Context, rc *models.WithdrawalReceipt) error {
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, *rc)
	return nil
}

var _ receipts.Store = (*recordingStore)(nil)

// -------- harness --------

type harness struct {
	db      *sql.DB
	mock    sqlmock.Sqlmock
	rm      *fakeRepoManager
	capsule *authority.Capsule
	clock   *clockwork.FakeClock
	store   *recordingStore
	vaults  *VaultService
	rewards *RewardService
	movies  *MovieService
	reviews *ReviewService
}

const testAdmin = "admin"

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	capsule, err := authority.NewCapsule([]byte("reviewvault-test-seed-0123456789"))
	require.NoError(t, err)

	h := &harness{
		db:      db,
		mock:    mock,
		rm:      newFakeRepoManager(),
		capsule: capsule,
		clock:   clockwork.NewFakeClockAt(time.Unix(0, 0)),
		store:   &recordingStore{},
	}
	h.vaults = NewVaultService(db, h.rm, capsule, h.clock)
	h.rewards = NewRewardService(db, h.rm, h.vaults, capsule, h.store, h.clock, logging.NopLogger{})
	h.movies = NewMovieService(db, h.rm, testAdmin)
	h.reviews = NewReviewService(db, h.rm, h.rewards)
	return h
}

// at moves the fake clock to unix second sec.
func (h *harness) at(sec int64) {
	h.clock.Advance(time.Unix(sec, 0).Sub(h.clock.Now()))
}

func (h *harness) expectCommit() {
	h.mock.ExpectBegin()
	h.mock.ExpectCommit()
}

func (h *harness) expectRollback() {
	h.mock.ExpectBegin()
	h.mock.ExpectRollback()
}

func (h *harness) poolAddress(t *testing.T, owner string) string {
	t.Helper()
	a, err := h.capsule.Derive(authority.DomainVault, owner)
	require.NoError(t, err)
	return a.Address
}
