package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Catalog field limits, in bytes.
const (
	MaxMovieFieldLen = 100
	MinReleaseYear   = 1
	MaxReleaseYear   = 9999
)

// MovieService manages the movie catalog. Only the configured admin may add
// movies.
type MovieService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	adminUserID string
}

func NewMovieService(db *sql.DB, m repomanager.RepositoryManager, adminUserID string) *MovieService {
	return &MovieService{db: db, repomanager: m, adminUserID: adminUserID}
}

func (s *MovieService) CreateMovie(ctx context.Context, caller string, m *models.Movie) (*models.Movie, error) {
	if caller == "" || caller != s.adminUserID {
		return nil, fmt.Errorf("%w: only the admin can create movies", common.ErrorUnauthorized)
	}
	if err := validateMovie(m); err != nil {
		return nil, err
	}

	m.ID = uuid.NewString()
	m.CreatedBy = caller

	return s.repomanager.Movies(s.db).Create(ctx, m)
}

func (s *MovieService) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrMovieNotFound
	}
	return s.repomanager.Movies(s.db).Get(ctx, id)
}

func (s *MovieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return s.repomanager.Movies(s.db).List(ctx)
}

func validateMovie(m *models.Movie) error {
	fields := []struct {
		name, value string
	}{
		{"title", m.Title},
		{"director", m.Director},
		{"hero", m.Hero},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: %s is required", common.ErrorValidation, f.name)
		}
		if len(f.value) > MaxMovieFieldLen {
			return fmt.Errorf("%w: %s is longer than %d bytes", common.ErrorValidation, f.name, MaxMovieFieldLen)
		}
	}
	if m.ReleaseYear < MinReleaseYear || m.ReleaseYear > MaxReleaseYear {
		return fmt.Errorf("%w: release year %d out of range", common.ErrorValidation, m.ReleaseYear)
	}
	return nil
}
