package movies

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

func (r *PostgresRepository) Create(ctx context.Context, m *models.Movie) (*models.Movie, error) {
	query :=
		`INSERT INTO movies (id, title, director, hero, release_year, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		m.ID, m.Title, m.Director, m.Hero, m.ReleaseYear, m.CreatedBy).Scan(&m.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateMovie
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Movie, error) {
	query :=
		`SELECT id, title, director, hero, release_year, created_by, created_at
		 FROM movies
		 WHERE id = $1
		 `

	m := &models.Movie{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Title, &m.Director, &m.Hero, &m.ReleaseYear, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrMovieNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Movie, error) {
	query :=
		`SELECT id, title, director, hero, release_year, created_by, created_at
		 FROM movies
		 ORDER BY title
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Hero, &m.ReleaseYear, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
