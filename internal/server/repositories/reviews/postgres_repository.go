package reviews

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

// Create inserts a review. A second review of the same movie by the same
// reviewer is ErrDuplicateReview; an unknown movie is ErrMovieNotFound.
func (r *PostgresRepository) Create(ctx context.Context, rv *models.Review) (*models.Review, error) {
	query :=
		`INSERT INTO reviews (id, movie_id, reviewer, reviewer_name, rating, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		rv.ID, rv.MovieID, rv.Reviewer, rv.ReviewerName, rv.Rating, rv.Comment).Scan(&rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		switch {
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrDuplicateReview
		case dbx.IsForeignKeyViolation(err):
			return nil, common.ErrMovieNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rv, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query :=
		`SELECT id, movie_id, reviewer, reviewer_name, rating, comment, created_at, updated_at
		 FROM reviews
		 WHERE id = $1
		 `

	rv := &models.Review{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rv.ID, &rv.MovieID, &rv.Reviewer,
		&rv.ReviewerName, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrReviewNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rv, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rv *models.Review) (*models.Review, error) {
	query :=
		`UPDATE reviews
		 SET reviewer_name = $2, rating = $3, comment = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, rv.ID, rv.ReviewerName, rv.Rating, rv.Comment).Scan(&rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrReviewNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rv, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM reviews WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrReviewNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByMovie(ctx context.Context, movieID string) ([]models.Review, error) {
	query :=
		`SELECT id, movie_id, reviewer, reviewer_name, rating, comment, created_at, updated_at
		 FROM reviews
		 WHERE movie_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.MovieID, &rv.Reviewer, &rv.ReviewerName,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
