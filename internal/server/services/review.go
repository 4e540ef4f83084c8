package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/dbx"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Review field limits.
const (
	MaxCommentLen      = 200
	MaxReviewerNameLen = 50
	MinRating          = 1
	MaxRating          = 10
)

// RewardIssuer is notified, inside the accepting transaction, of every
// accepted review.
type RewardIssuer interface {
	OnReviewAccepted(ctx context.Context, tx dbx.DBTX, reviewer string) (*models.Vault, error)
}

type ReviewService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	rewards     RewardIssuer
}

func NewReviewService(db *sql.DB, m repomanager.RepositoryManager, rewards RewardIssuer) *ReviewService {
	return &ReviewService{db: db, repomanager: m, rewards: rewards}
}

// SubmitReview stores a new review and grants its reward in one
// transaction. If the reward cannot be granted the review is not stored.
func (s *ReviewService) SubmitReview(ctx context.Context, r *models.Review) (*models.Review, *models.Vault, error) {
	if err := validateReview(r); err != nil {
		return nil, nil, err
	}
	if _, err := uuid.Parse(r.MovieID); err != nil {
		return nil, nil, common.ErrMovieNotFound
	}

	var (
		created *models.Review
		v       *models.Vault
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Movies(tx).Get(ctx, r.MovieID); err != nil {
			return err
		}

		r.ID = uuid.NewString()
		var err error
		created, err = s.repomanager.Reviews(tx).Create(ctx, r)
		if err != nil {
			return err
		}

		v, err = s.rewards.OnReviewAccepted(ctx, tx, r.Reviewer)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return created, v, nil
}

// UpdateReview rewrites the rating, comment and name of an existing review.
// Only the original reviewer may update it, and only for the same movie. No
// reward is granted.
func (s *ReviewService) UpdateReview(ctx context.Context, r *models.Review) (*models.Review, error) {
	if err := validateReview(r); err != nil {
		return nil, err
	}

	var updated *models.Review
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Reviews(tx)

		existing, err := s.getOwned(ctx, repo.GetByID, r.ID, r.Reviewer)
		if err != nil {
			return err
		}
		if r.MovieID != "" && r.MovieID != existing.MovieID {
			return fmt.Errorf("%w: review belongs to another movie", common.ErrorUnauthorized)
		}

		existing.Rating = r.Rating
		existing.Comment = r.Comment
		existing.ReviewerName = r.ReviewerName

		updated, err = repo.Update(ctx, existing)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteReview removes the caller's review. Rewards already granted stay.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewer, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Reviews(tx)

		if _, err := s.getOwned(ctx, repo.GetByID, id, reviewer); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
}

func (s *ReviewService) ListReviews(ctx context.Context, movieID string) ([]models.Review, error) {
	if _, err := uuid.Parse(movieID); err != nil {
		return nil, common.ErrMovieNotFound
	}
	return s.repomanager.Reviews(s.db).ListByMovie(ctx, movieID)
}

func (s *ReviewService) getOwned(ctx context.Context, get func(context.Context, string) (*models.Review, error), id, reviewer string) (*models.Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrReviewNotFound
	}
	r, err := get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Reviewer != reviewer {
		return nil, fmt.Errorf("%w: review belongs to another reviewer", common.ErrorUnauthorized)
	}
	return r, nil
}

func validateReview(r *models.Review) error {
	if r.Reviewer == "" {
		return fmt.Errorf("%w: reviewer is required", common.ErrorValidation)
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", common.ErrorValidation, MinRating, MaxRating)
	}
	if len(r.Comment) > MaxCommentLen {
		return fmt.Errorf("%w: comment is longer than %d bytes", common.ErrorValidation, MaxCommentLen)
	}
	if len(r.ReviewerName) > MaxReviewerNameLen {
		return fmt.Errorf("%w: reviewer name is longer than %d bytes", common.ErrorValidation, MaxReviewerNameLen)
	}
	return nil
}
