package reviews

import (
	"context"

	"github.com/dmitrijs2005/reviewvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, r *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id string) error
	ListByMovie(ctx context.Context, movieID string) ([]models.Review, error)
}
