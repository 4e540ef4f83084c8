package movies

import (
	"context"

	"github.com/dmitrijs2005/reviewvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Movie) (*models.Movie, error)
	Get(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context) ([]models.Movie, error)
}
