package cli

import (
	"context"

	"github.com/dmitrijs2005/reviewvault/internal/api"
	"github.com/dmitrijs2005/reviewvault/internal/client/service"
)

// Client is what the commands need from the server.
type Client interface {
	Ping(ctx context.Context) (string, error)
	ListMovies(ctx context.Context) ([]api.Movie, error)
	CreateMovie(ctx context.Context, req *api.CreateMovieRequest) (*api.Movie, error)
	ListReviews(ctx context.Context, movieID string) ([]api.Review, error)
	SubmitReview(ctx context.Context, req *api.SubmitReviewRequest) (*api.SubmitReviewResponse, error)
	UpdateReview(ctx context.Context, req *api.UpdateReviewRequest) (*api.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
	GetVault(ctx context.Context) (*api.GetVaultResponse, error)
	Withdraw(ctx context.Context) (uint64, error)
	Close() error
}

// newClient is a test seam.
var newClient = func(opts *RootOptions) (Client, error) {
	s := service.NewRewardVaultClientService(opts.Addr, opts.Token)
	if err := s.InitGRPCClient(); err != nil {
		return nil, err
	}
	return s, nil
}

// withClient opens a client for the duration of fn.
func withClient(opts *RootOptions, fn func(c Client) error) error {
	c, err := newClient(opts)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
