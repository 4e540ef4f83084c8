package grpc

import (
	"context"

	"github.com/dmitrijs2005/reviewvault/internal/api"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) ListMovies(ctx context.Context, req *api.ListMoviesRequest) (*api.ListMoviesResponse, error) {

	movies, err := s.movies.ListMovies(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListMoviesResponse{Movies: make([]api.Movie, 0, len(movies))}
	for _, m := range movies {
		resp.Movies = append(resp.Movies, toAPIMovie(m))
	}
	return resp, nil

}

func (s *GRPCServer) CreateMovie(ctx context.Context, req *api.CreateMovieRequest) (*api.CreateMovieResponse, error) {

	caller, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m, err := s.movies.CreateMovie(ctx, caller, &models.Movie{
		Title:       req.Title,
		Director:    req.Director,
		Hero:        req.Hero,
		ReleaseYear: req.ReleaseYear,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Movie created", "id", m.ID, "title", m.Title)
	return &api.CreateMovieResponse{Movie: toAPIMovie(*m)}, nil

}

func (s *GRPCServer) ListReviews(ctx context.Context, req *api.ListReviewsRequest) (*api.ListReviewsResponse, error) {

	reviews, err := s.reviews.ListReviews(ctx, req.MovieID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListReviewsResponse{Reviews: make([]api.Review, 0, len(reviews))}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, toAPIReview(r))
	}
	return resp, nil

}

func (s *GRPCServer) SubmitReview(ctx context.Context, req *api.SubmitReviewRequest) (*api.SubmitReviewResponse, error) {

	reviewer, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	r, v, err := s.reviews.SubmitReview(ctx, &models.Review{
		MovieID:      req.MovieID,
		Reviewer:     reviewer,
		ReviewerName: req.ReviewerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Review submitted", "id", r.ID, "reviewer", reviewer)
	return &api.SubmitReviewResponse{Review: toAPIReview(*r), Vault: toAPIVault(*v)}, nil

}

func (s *GRPCServer) UpdateReview(ctx context.Context, req *api.UpdateReviewRequest) (*api.UpdateReviewResponse, error) {

	reviewer, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.reviews.UpdateReview(ctx, &models.Review{
		ID:           req.ReviewID,
		MovieID:      req.MovieID,
		Reviewer:     reviewer,
		ReviewerName: req.ReviewerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.UpdateReviewResponse{Review: toAPIReview(*r)}, nil

}

func (s *GRPCServer) DeleteReview(ctx context.Context, req *api.DeleteReviewRequest) (*api.DeleteReviewResponse, error) {

	reviewer, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.DeleteReview(ctx, reviewer, req.ReviewID); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.DeleteReviewResponse{}, nil

}

func (s *GRPCServer) GetVault(ctx context.Context, req *api.GetVaultRequest) (*api.GetVaultResponse, error) {

	owner, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sum, err := s.rewards.Summary(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.GetVaultResponse{
		Vault:             toAPIVault(sum.Vault),
		WithdrawableNow:   sum.WithdrawableNow,
		CooldownRemaining: sum.CooldownRemaining,
		PoolAddress:       sum.PoolAddress,
		PoolBalance:       sum.PoolBalance,
		WalletBalance:     sum.WalletBalance,
	}, nil

}

func (s *GRPCServer) Withdraw(ctx context.Context, req *api.WithdrawRequest) (*api.WithdrawResponse, error) {

	owner, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := s.rewards.Withdraw(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.WithdrawResponse{Amount: amount}, nil

}

func toAPIMovie(m models.Movie) api.Movie {
	return api.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		Hero:        m.Hero,
		ReleaseYear: m.ReleaseYear,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func toAPIReview(r models.Review) api.Review {
	return api.Review{
		ID:           r.ID,
		MovieID:      r.MovieID,
		Reviewer:     r.Reviewer,
		ReviewerName: r.ReviewerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toAPIVault(v models.Vault) api.Vault {
	return api.Vault{
		Owner:               v.Owner,
		PendingBalance:      v.PendingBalance,
		WithdrawableBalance: v.WithdrawableBalance,
		LastPromotionTime:   v.LastPromotionTime,
		TotalWithdrawn:      v.TotalWithdrawn,
	}
}
