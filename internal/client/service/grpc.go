// Package service is the client side of the RewardVault gRPC API.
package service

import (
	"context"

	"github.com/dmitrijs2005/reviewvault/internal/api"
	"github.com/dmitrijs2005/reviewvault/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type RewardVaultClientService struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.RewardVaultClient
	accessToken string
}

// accessTokenInterceptor attaches the access token, when one is set, to
// every outgoing call.
func (s *RewardVaultClientService) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.accessToken != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, s.accessToken)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewRewardVaultClientService(endpointURL, accessToken string) *RewardVaultClientService {
	return &RewardVaultClientService{endpointURL: endpointURL, accessToken: accessToken}
}

// InitGRPCClient opens the connection. Extra options are appended to the
// defaults (plaintext transport, token interceptor).
func (s *RewardVaultClientService) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewRewardVaultClient(conn)
	return nil
}

func (s *RewardVaultClientService) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *RewardVaultClientService) Ping(ctx context.Context) (string, error) {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (s *RewardVaultClientService) ListMovies(ctx context.Context) ([]api.Movie, error) {
	resp, err := s.client.ListMovies(ctx, &api.ListMoviesRequest{})
	if err != nil {
		return nil, err
	}
	return resp.Movies, nil
}

func (s *RewardVaultClientService) CreateMovie(ctx context.Context, req *api.CreateMovieRequest) (*api.Movie, error) {
	resp, err := s.client.CreateMovie(ctx, req)
	if err != nil {
		return nil, err
	}
	return &resp.Movie, nil
}

func (s *RewardVaultClientService) ListReviews(ctx context.Context, movieID string) ([]api.Review, error) {
	resp, err := s.client.ListReviews(ctx, &api.ListReviewsRequest{MovieID: movieID})
	if err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

func (s *RewardVaultClientService) SubmitReview(ctx context.Context, req *api.SubmitReviewRequest) (*api.SubmitReviewResponse, error) {
	return s.client.SubmitReview(ctx, req)
}

func (s *RewardVaultClientService) UpdateReview(ctx context.Context, req *api.UpdateReviewRequest) (*api.Review, error) {
	resp, err := s.client.UpdateReview(ctx, req)
	if err != nil {
		return nil, err
	}
	return &resp.Review, nil
}

func (s *RewardVaultClientService) DeleteReview(ctx context.Context, reviewID string) error {
	_, err := s.client.DeleteReview(ctx, &api.DeleteReviewRequest{ReviewID: reviewID})
	return err
}

func (s *RewardVaultClientService) GetVault(ctx context.Context) (*api.GetVaultResponse, error) {
	return s.client.GetVault(ctx, &api.GetVaultRequest{})
}

func (s *RewardVaultClientService) Withdraw(ctx context.Context) (uint64, error) {
	resp, err := s.client.Withdraw(ctx, &api.WithdrawRequest{})
	if err != nil {
		return 0, err
	}
	return resp.Amount, nil
}
