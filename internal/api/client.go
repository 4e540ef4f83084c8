package api

import (
	"context"

	"google.golang.org/grpc"
)

// RewardVaultClient calls the RewardVault service over a client connection.
// Every call uses the JSON codec.
type RewardVaultClient struct {
	cc grpc.ClientConnInterface
}

func NewRewardVaultClient(cc grpc.ClientConnInterface) *RewardVaultClient {
	return &RewardVaultClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RewardVaultClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *RewardVaultClient) ListMovies(ctx context.Context, in *ListMoviesRequest, opts ...grpc.CallOption) (*ListMoviesResponse, error) {
	return invoke[ListMoviesResponse](ctx, c.cc, MethodListMovies, in, opts)
}

func (c *RewardVaultClient) CreateMovie(ctx context.Context, in *CreateMovieRequest, opts ...grpc.CallOption) (*CreateMovieResponse, error) {
	return invoke[CreateMovieResponse](ctx, c.cc, MethodCreateMovie, in, opts)
}

func (c *RewardVaultClient) ListReviews(ctx context.Context, in *ListReviewsRequest, opts ...grpc.CallOption) (*ListReviewsResponse, error) {
	return invoke[ListReviewsResponse](ctx, c.cc, MethodListReviews, in, opts)
}

func (c *RewardVaultClient) SubmitReview(ctx context.Context, in *SubmitReviewRequest, opts ...grpc.CallOption) (*SubmitReviewResponse, error) {
	return invoke[SubmitReviewResponse](ctx, c.cc, MethodSubmitReview, in, opts)
}

func (c *RewardVaultClient) UpdateReview(ctx context.Context, in *UpdateReviewRequest, opts ...grpc.CallOption) (*UpdateReviewResponse, error) {
	return invoke[UpdateReviewResponse](ctx, c.cc, MethodUpdateReview, in, opts)
}

func (c *RewardVaultClient) DeleteReview(ctx context.Context, in *DeleteReviewRequest, opts ...grpc.CallOption) (*DeleteReviewResponse, error) {
	return invoke[DeleteReviewResponse](ctx, c.cc, MethodDeleteReview, in, opts)
}

func (c *RewardVaultClient) GetVault(ctx context.Context, in *GetVaultRequest, opts ...grpc.CallOption) (*GetVaultResponse, error) {
	return invoke[GetVaultResponse](ctx, c.cc, MethodGetVault, in, opts)
}

func (c *RewardVaultClient) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*WithdrawResponse, error) {
	return invoke[WithdrawResponse](ctx, c.cc, MethodWithdraw, in, opts)
}
