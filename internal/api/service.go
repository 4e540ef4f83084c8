package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "reviewvault.v1.RewardVault"

// Method names.
const (
	MethodPing         = "Ping"
	MethodListMovies   = "ListMovies"
	MethodCreateMovie  = "CreateMovie"
	MethodListReviews  = "ListReviews"
	MethodSubmitReview = "SubmitReview"
	MethodUpdateReview = "UpdateReview"
	MethodDeleteReview = "DeleteReview"
	MethodGetVault     = "GetVault"
	MethodWithdraw     = "Withdraw"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type RewardVaultServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListMovies(context.Context, *ListMoviesRequest) (*ListMoviesResponse, error)
	CreateMovie(context.Context, *CreateMovieRequest) (*CreateMovieResponse, error)
	ListReviews(context.Context, *ListReviewsRequest) (*ListReviewsResponse, error)
	SubmitReview(context.Context, *SubmitReviewRequest) (*SubmitReviewResponse, error)
	UpdateReview(context.Context, *UpdateReviewRequest) (*UpdateReviewResponse, error)
	DeleteReview(context.Context, *DeleteReviewRequest) (*DeleteReviewResponse, error)
	GetVault(context.Context, *GetVaultRequest) (*GetVaultResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*WithdrawResponse, error)
}

// UnimplementedRewardVaultServer answers every method with Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedRewardVaultServer struct{}

func (UnimplementedRewardVaultServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedRewardVaultServer) ListMovies(context.Context, *ListMoviesRequest) (*ListMoviesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMovies not implemented")
}
func (UnimplementedRewardVaultServer) CreateMovie(context.Context, *CreateMovieRequest) (*CreateMovieResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateMovie not implemented")
}
func (UnimplementedRewardVaultServer) ListReviews(context.Context, *ListReviewsRequest) (*ListReviewsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListReviews not implemented")
}
func (UnimplementedRewardVaultServer) SubmitReview(context.Context, *SubmitReviewRequest) (*SubmitReviewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitReview not implemented")
}
func (UnimplementedRewardVaultServer) UpdateReview(context.Context, *UpdateReviewRequest) (*UpdateReviewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateReview not implemented")
}
func (UnimplementedRewardVaultServer) DeleteReview(context.Context, *DeleteReviewRequest) (*DeleteReviewResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteReview not implemented")
}
func (UnimplementedRewardVaultServer) GetVault(context.Context, *GetVaultRequest) (*GetVaultResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetVault not implemented")
}
func (UnimplementedRewardVaultServer) Withdraw(context.Context, *WithdrawRequest) (*WithdrawResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Withdraw not implemented")
}

// RegisterRewardVaultServer registers srv on s.
func RegisterRewardVaultServer(s grpc.ServiceRegistrar, srv RewardVaultServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the RewardVault service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RewardVaultServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, RewardVaultServer.Ping),
		unary(MethodListMovies, RewardVaultServer.ListMovies),
		unary(MethodCreateMovie, RewardVaultServer.CreateMovie),
		unary(MethodListReviews, RewardVaultServer.ListReviews),
		unary(MethodSubmitReview, RewardVaultServer.SubmitReview),
		unary(MethodUpdateReview, RewardVaultServer.UpdateReview),
		unary(MethodDeleteReview, RewardVaultServer.DeleteReview),
		unary(MethodGetVault, RewardVaultServer.GetVault),
		unary(MethodWithdraw, RewardVaultServer.Withdraw),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "reviewvault/v1/rewardvault",
}

// unary builds the MethodDesc for one request/response method, decoding Req
// and routing the call through the server's interceptor chain.
func unary[Req, Resp any](method string, call func(RewardVaultServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RewardVaultServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RewardVaultServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
