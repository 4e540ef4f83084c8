package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/reviewvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusCodes is checked in order. Ledger failures wrap the underlying cause,
// so the failure kind has to win over the cause.
var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrorValidation, codes.InvalidArgument},
	{common.ErrorUnauthorized, codes.PermissionDenied},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrMovieNotFound, codes.NotFound},
	{common.ErrReviewNotFound, codes.NotFound},
	{common.ErrNoSuchVault, codes.NotFound},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrDuplicateMovie, codes.AlreadyExists},
	{common.ErrDuplicateReview, codes.AlreadyExists},
	{common.ErrDuplicateVault, codes.AlreadyExists},
	{common.ErrNothingWithdrawable, codes.FailedPrecondition},
	{common.ErrTransferFailed, codes.Aborted},
	{common.ErrMintFailed, codes.Aborted},
	{common.ErrAuthorityMismatch, codes.PermissionDenied},
	{common.ErrArithmeticOverflow, codes.OutOfRange},
}

func codeOf(err error) codes.Code {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return codes.Internal
}

// toStatus converts a service error into a gRPC status. Internal errors are
// logged and reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	code := codeOf(err)
	if code == codes.Internal {
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}
