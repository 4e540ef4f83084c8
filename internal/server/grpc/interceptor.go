package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/reviewvault/internal/api"
	"github.com/dmitrijs2005/reviewvault/internal/common"
	"github.com/dmitrijs2005/reviewvault/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):        true,
	api.FullMethod(api.MethodListMovies):  true,
	api.FullMethod(api.MethodListReviews): true,
}

// requiresToken reports whether method belongs to the RewardVault service and
// is not public. Other services, such as health, are never gated.
func requiresToken(method string) bool {
	if !strings.HasPrefix(method, "/"+api.ServiceName+"/") {
		return false
	}
	return !publicMethods[method]
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	if requiresToken(info.FullMethod) {

		var accessToken string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AccessTokenHeaderName)
			if len(values) > 0 {
				accessToken = values[0]
			}
		}
		if len(accessToken) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
		if err != nil {
			if errors.Is(err, common.ErrTokenExpired) {
				return nil, status.Error(codes.Unauthenticated, "token expired")
			}
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		ctx = context.WithValue(ctx, userIDKey, userID)

	}

	return handler(ctx, req)
}

func userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", status.Error(codes.Unauthenticated, "missing user")
	}
	return userID, nil
}
