package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/reviewvault/internal/api"
	"github.com/dmitrijs2005/reviewvault/internal/logging"
	"github.com/dmitrijs2005/reviewvault/internal/server/models"
	"github.com/dmitrijs2005/reviewvault/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// MovieCatalog is the movie side of the service layer.
type MovieCatalog interface {
	CreateMovie(ctx context.Context, caller string, m *models.Movie) (*models.Movie, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
}

// ReviewBook is the review side of the service layer.
type ReviewBook interface {
	SubmitReview(ctx context.Context, r *models.Review) (*models.Review, *models.Vault, error)
	UpdateReview(ctx context.Context, r *models.Review) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewer, id string) error
	ListReviews(ctx context.Context, movieID string) ([]models.Review, error)
}

// Rewards exposes vault reads and withdrawals.
type Rewards interface {
	Summary(ctx context.Context, owner string) (*services.VaultSummary, error)
	Withdraw(ctx context.Context, owner string) (uint64, error)
}

type GRPCServer struct {
	api.UnimplementedRewardVaultServer
	address   string
	movies    MovieCatalog
	reviews   ReviewBook
	rewards   Rewards
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ms MovieCatalog, rs ReviewBook, rw Rewards, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		movies:    ms,
		reviews:   rs,
		rewards:   rw,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))

	api.RegisterRewardVaultServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
