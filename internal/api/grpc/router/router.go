package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/xcard-server/internal/api/grpc/handler"
	"github.com/dtroode/xcard-server/internal/api/grpc/middleware"
	"github.com/dtroode/xcard-server/internal/api/grpc/registrypb"
	"github.com/dtroode/xcard-server/internal/logger"
)

// Router wires gRPC services and interceptors.
type Router struct {
	registryService handler.RegistryService
	health          *handler.Health
	logger          *logger.Logger
}

func New(
	registryService handler.RegistryService,
	health *handler.Health,
	logger *logger.Logger,
) *Router {
	return &Router{
		registryService: registryService,
		health:          health,
		logger:          logger,
	}
}

func (r *Router) recoverPanic(ctx context.Context, p any) error {
	r.logger.Error("gRPC: recovered from panic", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}

// Register builds the gRPC server with logging and panic recovery.
// Recovery runs inside logging so recovered calls are logged as Internal.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(r.recoverPanic)),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(r.recoverPanic)),
		),
	)

	registrypb.RegisterRegistryServer(s, handler.NewRegistry(r.registryService, r.logger))
	if r.health != nil {
		healthpb.RegisterHealthServer(s, r.health.Server)
	}
	reflection.Register(s)

	return s
}
