package utilities

import (
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer serves the standard gRPC health checking protocol.
type HealthServer struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zerolog.Logger
}

// NewHealthServer creates a gRPC server exposing only the health service.
// The overall status ("") and serviceName start as SERVING.
func NewHealthServer(serviceName string, logger *zerolog.Logger) *HealthServer {
	grpcServer := grpc.NewServer()
	healthServer := RegisterHealthServer(grpcServer)
	if serviceName != "" {
		healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	return &HealthServer{
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}
}

// RegisterHealthServer registers the gRPC health check service.
func RegisterHealthServer(grpcServer *grpc.Server) *health.Server {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	return healthServer
}

// Serve accepts connections on lis until Stop is called.
func (s *HealthServer) Serve(lis net.Listener) error {
	s.logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC health server listening")
	return s.grpcServer.Serve(lis)
}

// Stop marks every service as NOT_SERVING and stops the server gracefully.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
