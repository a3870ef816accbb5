// Package grpc serves the standard gRPC health protocol so orchestrators can
// probe the API process. Reflection is enabled for grpcurl.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/ganatecnica/obradiary/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall ("") status.
const ServiceName = "obradiary.Diary"

const defaultProbeInterval = 15 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthServer struct {
	address  string
	store    Pinger
	interval time.Duration
	health   *health.Server
	logger   logging.Logger
}

func NewHealthServer(a string, store Pinger, l logging.Logger) *HealthServer {
	return &HealthServer{
		address:  a,
		store:    store,
		interval: defaultProbeInterval,
		health:   health.NewServer(),
		logger:   l.With("module", "grpc_health"),
	}
}

func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled. Status turns
// NOT_SERVING before the graceful stop so probes drain first.
func (s *HealthServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer()

	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	s.probe(ctx)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info(ctx, "Stopping gRPC health server...")
				s.health.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				s.probe(ctx)
			}
		}
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", listen.Addr().String())

	// starts accepting incoming connections
	return srv.Serve(listen)
}

// probe reports SERVING while the store answers pings.
func (s *HealthServer) probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if s.store != nil {
		pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := s.store.PingContext(pctx)
		cancel()
		if err != nil && ctx.Err() == nil {
			s.logger.Warn(ctx, "store ping failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
