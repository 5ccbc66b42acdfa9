// Package grpc serves the standard gRPC health service and keeps its
// status in step with the storage backend.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Pinger is a storage backend that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type GRPCServer struct {
	address  string
	logger   logging.Logger
	store    Pinger
	interval time.Duration
	health   *health.Server
}

func NewGRPCServer(a string, l logging.Logger, store Pinger, interval time.Duration) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		store:    store,
		interval: interval,
		health:   health.NewServer(),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	go s.probe(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

// probe pings the store every interval until ctx is done.
func (s *GRPCServer) probe(ctx context.Context) {
	s.checkOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkOnce(ctx)
		}
	}
}

func (s *GRPCServer) checkOnce(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	if err := s.store.Ping(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "storage ping failed", "error", err)
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}
