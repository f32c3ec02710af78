// Package app wires the booking runtime and gRPC lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/evmartins/bookhold/internal/booking/audit"
	"github.com/evmartins/bookhold/internal/booking/ledger"
	"github.com/evmartins/bookhold/internal/booking/service"
	"github.com/evmartins/bookhold/internal/booking/storage/sqlite"
	"github.com/evmartins/bookhold/internal/platform/logging"
)

// Config holds booking server configuration.
type Config struct {
	Port          int
	DBPath        string
	AMQPURL       string
	AuditExchange string
	Timezone      string
	Log           logging.Config
}

// Server hosts the booking engine, its audit sink, and the gRPC health
// surface used by orchestration probes. The request-facing API transport is
// owned by external layers.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *sqlite.Store
	amqp       *audit.AMQPSink
	log        zerolog.Logger

	// Booking is the reservation coordinator.
	Booking *service.Service
	// Ledger exposes standalone balance operations.
	Ledger *ledger.Ledger
}

// New creates a configured booking server listening on cfg.Port.
func New(cfg Config) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", cfg.Port), cfg)
}

// NewWithAddr creates a configured booking server for the provided address.
func NewWithAddr(addr string, cfg Config) (*Server, error) {
	log := logging.NewWithConfig("booking", cfg.Log)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	dbPath := strings.TrimSpace(cfg.DBPath)
	if dbPath == "" {
		dbPath = "data/booking.db"
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	loc := time.UTC
	if tz := strings.TrimSpace(cfg.Timezone); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			_ = store.Close()
			_ = listener.Close()
			return nil, fmt.Errorf("load timezone %q: %w", tz, err)
		}
	}

	var sink audit.Sink = audit.LogSink{Log: log}
	var amqpSink *audit.AMQPSink
	if url := strings.TrimSpace(cfg.AMQPURL); url != "" {
		amqpSink, err = audit.NewAMQPSink(url, cfg.AuditExchange)
		if err != nil {
			_ = store.Close()
			_ = listener.Close()
			return nil, fmt.Errorf("connect audit broker: %w", err)
		}
		sink = amqpSink
	}
	emitter := audit.NewEmitter(sink, log)

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
		amqp:       amqpSink,
		log:        log,
		Booking:    service.New(store, emitter, service.DefaultPolicy(), loc, log),
		Ledger:     ledger.New(store, emitter, log),
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a booking server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	s.log.Info().Str("addr", s.listener.Addr().String()).Msg("booking server listening")
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	case err := <-serveErr:
		return err
	}
}

// Close releases the server's resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.amqp != nil {
		if err := s.amqp.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close audit sink")
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.Warn().Err(err).Msg("close store")
		}
	}
}
