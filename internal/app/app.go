package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MikhailRaia/shorturls/internal/config"
	"github.com/MikhailRaia/shorturls/internal/handler"
	"github.com/MikhailRaia/shorturls/internal/middleware"
	"github.com/MikhailRaia/shorturls/internal/proto"
	"github.com/MikhailRaia/shorturls/internal/service"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"github.com/MikhailRaia/shorturls/internal/storage/file"
	"github.com/MikhailRaia/shorturls/internal/storage/instrumented"
	"github.com/MikhailRaia/shorturls/internal/storage/memory"
	"github.com/MikhailRaia/shorturls/internal/storage/postgres"
	"github.com/MikhailRaia/shorturls/internal/storage/sqlite"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

// App owns the storage handle and both servers.
type App struct {
	config     *config.Config
	storage    storage.MappingStore
	handler    http.Handler
	grpcServer *grpc.Server
}

// NewApp opens storage and wires the service into the HTTP and gRPC servers.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := instrumented.NewMetrics(registry)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("error registering storage metrics: %w", err)
	}
	store = instrumented.NewStore(store, metrics)

	allocator := service.NewAllocator(store, cfg.ShortCodeLength, cfg.MaxAttempts)
	urlService := service.NewURLService(store, allocator, cfg.BaseURL)

	httpHandler := handler.NewHandler(urlService, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	grpcMetrics := grpc_prometheus.NewServerMetrics()
	if err := registry.Register(grpcMetrics); err != nil {
		store.Close()
		return nil, fmt.Errorf("error registering grpc metrics: %w", err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcMetrics.UnaryServerInterceptor(),
		middleware.GRPCLogger,
	))
	proto.RegisterShortenerServiceServer(grpcServer, handler.NewShortenerGRPCServer(urlService))
	grpcMetrics.InitializeMetrics(grpcServer)

	return &App{
		config:     cfg,
		storage:    store,
		handler:    httpHandler.RegisterRoutes(),
		grpcServer: grpcServer,
	}, nil
}

// newStorage picks the backend: postgres, then sqlite, then file, then memory.
func newStorage(ctx context.Context, cfg *config.Config) (storage.MappingStore, error) {
	switch {
	case cfg.DatabaseDSN != "":
		log.Info().Msg("Using PostgreSQL storage")
		store, err := postgres.NewStorage(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("error initializing postgres storage: %w", err)
		}
		return store, nil
	case cfg.SQLitePath != "":
		log.Info().Str("path", cfg.SQLitePath).Msg("Using SQLite storage")
		store, err := sqlite.NewStorage(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing sqlite storage: %w", err)
		}
		return store, nil
	case cfg.FileStoragePath != "":
		log.Info().Str("path", cfg.FileStoragePath).Msg("Using file storage")
		store, err := file.NewStorage(cfg.FileStoragePath)
		if err != nil {
			return nil, fmt.Errorf("error initializing file storage: %w", err)
		}
		return store, nil
	default:
		log.Info().Msg("Using in-memory storage")
		return memory.NewStorage(), nil
	}
}

// Run serves HTTP and gRPC until ctx is cancelled or a server fails, then
// shuts both down and closes storage.
func (a *App) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    a.config.ServerAddress,
		Handler: a.handler,
	}

	grpcListener, err := net.Listen("tcp", a.config.GRPCAddress)
	if err != nil {
		a.storage.Close()
		return fmt.Errorf("error listening on %s: %w", a.config.GRPCAddress, err)
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info().Str("address", a.config.ServerAddress).Str("base_url", a.config.BaseURL).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		log.Info().Str("address", a.config.GRPCAddress).Msg("Starting gRPC server")
		if err := a.grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("Server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	stopped := make(chan struct{})
	go func() {
		a.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		a.grpcServer.Stop()
	}

	if err := a.storage.Close(); err != nil {
		log.Error().Err(err).Msg("Storage close failed")
	}

	return runErr
}
