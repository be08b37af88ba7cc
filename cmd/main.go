package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"myregistry/adapters/memstore"
	"myregistry/adapters/myredis"
	"myregistry/adapters/registryhttp"
	"myregistry/api"
	"myregistry/domain"
	"myregistry/handlers"
	"myregistry/interfaces"
	"myregistry/registrar"
	"myregistry/service"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
)

const registryServiceName = "myregistry"

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyRegistry service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger = log.With(logger, "node", config.NodeID)
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"lease_ttl", config.LeaseTTL,
		"lease_max_ttl", config.LeaseMaxTTL,
		"sweep_interval", config.SweepInterval,
		"self_preservation_threshold", config.SelfPreservationThreshold,
		"peers", len(config.Peers),
		"redis_enabled", config.Redis.Enabled(),
	)

	clk := clock.New()
	metrics := service.NewMetrics()

	store := memstore.NewLeaseStore()
	metrics.ObserveSize(store.Len)

	registry := service.NewRegistry(store, clk, service.RegistryConfig{
		DefaultTTL: config.LeaseTTL,
		MaxTTL:     config.LeaseMaxTTL,
	}, metrics, logger)

	sweeper := service.NewSweeper(store, config.SweepInterval, config.SelfPreservationThreshold, clk, metrics, logger)

	peerHTTP := &http.Client{Timeout: 5 * time.Second}
	var replicator *service.Replicator
	{
		peers := make([]interfaces.PeerClient, 0, len(config.Peers))
		for _, url := range config.Peers {
			peers = append(peers, registryhttp.NewClient(url, peerHTTP))
		}
		replicator = service.NewReplicator(store, peers, config.Replication, clk, metrics, logger)
	}

	var redisClient redis.UniversalClient
	var mirror *service.MirrorSync
	if config.Redis.Enabled() {
		redisClient, err = myredis.NewRedisUniversalClient(config.Redis.Addr, myredis.WithTimeouts(3*time.Second))
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		mirror = service.NewMirrorSync(store, myredis.NewJSONMirror[domain.ServiceInstance](redisClient, "instance"), 0, metrics, logger)
		if _, err := mirror.Reconcile(context.Background()); err != nil {
			level.Warn(logger).Log("msg", "Failed to clean up stale mirror keys", "err", err)
		}
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		validator, err := handlers.NewRequestValidator(api.Spec)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		e.Use(handlers.MetricsMiddleware(metrics))
		e.Use(validator)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(registry, replicator, logger))
		handlers.RegisterOperational(e, metrics.Handler())
	}

	// Start background loops
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	runLoop := func(run func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(ctx)
		}()
	}
	runLoop(sweeper.Run)
	runLoop(replicator.Run)
	if mirror != nil {
		runLoop(mirror.Run)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Advertise this node to its peers
	var registrars []*registrar.Registrar
	if config.AdvertiseAddr != "" {
		self := domain.ServiceInstance{
			ServiceName: registryServiceName,
			InstanceID:  config.NodeID,
			Address:     config.AdvertiseAddr,
			Status:      domain.StatusUp,
		}
		interval := max(config.LeaseTTL/3, time.Second/2)
		for _, url := range config.Peers {
			r := registrar.New(registryhttp.NewClient(url, peerHTTP), self, config.LeaseTTL, interval, clk, log.With(logger, "peer", url))
			r.Start(ctx)
			registrars = append(registrars, r)
		}
	}

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	cancel()
	wg.Wait()

	for _, r := range registrars {
		if err := r.Stop(shutdownCtx); err != nil {
			level.Warn(logger).Log("msg", "Failed to deregister from peer", "err", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			level.Warn(logger).Log("msg", "Error closing Redis client", "err", err)
		}
	}

	level.Info(logger).Log("msg", "Server stopped")
}
