// Package httpd implements the HTTP server for the search service.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/shopsearch/cmd/common"
	"github.com/jonesrussell/shopsearch/internal/api"
	"github.com/jonesrussell/shopsearch/internal/database"
	"github.com/jonesrussell/shopsearch/internal/job"
	"github.com/jonesrussell/shopsearch/internal/logger"
	"github.com/jonesrussell/shopsearch/internal/notifier"
	"github.com/jonesrussell/shopsearch/internal/provider"
	"github.com/jonesrussell/shopsearch/internal/queue"
	"github.com/jonesrussell/shopsearch/internal/search"
	"github.com/jonesrussell/shopsearch/internal/worker"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the HTTP server",
		Long:  `Start the HTTP server with the worker pool and expiry sweeper.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server, the worker pool, and the expiry sweeper,
// then runs until interrupted. It handles graceful shutdown on SIGINT or
// SIGTERM signals.
func Start() error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Database
	db, err := database.NewPostgresConnection(deps.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if schemaErr := database.EnsureSchema(context.Background(), db); schemaErr != nil {
		return fmt.Errorf("failed to ensure schema: %w", schemaErr)
	}

	searchRepo := database.NewSearchRepository(db)
	productRepo := database.NewProductRepository(db, deps.Logger)
	siteRepo := database.NewSiteRepository(db)

	// Redis: job queue and provider cache share one client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     deps.Config.Redis.Addr,
		Password: deps.Config.Redis.Password,
		DB:       deps.Config.Redis.DB,
	})
	defer redisClient.Close()

	streams, err := queue.NewStreamsClient(redisClient, deps.Config.Redis.Prefix)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	producer := queue.NewProducer(streams, queue.ProducerConfig{})

	// Provider with Redis result cache
	cache := provider.NewRedisCache(redisClient, deps.Logger)
	prov := provider.New(deps.Config.Provider, nil, cache, deps.Logger)

	// Orchestrator
	svc := search.New(searchRepo, productRepo, siteRepo, prov, producer, deps.Logger)

	// Worker pool and consume loop
	runnerCtx, stopRunner := context.WithCancel(context.Background())
	defer stopRunner()

	pool, err := startWorkers(runnerCtx, deps, streams, svc)
	if err != nil {
		return err
	}

	// Expiry sweeper, which also trims the job stream
	sweeper := job.NewSweeper(svc, producer, "", deps.Logger)
	if sweepErr := sweeper.Start(context.Background()); sweepErr != nil {
		return fmt.Errorf("failed to start sweeper: %w", sweepErr)
	}

	// HTTP server
	monitor := notifier.NewMonitor(svc, notifier.MonitorConfig{}, deps.Logger)
	searchHandler := api.NewSearchHandler(svc, siteRepo, deps.Logger)
	wsHandler := api.NewWSHandler(monitor, deps.Logger)

	server := api.StartHTTPServer(deps.Logger, &deps.Config.Server, searchHandler, wsHandler)

	deps.Logger.Info("Starting HTTP server", "addr", deps.Config.Server.Address)
	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	return runUntilInterrupt(deps, server, pool, sweeper, stopRunner, errChan)
}

// startWorkers creates the pool, wires the consume loop, and runs it.
func startWorkers(
	ctx context.Context,
	deps *common.CommandDeps,
	streams *queue.StreamsClient,
	svc *search.Service,
) (*worker.Pool, error) {
	poolCfg := worker.Config{
		PoolSize:     deps.Config.Worker.PoolSize,
		JobTimeout:   deps.Config.Worker.JobTimeout,
		DrainTimeout: deps.Config.Worker.DrainTimeout,
	}

	pool, err := worker.NewPool(poolCfg, svc.Execute, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}

	consumer, err := queue.NewConsumer(streams, queue.ConsumerConfig{
		ConsumerID: consumerID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	runner, err := worker.NewRunner(consumer, pool, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	if startErr := pool.Start(); startErr != nil {
		return nil, fmt.Errorf("failed to start worker pool: %w", startErr)
	}

	go func() {
		if runErr := runner.Run(ctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
			deps.Logger.Error("job runner exited", "error", runErr)
		}
	}()

	return pool, nil
}

// consumerID builds a consumer name unique to this process.
func consumerID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "shopsearch"
	}
	return fmt.Sprintf("%s-%d", hostname, os.Getpid())
}

// runUntilInterrupt runs the server until interrupted by signal or error.
func runUntilInterrupt(
	deps *common.CommandDeps,
	server *http.Server,
	pool *worker.Pool,
	sweeper *job.Sweeper,
	stopRunner context.CancelFunc,
	errChan chan error,
) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		deps.Logger.Error("Server error", "error", serverErr)
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		return shutdown(deps.Logger, deps.Config.Server.ShutdownTimeout, server, pool, sweeper, stopRunner, sig)
	}
}

// shutdown performs graceful shutdown of all components.
func shutdown(
	log logger.Interface,
	timeout time.Duration,
	server *http.Server,
	pool *worker.Pool,
	sweeper *job.Sweeper,
	stopRunner context.CancelFunc,
	sig os.Signal,
) error {
	log.Info("Shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting new jobs, then drain in-flight ones
	stopRunner()
	if err := pool.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop worker pool", "error", err)
	}

	sweeper.Stop()

	log.Info("Stopping HTTP server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
