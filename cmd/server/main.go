package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/simaogato/umbral-backend/internal/adapter/cache"
	grpcadapter "github.com/simaogato/umbral-backend/internal/adapter/grpc"
	umbralv1 "github.com/simaogato/umbral-backend/internal/adapter/grpc/umbral/v1"
	httpadapter "github.com/simaogato/umbral-backend/internal/adapter/http"
	"github.com/simaogato/umbral-backend/internal/adapter/llm"
	"github.com/simaogato/umbral-backend/internal/adapter/market"
	"github.com/simaogato/umbral-backend/internal/adapter/repository/memory"
	"github.com/simaogato/umbral-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/umbral-backend/internal/config"
	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/scheduler"
	"github.com/simaogato/umbral-backend/internal/usecase/account"
	"github.com/simaogato/umbral-backend/internal/usecase/advisor"
	"github.com/simaogato/umbral-backend/internal/usecase/dashboard"
	"github.com/simaogato/umbral-backend/internal/usecase/envelope"
	"github.com/simaogato/umbral-backend/internal/usecase/profile"
	"github.com/simaogato/umbral-backend/internal/usecase/rates"
	"github.com/simaogato/umbral-backend/internal/usecase/seeder"
	"github.com/simaogato/umbral-backend/pkg/logger"
)

const (
	dbConnectAttempts = 5
	dbRetryDelay      = 2 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// repositories groups the storage backend selected by configuration
type repositories struct {
	profiles  domain.ProfileRepository
	envelopes domain.EnvelopeRepository
	accounts  domain.AccountRepository
	snapshots domain.RateSnapshotRepository
	close     func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("storage", cfg.Storage).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting Umbral backend")

	ctx := context.Background()

	// 1. Setup storage
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := repos.close(); err != nil {
			log.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	// 2. Setup market rates
	rateCache := openRateCache(ctx, cfg, log)
	provider := market.NewProvider(
		market.NewExchangeRateClient(cfg.ExchangeRateURL, log),
		market.NewCoinGeckoClient(cfg.CoinGeckoURL, log),
		log,
	)
	rateService := rates.NewRateService(provider, rateCache, repos.snapshots, cfg.RatesTTL, log)

	// 3. Initialize services (use cases)
	profileSeeder := seeder.NewProfileSeeder(repos.profiles)
	profileService := profile.NewProfileService(repos.profiles, profileSeeder, rateService)
	envelopeService := envelope.NewEnvelopeService(repos.envelopes, profileSeeder)
	accountService := account.NewAccountService(repos.accounts)
	dashboardService := dashboard.NewDashboardService(profileSeeder, repos.envelopes, repos.accounts, rateService, log)
	dashboardService.Location = cfg.Location

	gemini := llm.NewGeminiClient(cfg.GeminiAPIKey, "", cfg.GeminiModel, log)
	if !gemini.Enabled() {
		log.Warn().Msg("GEMINI_API_KEY not set, advisor will answer with fallback texts")
	}
	advisorService := advisor.NewAdvisorService(gemini, cfg.GeminiModel, cfg.GeminiInsightModel, log)

	if cfg.DevMode {
		if err := profileSeeder.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo profile")
		}
		log.Info().Str("user_id", seeder.DemoUserID.String()).Msg("Demo profile seeded")
	}

	// 4. Start background jobs
	sched := scheduler.New(log)
	refreshJob := scheduler.NewRefreshRatesJob(rateService, log)
	if err := sched.AddJob(cfg.RatesSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.RatesSchedule).Msg("Failed to register rate refresh job")
	}
	go func() {
		if err := sched.RunNow(refreshJob); err != nil {
			log.Warn().Err(err).Msg("Initial rate refresh failed, serving fallback rates")
		}
	}()
	sched.Start()

	// 5. Start gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	service := grpcadapter.NewServer(profileService, envelopeService, accountService, dashboardService, advisorService, rateService)
	umbralv1.RegisterUmbralServiceServer(grpcServer, service)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(umbralv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	grpcadapter.RegisterReflection(grpcServer)

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", grpcAddr).Msg("Failed to listen")
	}

	go func() {
		log.Info().Str("addr", grpcAddr).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve gRPC server")
		}
	}()

	// 6. Start HTTP server
	httpServer := httpadapter.New(httpadapter.Config{
		Port:     cfg.HTTPPort,
		Log:      log,
		APIToken: cfg.APIToken,
		Service:  service,
		DevMode:  cfg.DevMode,
	})

	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to serve HTTP server")
		}
	}()

	// Graceful shutdown
	waitForShutdown(log, healthServer, grpcServer, httpServer, sched)
}

// openRepositories connects to the configured storage backend
func openRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			profiles:  memory.NewProfileRepository(store),
			envelopes: memory.NewEnvelopeRepository(store),
			accounts:  memory.NewAccountRepository(store),
			snapshots: memory.NewRateSnapshotRepository(store),
			close:     func() error { return nil },
		}, nil
	}

	var db *postgres.DB
	var err error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err = postgres.NewDB(ctx, cfg.DBConnStr)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("Database not ready, retrying")
		time.Sleep(dbRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Msg("Database schema applied")

	return &repositories{
		profiles:  postgres.NewProfileRepository(db),
		envelopes: postgres.NewEnvelopeRepository(db),
		accounts:  postgres.NewAccountRepository(db),
		snapshots: postgres.NewRateSnapshotRepository(db),
		close:     db.Close,
	}, nil
}

// openRateCache returns the Redis cache when configured and reachable, else an in-process cache
func openRateCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) domain.RateCache {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryRateCache()
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(pingCtx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, using in-memory rate cache")
		return cache.NewMemoryRateCache()
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis rate cache")
	return cache.NewRedisRateCache(client, cache.DefaultKey)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(
	log zerolog.Logger,
	healthServer *health.Server,
	grpcServer *grpclib.Server,
	httpServer *httpadapter.Server,
	sched *scheduler.Scheduler,
) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	healthServer.Shutdown()
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	grpcServer.GracefulStop()
	log.Info().Msg("gRPC server stopped")
}
