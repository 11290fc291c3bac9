package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student_intake/internal/config"
	"student_intake/internal/handler"
	"student_intake/internal/middleware"
	"student_intake/internal/repository"
	"student_intake/internal/service"
	"student_intake/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.JWTTTL)
	rosterValidator := utils.NewPhoneValidator(cfg.PhoneRegion, cfg.PhoneRequireMobile)
	registryValidator := utils.NewPhoneValidator(cfg.PhoneRegion, false)

	// --- Roster ---
	directory := service.NewRosterDirectory(nil, logger)
	switch cfg.RosterSource {
	case config.RosterSourcePostgres:
		dbCfg, err := config.LoadDBConfig()
		if err != nil {
			logger.Fatal("failed to load DB config", zap.Error(err))
		}
		var seed repository.RosterSource
		if cfg.RosterSeedCSV != "" {
			seed = repository.NewCSVRoster(cfg.RosterSeedCSV, registryValidator.Validate)
		}
		dbPool, err := config.ConnectDB(ctx, dbCfg, logger)
		if err != nil {
			// Serve anyway; /login answers 503 until the database is attached
			logger.Error("database unreachable, retrying in background", zap.Error(err))
			go awaitDatabase(ctx, dbCfg, seed, directory, logger)
		} else {
			defer dbPool.Close()
			if err := attachDatabase(ctx, dbPool, seed, directory, logger); err != nil {
				logger.Fatal("failed to attach database", zap.Error(err))
			}
		}
	case config.RosterSourceCSV:
		directory.SetSource(repository.NewCSVRoster(cfg.RosterCSV, registryValidator.Validate))
		if err := directory.Reload(ctx); err != nil {
			logger.Error("initial roster load failed", zap.Error(err))
		}
	default:
		logger.Warn("no roster source configured, /login will answer 503")
	}

	// --- Pending queue ---
	var pendingStore repository.PendingStore
	switch cfg.QueueBackend {
	case config.QueueBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  1 * time.Second,
			WriteTimeout: 1 * time.Second,
		})
		defer redisClient.Close()
		pendingStore = repository.NewRedisPendingStore(redisClient, cfg.RedisKey, logger)
	default:
		pendingStore = repository.NewMemoryPendingStore()
	}
	logger.Info("pending queue backend selected", zap.String("backend", cfg.QueueBackend))

	if cfg.ExportKeyHash == "" {
		logger.Warn("EXPORT_KEY_HASH not set, /coletar_dados_para_planilha is unauthenticated")
	}

	// --- Initialize Services ---
	loginService := service.NewLoginService(rosterValidator, jwtUtil, directory, logger)
	registryService := service.NewRegistryService(registryValidator, repository.NewRegistry(), logger)
	submissionService := service.NewSubmissionService(pendingStore, rosterValidator, logger)
	scorer := service.NewScorer(service.DefaultQuestions)

	// --- Initialize Handlers ---
	loginHandler := handler.NewLoginHandler(loginService, registryService, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)
	questionnaireHandler := handler.NewQuestionnaireHandler(scorer)
	healthHandler := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"directory": func(context.Context) bool { return directory.Available() },
		"queue":     pendingStore.Healthy,
	}, directory)

	// --- Setup Gin Router ---
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ZapLogger(logger, "/health", "/metrics"))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil, logger)
	exportKeyMW := middleware.ExportKeyMiddleware(cfg.ExportKeyHash)
	loginLimitMW := middleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).Middleware()

	// --- Register Routes ---
	loginHandler.RegisterLoginRoutes(router, loginLimitMW)
	submissionHandler.RegisterSubmissionRoutes(router, jwtAuthMW, exportKeyMW)
	questionnaireHandler.RegisterQuestionnaireRoutes(router)
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Reload the roster on SIGHUP
	go reloadOnHangup(ctx, directory, logger)

	// --- Start Server ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// attachDatabase migrates the schema, imports the seed roster if any and
// makes the students table the directory's source
func attachDatabase(ctx context.Context, pool *pgxpool.Pool, seed repository.RosterSource, directory *service.RosterDirectory, logger *zap.Logger) error {
	if err := config.AutoMigrate(ctx, pool); err != nil {
		return err
	}
	repo := repository.NewStudentRepository(pool)
	if seed != nil {
		if _, err := service.ImportRoster(ctx, seed, repo, logger); err != nil {
			logger.Error("roster seed import failed", zap.Error(err))
		}
	}
	directory.SetSource(repo)
	if err := directory.Reload(ctx); err != nil {
		logger.Error("initial roster load failed", zap.Error(err))
	}
	return nil
}

// awaitDatabase keeps connecting until the database can be attached, then
// holds the pool open until shutdown
func awaitDatabase(ctx context.Context, dbCfg *config.DBConfig, seed repository.RosterSource, directory *service.RosterDirectory, logger *zap.Logger) {
	for {
		pool, err := config.ConnectDB(ctx, dbCfg, logger)
		if err == nil {
			err = attachDatabase(ctx, pool, seed, directory, logger)
			if err == nil {
				logger.Info("database attached, roster source installed")
				<-ctx.Done()
				pool.Close()
				return
			}
			pool.Close()
		}
		logger.Error("database not attached, retrying", zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(30 * time.Second):
		}
	}
}

func reloadOnHangup(ctx context.Context, directory *service.RosterDirectory, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := directory.Reload(ctx); err != nil {
				logger.Error("roster reload failed", zap.Error(err))
			}
		}
	}
}
