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

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	"go-jobboard-backend/internal/delivery/http/middleware"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Board API
// @version         1.0
// @description     Users, companies and job postings with token-based ownership checks.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "store", cfg.StoreDriver, "auth_mode", cfg.AuthMode)

	ctx := context.Background()
	health := map[string]usecase.Pinger{}

	// 3. Setup Store
	var store domain.Store
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Log.Warn("Using in-memory store - data is lost on restart")
		store = memory.NewStore()
	case config.StoreDriverPostgres:
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, dbPool); err != nil {
				logger.Log.Error("Failed to run migrations", "error", err)
				os.Exit(1)
			}
		}
		store = postgres.NewStore(dbPool)
		health["database"] = dbPool
	default:
		logger.Log.Error("Unknown STORE_DRIVER", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	// 4. Setup Redis (optional, rate limiting falls back to memory)
	var redisClient *goredis.Client
	redisClient, err = redis.Connect(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Info("Redis not configured - rate limiting uses in-memory counters")
	case err != nil:
		logger.Log.Warn("Redis unavailable - rate limiting uses in-memory fallback", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
		health["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// 5. Setup Authorization
	var extractor auth.IdentityExtractor
	switch cfg.AuthMode {
	case config.AuthModeHMAC:
		if cfg.JWTSecret == "" {
			logger.Log.Error("AUTH_MODE=hmac requires JWT_SECRET")
			os.Exit(1)
		}
		extractor = auth.HMACVerifier{Secret: []byte(cfg.JWTSecret)}
	case config.AuthModeJWKS:
		if cfg.JWKSURL == "" {
			logger.Log.Error("AUTH_MODE=jwks requires JWKS_URL")
			os.Exit(1)
		}
		extractor = auth.NewProvider(cfg.JWKSURL)
	default:
		logger.Log.Warn("AUTH_MODE=decode - token signatures are NOT verified")
		extractor = auth.DecodeOnly{}
	}
	authz := auth.NewAuthorizer(extractor)
	hasher := security.NewBcryptHasher(security.DefaultCost)

	audit := security.NewAuditLogger()
	defer audit.Sync()
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.LoginMaxAttempts,
		AttemptWindow: cfg.LoginBlockDuration,
		BlockDuration: cfg.LoginBlockDuration,
	}, redisClient, audit)

	// 6. Setup Photo Storage
	var files domain.FileStorage
	if cfg.S3Enabled() {
		files, err = storage.NewS3(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
		})
	} else {
		files, err = storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	}
	if err != nil {
		logger.Log.Error("Failed to initialize photo storage", "error", err)
		os.Exit(1)
	}

	// 7. Setup UseCases
	schemas, err := v1.NewSchemaRegistry()
	if err != nil {
		logger.Log.Error("Failed to compile request schemas", "error", err)
		os.Exit(1)
	}

	userUC := usecase.NewUserUsecase(store, authz, hasher, storage.NewJPEGResizer(cfg.PhotoMaxPixels), files)
	companyUC := usecase.NewCompanyUsecase(store, authz, hasher, cfg.CompanyDeleteCascade)
	jobUC := usecase.NewJobUsecase(store, authz)
	authUC := usecase.NewAuthUsecase(store, hasher, auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL), loginTracker)
	healthUC := usecase.NewHealthUsecase(health)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:      userUC,
		CompanyUC:   companyUC,
		JobUC:       jobUC,
		AuthUC:      authUC,
		HealthUC:    healthUC,
		Authorizer:  authz,
		Schemas:     schemas,
		RateLimiter: middleware.NewRateLimiter(redisClient, audit),
		Config:      cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
