package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/weiawesome/wes-io-live/uid-service/internal/config"
	idgrpc "github.com/weiawesome/wes-io-live/uid-service/internal/grpc"
	"github.com/weiawesome/wes-io-live/uid-service/internal/handler"
	"github.com/weiawesome/wes-io-live/uid-service/internal/ledger"
	"github.com/weiawesome/wes-io-live/uid-service/internal/service"
	pkgconfig "github.com/weiawesome/wes-io-live/uid-service/pkg/config"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/database"
	pkglog "github.com/weiawesome/wes-io-live/uid-service/pkg/log"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

// correlationProfile, when configured, supplies request IDs for logging.
const correlationProfile = "correlation"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "uid-service",
	})
	logger := pkglog.L()

	logger.Info().Msg("starting uid-service")

	// Build one generator per profile; all random kinds share crypto/rand
	profiles, err := service.BuildProfiles(cfg.Profiles, cfg.Snowflake, uid.CryptoSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build id profiles")
	}
	for _, p := range profiles {
		info := p.Info()
		logger.Info().
			Str(pkglog.FieldProfile, info.Name).
			Str(pkglog.FieldKind, info.Kind).
			Str(pkglog.FieldAlphabet, info.Alphabet).
			Int("length", info.Length).
			Bool("unique", info.Unique).
			Msg("profile initialized")
	}

	// Initialize issued-id ledger
	idLedger := ledger.Nop()
	if cfg.Ledger.Enabled {
		idLedger = openLedger(cfg, logger)
		defer idLedger.Close()
	}

	idService := service.NewIDService(profiles, service.Options{
		Ledger:         idLedger,
		Source:         uid.CryptoSource,
		MaxBatch:       cfg.Batch.MaxCount,
		MaxAttempts:    cfg.Ledger.MaxAttempts,
		MaxBitStrength: cfg.Batch.MaxBitStrength,
	})

	if p, ok := profiles[correlationProfile]; ok {
		pkglog.SetRequestIDFunc(func() (string, error) {
			return p.Generator.Generate(context.Background())
		})
	}

	// Start gRPC server
	grpcAddr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
	grpcServer, err := idgrpc.StartGRPCServer(grpcAddr, idService, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start grpc server")
	}

	// Setup Gin router
	gin.SetMode(pkgconfig.GetEnv("GIN_MODE", gin.ReleaseMode))
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	handler.NewHandler(idService).RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start http server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down uid-service")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown error")
	}
	grpcServer.GracefulStop()

	logger.Info().Msg("uid-service stopped")
}

func openLedger(cfg *config.Config, logger zerolog.Logger) ledger.Ledger {
	switch cfg.Ledger.Backend {
	case config.LedgerBackendDatabase:
		db, err := database.New(&database.Config{
			Driver:          cfg.Database.Driver,
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			DBName:          cfg.Database.DBName,
			SSLMode:         cfg.Database.SSLMode,
			FilePath:        cfg.Database.FilePath,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		dbLedger, err := ledger.NewGormLedger(db, cfg.Ledger.TTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to auto-migrate")
		}
		go pruneLoop(dbLedger, cfg.Ledger.TTL, logger)
		logger.Info().Str("driver", cfg.Database.Driver).Dur("ttl", cfg.Ledger.TTL).Msg("database ledger connected")
		return dbLedger

	case config.LedgerBackendRedis, "":
		redisLedger, err := ledger.NewRedisLedger(cfg.Redis, cfg.Ledger.Prefix, cfg.Ledger.TTL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		logger.Info().Str("addr", cfg.Redis.Address).Dur("ttl", cfg.Ledger.TTL).Msg("redis ledger connected")
		return redisLedger

	default:
		logger.Fatal().Str("backend", cfg.Ledger.Backend).Msg("unknown ledger backend")
		return nil
	}
}

// pruneLoop removes expired database claims; redis expires keys itself.
func pruneLoop(l *ledger.GormLedger, ttl time.Duration, logger zerolog.Logger) {
	interval := ttl
	if interval <= 0 || interval > time.Hour {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		n, err := l.Prune(context.Background())
		if err != nil {
			logger.Warn().Err(err).Msg("failed to prune ledger")
			continue
		}
		if n > 0 {
			logger.Debug().Int64("pruned", n).Msg("ledger pruned")
		}
	}
}
