package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"go-hrm/internal/bootstrap"
	"go-hrm/internal/config"
	"go-hrm/internal/database"
	"go-hrm/internal/middleware"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunAPI serves the HTTP API until ctx is cancelled.
func RunAPI(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	gormDB, sqlDB, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.App.MaxRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()
	logger.Info("redis connection established")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())
	router.GET("/healthz", healthHandler(sqlDB, rdb))

	auditLogger := bootstrap.NewStdoutAuditLogger(logger)
	svc := buildServices(cfg, sqlDB, gormDB, rdb, auditLogger, logger)
	if err := registerModules(router, cfg, gormDB, rdb, svc, logger); err != nil {
		return err
	}

	return bootstrap.StartHTTPServer(ctx, router, bootstrap.ServerConfig{
		Port:            cfg.HTTP.Port,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: 10 * time.Second,
	}, auditLogger)
}

func healthHandler(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			unavailable := apperror.ErrServiceUnavailable
			response.Error(c, unavailable.HTTPStatus, unavailable.Code, unavailable.Message, gin.H{"database": err.Error()})
			return
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			unavailable := apperror.ErrServiceUnavailable
			response.Error(c, unavailable.HTTPStatus, unavailable.Code, unavailable.Message, gin.H{"redis": err.Error()})
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	}
}

func openDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.App.MaxRetries)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	if cfg.App.AutoMigrate {
		if err := database.Migrate(gormDB, logger); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
	}
	return gormDB, sqlDB, nil
}

// NewLogger builds the process logger: JSON in production, console otherwise.
func NewLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
