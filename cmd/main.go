package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mitropoulosg/money-transfer-api/internal/config"
	"github.com/mitropoulosg/money-transfer-api/internal/events"
	"github.com/mitropoulosg/money-transfer-api/internal/handler"
	"github.com/mitropoulosg/money-transfer-api/internal/logging"
	"github.com/mitropoulosg/money-transfer-api/internal/middleware"
	"github.com/mitropoulosg/money-transfer-api/internal/repository"
	"github.com/mitropoulosg/money-transfer-api/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Database connection (accounts + ledger)
	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}
	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	// Redis connection (domain event streams)
	redisClient, err := events.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	publisher := events.NewPublisher(redisClient, cfg.Redis.StreamMaxLen)
	uow := repository.NewSQLUnitOfWork(db)
	accountService := service.NewAccountService(uow, publisher, logger)

	accountHandler := handler.NewAccountHandler(accountService)
	transferHandler := handler.NewTransferHandler(accountService)

	// Setup router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(logger))
	router.Use(middleware.PrometheusMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/accounts", accountHandler.CreateAccount)
		api.GET("/accounts", accountHandler.GetAllAccounts)
		api.GET("/accounts/:id", accountHandler.GetAccount)
		api.PUT("/accounts/:id", accountHandler.UpdateAccount)
		api.DELETE("/accounts/:id", accountHandler.DeleteAccount)
		api.POST("/transfer", transferHandler.TransferMoney)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("money transfer service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
