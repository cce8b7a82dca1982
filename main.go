package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"caretrack/cache"
	"caretrack/config"
	"caretrack/config/db"
	"caretrack/jobs"
	"caretrack/logger"
	"caretrack/metrics"
	"caretrack/middleware"
	"caretrack/migrations"
	"caretrack/routes"
	"caretrack/services"
	"caretrack/validation"
)

func main() {
	run()
}

func run() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error in loading the ENV")
	}

	cfg := config.Load()
	if err := logger.Init(cfg); err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer logger.L.Sync()

	services.Cfg = cfg
	metrics.Init(cfg.AppName)
	validation.Register()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx, cfg); err != nil {
		logger.L.Fatal("mongo connection failed", zap.Error(err))
	}
	defer db.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx); err != nil {
		logger.L.Fatal("index bootstrap failed", zap.Error(err))
	}
	if err := migrations.SeedSequenceCounters(ctx); err != nil {
		logger.L.Fatal("counter migration failed", zap.Error(err))
	}

	cache.Init(cfg)
	if cache.Enabled() {
		logger.L.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	if cfg.JobsEnabled {
		jobs.StartDailyScheduler()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.L.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.L.Fatal("server stopped", zap.Error(err))
	}
}
