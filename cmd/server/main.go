package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/wearly/stylist-service/internal/auth"
	"github.com/wearly/stylist-service/internal/cache"
	"github.com/wearly/stylist-service/internal/config"
	"github.com/wearly/stylist-service/internal/csrf"
	"github.com/wearly/stylist-service/internal/email"
	"github.com/wearly/stylist-service/internal/handler"
	"github.com/wearly/stylist-service/internal/media"
	"github.com/wearly/stylist-service/internal/repository"
	"github.com/wearly/stylist-service/internal/router"
	"github.com/wearly/stylist-service/internal/service"
	"github.com/wearly/stylist-service/internal/stylist"
	"github.com/wearly/stylist-service/internal/vision"
	"github.com/wearly/stylist-service/internal/weather"
	"github.com/wearly/stylist-service/seeds"
)

func main() {
	// Load configuration; .env is optional outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to parse database config %v", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatalf("failed to connect to database %v", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatalf("database not ready: %v", err)
	}
	log.Println("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrateDown(ctx, pool); err != nil {
			log.Fatalf("failed to migrate down %v", err)
		}
		log.Println("migrations dropped")
		return
	}

	if err := migrateUp(ctx, pool); err != nil {
		log.Fatalf("failed to migrate up %v", err)
	}

	// ------------ Setup Seed Data ---------------
	if err := checkSeed(ctx, pool); err != nil {
		log.Fatalf("failed to check seed %v", err)
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to parse redis URL %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	appCache := cache.NewCache(redisClient, cfg.WeatherCacheTTL, cfg.RecommendationCacheTTL)
	if err := appCache.Ping(ctx); err != nil {
		log.Fatalf("redis not ready: %v", err)
	}
	log.Println("connected to Redis")

	// ------------ Wiring ---------------
	mediaStore, err := media.NewStore(cfg.MediaDir, cfg.ThumbnailSize)
	if err != nil {
		log.Fatalf("failed to init media store %v", err)
	}

	repo := repository.NewRepository(pool)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.ActivationTokenTTL, cfg.PasswordResetTokenTTL)
	emailSender := email.NewSender(cfg.ResendAPIKey, cfg.EmailFrom)
	csrfStore := csrf.NewStore(redisClient, cfg.CSRFTokenTTL)

	svc := service.NewService(
		repo,
		appCache,
		weather.NewClient(cfg.WeatherAPIEndpoint, cfg.WeatherAPIKey),
		vision.NewClient(cfg.VisionAPIEndpoint, cfg.VisionAPIKey),
		stylist.NewClient(cfg.StylistAPIEndpoint, cfg.StylistAPIKey, cfg.StylistModel),
		mediaStore,
		emailSender,
	)
	authSvc := service.NewAuthService(repo, tokens, emailSender, cfg.SiteBaseURL)
	h := handler.NewHandler(svc, authSvc, csrfStore, cfg.CSRFTokenTTL)

	// ---------------- Server --------------------
	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.Setup(h, tokens, csrfStore, cfg.MediaDir),
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Printf("waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.down.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations dropped successfully")
	return nil
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	sql, err := os.ReadFile("migrations/create_tables.up.sql")
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	log.Println("migrations applied successfully")
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM canonical_tags").Scan(&count); err != nil {
		return fmt.Errorf("check canonical tags count: %w", err)
	}
	if count > 0 {
		log.Printf("database already seeded (%d canonical tags), skipping", count)
		return nil
	}
	return seeds.Setup(ctx, pool)
}
