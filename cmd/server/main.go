package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jetsaguirel/simple-blog/internal/app"
	"github.com/jetsaguirel/simple-blog/internal/auth"
	"github.com/jetsaguirel/simple-blog/internal/config"
	"github.com/jetsaguirel/simple-blog/internal/logging"
	"github.com/jetsaguirel/simple-blog/internal/mongodb"
	"github.com/jetsaguirel/simple-blog/internal/reaction"
	"github.com/jetsaguirel/simple-blog/internal/redis"
	"github.com/jetsaguirel/simple-blog/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupMongo(cfg *config.Config) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, cfg.MongoURL, cfg.MongoDB)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	return client, db
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, mongoClient *mongo.Client, redisClient *goredis.Client) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			slog.Error("MongoDB disconnect error", "error", err)
		}
		if err := redisClient.Close(); err != nil {
			slog.Error("Redis close error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	mongoClient, db := setupMongo(cfg)
	redisClient := setupRedis(context.Background(), cfg)

	// Repositories share the process-scoped database handle.
	userRepo := mongodb.NewUserRepo(db)
	blogRepo := mongodb.NewBlogRepo(db)

	debouncer := redis.NewDebouncer(redisClient)
	engine := reaction.NewEngine(blogRepo, debouncer)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, clock)

	appSvc := app.NewService(userRepo, blogRepo, engine, hasher, tokens)

	srv := server.NewServer(cfg, appSvc, tokens, mongodb.NewHealthChecker(mongoClient), redisClient)

	done := runGracefulShutdown(srv, mongoClient, redisClient)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
