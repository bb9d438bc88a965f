// Package server wires the REST API: routing, auth middleware, handlers.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jetsaguirel/simple-blog/internal/config"
	"github.com/jetsaguirel/simple-blog/internal/domain"
	apperrors "github.com/jetsaguirel/simple-blog/internal/errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestBodyLimit = "256K"

// tokenVerifier is the auth boundary the middleware consumes.
type tokenVerifier interface {
	Verify(token string) (primitive.ObjectID, error)
}

// storePinger is a minimal interface for readiness checks.
type storePinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo        *echo.Echo
	config      *config.Config
	app         domain.AppService
	tokens      tokenVerifier
	mongoHealth storePinger
	redisClient *goredis.Client
	startTime   time.Time
}

func NewServer(cfg *config.Config, app domain.AppService, tokens tokenVerifier, mongoHealth storePinger, redisClient *goredis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.BodyLimit(requestBodyLimit))
	e.Use(middleware.CORS())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:        e,
		config:      cfg,
		app:         app,
		tokens:      tokens,
		mongoHealth: mongoHealth,
		redisClient: redisClient,
		startTime:   time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
