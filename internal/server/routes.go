package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	v1 := s.echo.Group("/api/v1")

	// Auth (register/login are rate limited per client IP)
	loginLimiter := newRateLimiter(s.config.LoginRatePerSecond, s.config.LoginRateBurst)
	v1.POST("/auth/register", s.handleRegister, loginLimiter)
	v1.POST("/auth/login", s.handleLogin, loginLimiter)
	v1.GET("/auth/me", s.handleCurrentUser, s.requireAuth)

	// Users
	v1.GET("/users/profile", s.handleGetProfile, s.requireAuth)
	v1.PUT("/users/profile", s.handleUpdateProfile, s.requireAuth)
	v1.GET("/users/:id", s.handleGetUser)

	// Blogs (reads are public, writes require auth)
	v1.GET("/blogs", s.handleListBlogs)
	v1.GET("/blogs/:id", s.handleGetBlog)
	v1.POST("/blogs", s.handleCreateBlog, s.requireAuth)
	v1.PUT("/blogs/:id", s.handleUpdateBlog, s.requireAuth)
	v1.DELETE("/blogs/:id", s.handleDeleteBlog, s.requireAuth)

	// Reactions: both endpoints funnel into the same engine, which enforces
	// mutual exclusion regardless of which one is called.
	v1.POST("/blogs/:id/like", s.handleLikeBlog, s.requireAuth)
	v1.POST("/blogs/:id/dislike", s.handleDislikeBlog, s.requireAuth)
}
