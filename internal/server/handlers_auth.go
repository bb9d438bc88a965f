package server

import (
	"errors"
	"strings"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	apperrors "github.com/jetsaguirel/simple-blog/internal/errors"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if !validName(req.Name) {
		return apperrors.ValidationError("name must be at least 2 characters")
	}
	if !validEmail(req.Email) {
		return apperrors.ValidationError("please enter a valid email")
	}
	if !validPassword(req.Password) {
		return apperrors.ValidationError("password must be at least 6 characters")
	}

	user, token, err := s.app.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(201, map[string]any{
		"token":   token,
		"user":    newUserView(user),
		"message": "User registered successfully",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if !validEmail(req.Email) {
		return apperrors.ValidationError("please enter a valid email")
	}
	if req.Password == "" {
		return apperrors.ValidationError("password is required")
	}

	user, token, err := s.app.Login(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return apperrors.UnauthorizedError("invalid credentials")
	}
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(200, map[string]any{
		"token":   token,
		"user":    newUserView(user),
		"message": "Login successful",
	})
}

func (s *Server) handleCurrentUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := s.app.GetUser(c.Request().Context(), userID)
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(200, map[string]any{"user": newUserView(user)})
}
