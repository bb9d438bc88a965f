package server

import (
	"errors"
	"strings"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	apperrors "github.com/jetsaguirel/simple-blog/internal/errors"
	"github.com/labstack/echo/v4"
)

func (s *Server) handleGetProfile(c echo.Context) error {
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

type updateProfileRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     *string `json:"newPassword"`
}

func (s *Server) handleUpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	// Any profile change re-verifies the current password.
	if req.CurrentPassword == "" {
		return apperrors.ValidationError("current password is required to update profile")
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if !validName(trimmed) {
			return apperrors.ValidationError("name must be at least 2 characters")
		}
		req.Name = &trimmed
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		if !validEmail(trimmed) {
			return apperrors.ValidationError("please enter a valid email")
		}
		req.Email = &trimmed
	}
	if req.NewPassword != nil && !validPassword(*req.NewPassword) {
		return apperrors.ValidationError("new password must be at least 6 characters")
	}

	user, err := s.app.UpdateProfile(c.Request().Context(), userID, req.CurrentPassword, req.Name, req.Email, req.NewPassword)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return apperrors.ValidationError("current password is incorrect")
	}
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(200, map[string]any{
		"user":    newUserView(user),
		"message": "Profile updated successfully",
	})
}

func (s *Server) handleGetUser(c echo.Context) error {
	id, err := pathObjectID(c)
	if err != nil {
		return err
	}

	user, err := s.app.GetUser(c.Request().Context(), id)
	if err != nil {
		return mapStoreError(err)
	}

	// Public profile: no timestamps beyond account age, no private fields.
	return c.JSON(200, map[string]any{
		"user": map[string]any{
			"id":        user.ID.Hex(),
			"name":      user.Name,
			"email":     user.Email,
			"createdAt": user.CreatedAt,
		},
	})
}
