package server

import (
	"strings"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	apperrors "github.com/jetsaguirel/simple-blog/internal/errors"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Server) handleListBlogs(c echo.Context) error {
	filter := domain.BlogFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
	}

	if author := c.QueryParam("author"); author != "" {
		authorID, err := primitive.ObjectIDFromHex(author)
		if err != nil {
			return apperrors.ValidationError("invalid author id").WithField("author", author)
		}
		filter.AuthorID = &authorID
	}

	blogs, err := s.app.ListBlogs(c.Request().Context(), filter)
	if err != nil {
		return mapStoreError(err)
	}

	views := make([]blogView, 0, len(blogs))
	for i := range blogs {
		views = append(views, newBlogView(&blogs[i]))
	}
	return c.JSON(200, map[string]any{"blogs": views})
}

func (s *Server) handleGetBlog(c echo.Context) error {
	id, err := pathObjectID(c)
	if err != nil {
		return err
	}

	blog, err := s.app.GetBlog(c.Request().Context(), id)
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(200, map[string]any{"blog": newBlogView(blog)})
}

type createBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) handleCreateBlog(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" {
		return apperrors.ValidationError("title is required")
	}
	if req.Content == "" {
		return apperrors.ValidationError("content is required")
	}

	blog, err := s.app.CreateBlog(c.Request().Context(), userID, req.Title, req.Content)
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(201, map[string]any{
		"blog":    newBlogView(blog),
		"message": "Blog created successfully",
	})
}

type updateBlogRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *Server) handleUpdateBlog(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c)
	if err != nil {
		return err
	}

	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	update := domain.BlogUpdate{}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return apperrors.ValidationError("title cannot be empty")
		}
		update.Title = &trimmed
	}
	if req.Content != nil {
		trimmed := strings.TrimSpace(*req.Content)
		if trimmed == "" {
			return apperrors.ValidationError("content cannot be empty")
		}
		update.Content = &trimmed
	}

	blog, err := s.app.UpdateBlog(c.Request().Context(), id, userID, update)
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(200, map[string]any{
		"blog":    newBlogView(blog),
		"message": "Blog updated successfully",
	})
}

func (s *Server) handleDeleteBlog(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c)
	if err != nil {
		return err
	}

	if err := s.app.DeleteBlog(c.Request().Context(), id, userID); err != nil {
		return mapStoreError(err)
	}

	return c.JSON(200, map[string]any{"message": "Blog deleted successfully"})
}

// --- Reactions ---

func (s *Server) handleLikeBlog(c echo.Context) error {
	return s.handleReaction(c, domain.ReactionLike)
}

func (s *Server) handleDislikeBlog(c echo.Context) error {
	return s.handleReaction(c, domain.ReactionDislike)
}

func (s *Server) handleReaction(c echo.Context, kind domain.ReactionKind) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathObjectID(c)
	if err != nil {
		return err
	}

	result, err := s.app.React(c.Request().Context(), id, userID, kind)
	if err != nil {
		return mapStoreError(err)
	}

	return c.JSON(200, result)
}
