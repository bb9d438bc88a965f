package server

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	apperrors "github.com/jetsaguirel/simple-blog/internal/errors"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Auth middleware ---

// requireAuth authenticates the request from its bearer token and stores the
// user id in the echo context under "userID".
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperrors.UnauthorizedError("missing bearer token")
		}

		userID, err := s.tokens.Verify(token)
		if err != nil {
			return apperrors.UnauthorizedError("invalid or expired token")
		}

		c.Set("userID", userID)
		return next(c)
	}
}

// currentUserID returns the authenticated user id set by requireAuth.
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, apperrors.InternalError("invalid user ID in context", nil)
	}
	return userID, nil
}

// pathObjectID parses the ":id" route parameter.
func pathObjectID(c echo.Context) (primitive.ObjectID, error) {
	raw := c.Param("id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.ValidationError("invalid id format").WithField("id", raw)
	}
	return id, nil
}

// mapStoreError translates repository failures that any handler can hit.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, domain.ErrBlogNotFound):
		return apperrors.NotFoundError("blog not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NotFoundError("user not found")
	case errors.Is(err, domain.ErrNotAuthor):
		return apperrors.ForbiddenError("not the author of this blog")
	case errors.Is(err, domain.ErrEmailTaken):
		return apperrors.ConflictError("email already in use")
	case errors.Is(err, domain.ErrStoreUnavailable):
		return apperrors.UnavailableError("store temporarily unavailable, retry later", err)
	default:
		return err
	}
}

// --- Input validation ---

func validName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validPassword(password string) bool {
	return len(password) >= 6
}

// --- Response shaping ---

type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserView(u *domain.User) userView {
	return userView{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type authorView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type blogView struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Author       *authorView `json:"author"`
	LikeCount    int         `json:"likeCount"`
	DislikeCount int         `json:"dislikeCount"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func newBlogView(b *domain.Blog) blogView {
	view := blogView{
		ID:           b.ID.Hex(),
		Title:        b.Title,
		Content:      b.Content,
		LikeCount:    b.LikeCount(),
		DislikeCount: b.DislikeCount(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Author != nil {
		view.Author = &authorView{
			ID:    b.Author.ID.Hex(),
			Name:  b.Author.Name,
			Email: b.Author.Email,
		}
	}
	return view
}
