// Package app is the application layer — the only component that references
// multiple domain components. It orchestrates all use cases.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jetsaguirel/simple-blog/internal/auth"
	"github.com/jetsaguirel/simple-blog/internal/domain"
	"github.com/jetsaguirel/simple-blog/internal/logging"
	"github.com/jetsaguirel/simple-blog/internal/metrics"
	"github.com/jetsaguirel/simple-blog/internal/reaction"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	users  domain.UserRepository
	blogs  domain.BlogRepository
	engine *reaction.Engine
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

var _ domain.AppService = (*Service)(nil)

func NewService(users domain.UserRepository, blogs domain.BlogRepository, engine *reaction.Engine, hasher *auth.PasswordHasher, tokens *auth.TokenService) *Service {
	return &Service{
		users:  users,
		blogs:  blogs,
		engine: engine,
		hasher: hasher,
		tokens: tokens,
	}
}

// --- Auth ---

// Register creates an account and returns it with a fresh bearer token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Insert(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logging.WithUser(user.ID.Hex()).Info("User registered")
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	logging.WithUser(user.ID.Hex()).Info("User logged in")
	return user, token, nil
}

// --- Users ---

func (s *Service) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies a profile change after re-verifying the current
// password. Nil fields are left untouched.
func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, currentPassword string, name, email, newPassword *string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		return nil, err
	}

	update := domain.ProfileUpdate{Name: name, Email: email}
	if newPassword != nil {
		hash, err := s.hasher.Hash(*newPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		update.NewPasswordHash = &hash
	}

	return s.users.Update(ctx, id, update)
}

// --- Blogs ---

func (s *Service) CreateBlog(ctx context.Context, authorID primitive.ObjectID, title, content string) (*domain.Blog, error) {
	blog, err := s.blogs.Insert(ctx, &domain.Blog{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	})
	if err != nil {
		return nil, err
	}
	return s.attachAuthor(ctx, blog)
}

func (s *Service) GetBlog(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attachAuthor(ctx, blog)
}

func (s *Service) ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	blogs, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthors(ctx, blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// UpdateBlog applies a content edit, enforcing that only the author may edit.
func (s *Service) UpdateBlog(ctx context.Context, id, authorID primitive.ObjectID, update domain.BlogUpdate) (*domain.Blog, error) {
	if err := s.checkAuthorship(ctx, id, authorID); err != nil {
		return nil, err
	}

	blog, err := s.blogs.Update(ctx, id, authorID, update)
	if err != nil {
		return nil, err
	}
	return s.attachAuthor(ctx, blog)
}

func (s *Service) DeleteBlog(ctx context.Context, id, authorID primitive.ObjectID) error {
	if err := s.checkAuthorship(ctx, id, authorID); err != nil {
		return err
	}
	return s.blogs.Delete(ctx, id, authorID)
}

// checkAuthorship distinguishes a missing blog (not found) from someone
// else's blog (forbidden). The repository filters on author anyway, so a
// race here can only turn a 403 into a 404, never leak a write.
func (s *Service) checkAuthorship(ctx context.Context, id, authorID primitive.ObjectID) error {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if blog.AuthorID != authorID {
		return domain.ErrNotAuthor
	}
	return nil
}

// --- Reactions ---

// React toggles the user's reaction of the given kind on a blog.
func (s *Service) React(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind) (*domain.ReactionResult, error) {
	return s.engine.Apply(ctx, blogID, userID, kind)
}

// --- Author population ---

func (s *Service) attachAuthor(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	author, err := s.users.GetByID(ctx, blog.AuthorID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Author account deleted out-of-band; serve the blog without it.
		return blog, nil
	}
	if err != nil {
		return nil, err
	}
	ref := author.Ref()
	blog.Author = &ref
	return blog, nil
}

func (s *Service) attachAuthors(ctx context.Context, blogs []domain.Blog) error {
	if len(blogs) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(blogs))
	ids := make([]primitive.ObjectID, 0, len(blogs))
	for _, b := range blogs {
		if _, ok := seen[b.AuthorID]; !ok {
			seen[b.AuthorID] = struct{}{}
			ids = append(ids, b.AuthorID)
		}
	}

	authors, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range blogs {
		if author, ok := authors[blogs[i].AuthorID]; ok {
			ref := author.Ref()
			blogs[i].Author = &ref
		}
	}
	return nil
}
