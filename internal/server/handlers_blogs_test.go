package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/jetsaguirel/simple-blog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLikeBlog(t *testing.T) {
	userID := primitive.NewObjectID()
	blogID := primitive.NewObjectID()

	liked := domain.ReactionLike
	app := &mockAppService{
		reactFn: func(_ context.Context, gotBlog, gotUser primitive.ObjectID, kind domain.ReactionKind) (*domain.ReactionResult, error) {
			assert.Equal(t, blogID, gotBlog)
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, domain.ReactionLike, kind)
			return &domain.ReactionResult{
				LikeCount:    3,
				DislikeCount: 1,
				UserReaction: &liked,
				Message:      "like added",
			}, nil
		},
	}
	s := newTestServer(app, acceptToken(userID))

	rec := doRequest(s, http.MethodPost, "/api/v1/blogs/"+blogID.Hex()+"/like", "good", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["likeCount"])
	assert.Equal(t, float64(1), body["dislikeCount"])
	assert.Equal(t, "like", body["userReaction"])
	assert.Equal(t, "like added", body["message"])
}

func TestDislikeBlogToggleOff(t *testing.T) {
	userID := primitive.NewObjectID()
	blogID := primitive.NewObjectID()

	app := &mockAppService{
		reactFn: func(_ context.Context, _, _ primitive.ObjectID, kind domain.ReactionKind) (*domain.ReactionResult, error) {
			assert.Equal(t, domain.ReactionDislike, kind)
			return &domain.ReactionResult{Message: "dislike removed"}, nil
		},
	}
	s := newTestServer(app, acceptToken(userID))

	rec := doRequest(s, http.MethodPost, "/api/v1/blogs/"+blogID.Hex()+"/dislike", "good", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Nil(t, body["userReaction"], "cleared reaction serializes as null")
	assert.Equal(t, "dislike removed", body["message"])
}

func TestReactionRequiresAuth(t *testing.T) {
	s := newTestServer(&mockAppService{}, acceptToken(primitive.NewObjectID()))
	blogID := primitive.NewObjectID().Hex()

	for name, token := range map[string]string{"no token": "", "bad token": "forged"} {
		t.Run(name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/v1/blogs/"+blogID+"/like", token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestReactionInvalidBlogID(t *testing.T) {
	s := newTestServer(&mockAppService{}, acceptToken(primitive.NewObjectID()))

	rec := doRequest(s, http.MethodPost, "/api/v1/blogs/not-hex/like", "good", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReactionBlogNotFound(t *testing.T) {
	app := &mockAppService{
		reactFn: func(context.Context, primitive.ObjectID, primitive.ObjectID, domain.ReactionKind) (*domain.ReactionResult, error) {
			return nil, domain.ErrBlogNotFound
		},
	}
	s := newTestServer(app, acceptToken(primitive.NewObjectID()))

	rec := doRequest(s, http.MethodPost, "/api/v1/blogs/"+primitive.NewObjectID().Hex()+"/like", "good", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReactionStoreUnavailable(t *testing.T) {
	app := &mockAppService{
		reactFn: func(context.Context, primitive.ObjectID, primitive.ObjectID, domain.ReactionKind) (*domain.ReactionResult, error) {
			return nil, domain.ErrStoreUnavailable
		},
	}
	s := newTestServer(app, acceptToken(primitive.NewObjectID()))

	rec := doRequest(s, http.MethodPost, "/api/v1/blogs/"+primitive.NewObjectID().Hex()+"/dislike", "good", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// --- CRUD ---

func TestCreateBlog(t *testing.T) {
	userID := primitive.NewObjectID()

	app := &mockAppService{
		createBlogFn: func(_ context.Context, authorID primitive.ObjectID, title, content string) (*domain.Blog, error) {
			assert.Equal(t, userID, authorID)
			return &domain.Blog{ID: primitive.NewObjectID(), AuthorID: authorID, Title: title, Content: content}, nil
		},
	}
	s := newTestServer(app, acceptToken(userID))

	rec := doRequest(s, http.MethodPost, "/api/v1/blogs", "good", map[string]string{
		"title":   "My first post",
		"content": "Hello world",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	blog := body["blog"].(map[string]any)
	assert.Equal(t, "My first post", blog["title"])
	assert.Equal(t, float64(0), blog["likeCount"])
}

func TestCreateBlogValidation(t *testing.T) {
	s := newTestServer(&mockAppService{}, acceptToken(primitive.NewObjectID()))

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing title", map[string]string{"content": "c"}},
		{"missing content", map[string]string{"title": "t"}},
		{"whitespace title", map[string]string{"title": "   ", "content": "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/v1/blogs", "good", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetBlogPublic(t *testing.T) {
	blogID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()

	app := &mockAppService{
		getBlogFn: func(context.Context, primitive.ObjectID) (*domain.Blog, error) {
			return &domain.Blog{
				ID:       blogID,
				Title:    "t",
				Content:  "c",
				AuthorID: authorID,
				Author:   &domain.UserRef{ID: authorID, Name: "Ada", Email: "ada@example.com"},
				LikedBy:  []primitive.ObjectID{primitive.NewObjectID()},
			}, nil
		},
	}
	s := newTestServer(app, acceptToken(primitive.NewObjectID()))

	// No token: reads are public.
	rec := doRequest(s, http.MethodGet, "/api/v1/blogs/"+blogID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	blog := body["blog"].(map[string]any)
	assert.Equal(t, float64(1), blog["likeCount"])
	author := blog["author"].(map[string]any)
	assert.Equal(t, "Ada", author["name"])
}

func TestListBlogsFilters(t *testing.T) {
	authorID := primitive.NewObjectID()
	var captured domain.BlogFilter

	app := &mockAppService{
		listBlogsFn: func(_ context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
			captured = filter
			return []domain.Blog{}, nil
		},
	}
	s := newTestServer(app, acceptToken(primitive.NewObjectID()))

	rec := doRequest(s, http.MethodGet, "/api/v1/blogs?author="+authorID.Hex()+"&search=golang", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, captured.AuthorID)
	assert.Equal(t, authorID, *captured.AuthorID)
	assert.Equal(t, "golang", captured.Search)
}

func TestListBlogsBadAuthorID(t *testing.T) {
	s := newTestServer(&mockAppService{}, acceptToken(primitive.NewObjectID()))

	rec := doRequest(s, http.MethodGet, "/api/v1/blogs?author=not-hex", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateBlogForbidden(t *testing.T) {
	app := &mockAppService{
		updateBlogFn: func(context.Context, primitive.ObjectID, primitive.ObjectID, domain.BlogUpdate) (*domain.Blog, error) {
			return nil, domain.ErrNotAuthor
		},
	}
	s := newTestServer(app, acceptToken(primitive.NewObjectID()))

	rec := doRequest(s, http.MethodPut, "/api/v1/blogs/"+primitive.NewObjectID().Hex(), "good", map[string]string{"title": "new"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteBlog(t *testing.T) {
	userID := primitive.NewObjectID()
	blogID := primitive.NewObjectID()
	deleted := false

	app := &mockAppService{
		deleteBlogFn: func(_ context.Context, id, authorID primitive.ObjectID) error {
			assert.Equal(t, blogID, id)
			assert.Equal(t, userID, authorID)
			deleted = true
			return nil
		},
	}
	s := newTestServer(app, acceptToken(userID))

	rec := doRequest(s, http.MethodDelete, "/api/v1/blogs/"+blogID.Hex(), "good", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}
