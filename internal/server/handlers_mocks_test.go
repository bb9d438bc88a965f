package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jetsaguirel/simple-blog/internal/config"
	"github.com/jetsaguirel/simple-blog/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockAppService lets each test script exactly the service calls it expects.
type mockAppService struct {
	registerFn      func(ctx context.Context, name, email, password string) (*domain.User, string, error)
	loginFn         func(ctx context.Context, email, password string) (*domain.User, string, error)
	getUserFn       func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	updateProfileFn func(ctx context.Context, id primitive.ObjectID, currentPassword string, name, email, newPassword *string) (*domain.User, error)
	createBlogFn    func(ctx context.Context, authorID primitive.ObjectID, title, content string) (*domain.Blog, error)
	getBlogFn       func(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error)
	listBlogsFn     func(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error)
	updateBlogFn    func(ctx context.Context, id, authorID primitive.ObjectID, update domain.BlogUpdate) (*domain.Blog, error)
	deleteBlogFn    func(ctx context.Context, id, authorID primitive.ObjectID) error
	reactFn         func(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind) (*domain.ReactionResult, error)
}

var _ domain.AppService = (*mockAppService)(nil)

func (m *mockAppService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	return m.registerFn(ctx, name, email, password)
}

func (m *mockAppService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAppService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return m.getUserFn(ctx, id)
}

func (m *mockAppService) UpdateProfile(ctx context.Context, id primitive.ObjectID, currentPassword string, name, email, newPassword *string) (*domain.User, error) {
	return m.updateProfileFn(ctx, id, currentPassword, name, email, newPassword)
}

func (m *mockAppService) CreateBlog(ctx context.Context, authorID primitive.ObjectID, title, content string) (*domain.Blog, error) {
	return m.createBlogFn(ctx, authorID, title, content)
}

func (m *mockAppService) GetBlog(ctx context.Context, id primitive.ObjectID) (*domain.Blog, error) {
	return m.getBlogFn(ctx, id)
}

func (m *mockAppService) ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	return m.listBlogsFn(ctx, filter)
}

func (m *mockAppService) UpdateBlog(ctx context.Context, id, authorID primitive.ObjectID, update domain.BlogUpdate) (*domain.Blog, error) {
	return m.updateBlogFn(ctx, id, authorID, update)
}

func (m *mockAppService) DeleteBlog(ctx context.Context, id, authorID primitive.ObjectID) error {
	return m.deleteBlogFn(ctx, id, authorID)
}

func (m *mockAppService) React(ctx context.Context, blogID, userID primitive.ObjectID, kind domain.ReactionKind) (*domain.ReactionResult, error) {
	return m.reactFn(ctx, blogID, userID, kind)
}

// mockVerifier scripts the token middleware. The default accepts the literal
// token "good" as the given user.
type mockVerifier struct {
	verifyFn func(token string) (primitive.ObjectID, error)
}

func (m *mockVerifier) Verify(token string) (primitive.ObjectID, error) {
	return m.verifyFn(token)
}

func acceptToken(userID primitive.ObjectID) *mockVerifier {
	return &mockVerifier{
		verifyFn: func(token string) (primitive.ObjectID, error) {
			if token == "good" {
				return userID, nil
			}
			return primitive.NilObjectID, domain.ErrInvalidToken
		},
	}
}

func newTestServer(app domain.AppService, tokens tokenVerifier) *Server {
	cfg := &config.Config{
		Port:               "0",
		LoginRatePerSecond: 1000,
		LoginRateBurst:     1000,
	}
	// The redis client is only touched by the readiness handler.
	redisClient := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	return NewServer(cfg, app, tokens, pingerFunc(func(context.Context) error { return nil }), redisClient)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// doRequest drives a request through the full middleware chain.
func doRequest(s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = strings.NewReader(string(encoded))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
