package domain

import "errors"

var (
	ErrBlogNotFound       = errors.New("blog not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthor          = errors.New("not the author of this blog")
	ErrInvalidToken       = errors.New("invalid token")

	// ErrStoreUnavailable marks transient persistence failures (timeouts,
	// unreachable servers). The underlying writes are atomic, so callers can
	// retry without risking partial state.
	ErrStoreUnavailable = errors.New("store unavailable")
)
