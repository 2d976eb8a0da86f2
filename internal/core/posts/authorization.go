package posts

import (
	"context"
	"errors"
	"log/slog"
)

// AuthorizationGate decides whether a user may mutate a post
type AuthorizationGate struct {
	posts Repository
}

// NewAuthorizationGate creates a gate backed by the post repository
func NewAuthorizationGate(posts Repository) *AuthorizationGate {
	return &AuthorizationGate{posts: posts}
}

// IsAllowedToDelete reports whether userID owns postID.
// A missing post, a foreign post, and a lookup failure all return false,
// so callers cannot tell whether a post they do not own exists.
func (g *AuthorizationGate) IsAllowedToDelete(ctx context.Context, postID, userID int64) bool {
	if userID == 0 {
		return false
	}
	post, err := g.posts.GetByID(ctx, postID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Error("[POST-AUTHZ] failed to load post for ownership check",
				"post_id", postID,
				"user_id", userID,
				"error", err,
			)
		}
		return false
	}
	return post.UserID == userID
}
