package posts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"Postify/internal/core/pagination"
)

type postService struct {
	repo    Repository
	tx      Transactor
	feed    *FeedEngine
	binder  *AttachmentBinder
	gate    *AuthorizationGate
	deleter *DeletionOrchestrator
	now     func() time.Time
}

// ServiceOption configures the post service
type ServiceOption func(*postService)

// WithClock overrides the time source used to stamp new posts
func WithClock(now func() time.Time) ServiceOption {
	return func(s *postService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewPostService wires the post components together
func NewPostService(
	repo Repository,
	tx Transactor,
	feed *FeedEngine,
	binder *AttachmentBinder,
	gate *AuthorizationGate,
	deleter *DeletionOrchestrator,
	opts ...ServiceOption,
) Service {
	s := &postService{
		repo:    repo,
		tx:      tx,
		feed:    feed,
		binder:  binder,
		gate:    gate,
		deleter: deleter,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePost stores the post and binds its attachment atomically.
// If binding fails the post is rolled back.
func (s *postService) CreatePost(ctx context.Context, userID int64, req CreatePostRequest) (*Post, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	post := &Post{
		Content:   req.Content,
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}

	var created *Post
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		saved, err := s.repo.Create(ctx, post)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		if req.Attachment != nil {
			saved, err = s.binder.Bind(ctx, req.Attachment.ID, saved)
			if err != nil {
				return err
			}
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("[POST-CREATE] post created",
		"post_id", created.ID,
		"user_id", userID,
		"has_attachment", created.Attachment != nil,
	)
	return created, nil
}

func (s *postService) ListPosts(ctx context.Context, username string, req pagination.Request, sort Sort) (*pagination.Page[*Post], error) {
	return s.feed.Page(ctx, username, req, sort)
}

func (s *postService) ListBefore(ctx context.Context, username string, cursorID int64, req pagination.Request, sort Sort) (*pagination.Page[*Post], error) {
	return s.feed.PageBefore(ctx, username, cursorID, req, sort)
}

func (s *postService) ListAfter(ctx context.Context, username string, cursorID int64, sort Sort) ([]*Post, error) {
	return s.feed.ListAfter(ctx, username, cursorID, sort)
}

func (s *postService) CountAfter(ctx context.Context, username string, cursorID int64) (int64, error) {
	return s.feed.CountAfter(ctx, username, cursorID)
}

// DeletePost checks ownership before any mutation
func (s *postService) DeletePost(ctx context.Context, actorID, postID int64) error {
	if !s.gate.IsAllowedToDelete(ctx, postID, actorID) {
		return ErrForbidden
	}
	return s.deleter.DeletePost(ctx, postID)
}
