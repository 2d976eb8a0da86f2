package posts

import (
	"context"
	"fmt"
	"sort"

	"Postify/internal/core/pagination"
)

// DefaultMaxAfterResults caps ListAfter when no limit is configured
const DefaultMaxAfterResults = 100

// FeedEngine answers cursor queries over the post feed.
// The cursor is a plain id boundary; no post needs to exist at that id.
type FeedEngine struct {
	posts    Repository
	users    UserResolver
	maxAfter int
}

// NewFeedEngine creates a feed engine. maxAfter bounds ListAfter results;
// values <= 0 select DefaultMaxAfterResults.
func NewFeedEngine(posts Repository, users UserResolver, maxAfter int) *FeedEngine {
	if maxAfter <= 0 {
		maxAfter = DefaultMaxAfterResults
	}
	return &FeedEngine{
		posts:    posts,
		users:    users,
		maxAfter: maxAfter,
	}
}

// scope returns the base filter for username, or an empty filter for "".
func (e *FeedEngine) scope(ctx context.Context, username string) (Filter, error) {
	if username == "" {
		return Filter{}, nil
	}
	user, err := e.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return Filter{AuthoredBy{UserID: user.ID}}, nil
}

// Page lists posts without a cursor
func (e *FeedEngine) Page(ctx context.Context, username string, req pagination.Request, order Sort) (*pagination.Page[*Post], error) {
	filter, err := e.scope(ctx, username)
	if err != nil {
		return nil, err
	}
	return e.page(ctx, filter, req, order)
}

// PageBefore pages through posts with id < cursorID
func (e *FeedEngine) PageBefore(ctx context.Context, username string, cursorID int64, req pagination.Request, order Sort) (*pagination.Page[*Post], error) {
	filter, err := e.scope(ctx, username)
	if err != nil {
		return nil, err
	}
	return e.page(ctx, filter.And(IDBefore{ID: cursorID}), req, order)
}

// ListAfter returns posts with id > cursorID in the requested order.
// At most maxAfter posts are returned, and they are always the ones closest
// to the cursor, so polling again from the newest id seen never skips a post.
func (e *FeedEngine) ListAfter(ctx context.Context, username string, cursorID int64, order Sort) ([]*Post, error) {
	filter, err := e.scope(ctx, username)
	if err != nil {
		return nil, err
	}

	items, err := e.posts.Find(ctx, filter.And(IDAfter{ID: cursorID}), Sort{Ascending: true}, e.maxAfter, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts after %d: %w", cursorID, err)
	}
	if items == nil {
		items = []*Post{}
	}
	if !order.Ascending {
		sort.SliceStable(items, func(i, j int) bool { return order.Less(items[i], items[j]) })
	}
	return items, nil
}

// CountAfter counts posts with id > cursorID
func (e *FeedEngine) CountAfter(ctx context.Context, username string, cursorID int64) (int64, error) {
	filter, err := e.scope(ctx, username)
	if err != nil {
		return 0, err
	}
	count, err := e.posts.Count(ctx, filter.And(IDAfter{ID: cursorID}))
	if err != nil {
		return 0, fmt.Errorf("failed to count posts after %d: %w", cursorID, err)
	}
	return count, nil
}

func (e *FeedEngine) page(ctx context.Context, filter Filter, req pagination.Request, order Sort) (*pagination.Page[*Post], error) {
	req = req.Normalize()

	total, err := e.posts.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	var items []*Post
	if int64(req.Offset()) < total {
		items, err = e.posts.Find(ctx, filter, order, req.Size, req.Offset())
		if err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}
	}
	return pagination.NewPage(items, total, req), nil
}
