package posts

import (
	"context"
	"fmt"

	"Postify/internal/core/attachments"
)

// AttachmentBinder attaches a previously uploaded file to a newly created post.
// It must run inside the transaction that created the post.
type AttachmentBinder struct {
	attachments AttachmentStore
}

// NewAttachmentBinder creates a binder over the attachment store
func NewAttachmentBinder(store AttachmentStore) *AttachmentBinder {
	return &AttachmentBinder{attachments: store}
}

// Bind claims attachmentID for post and sets post.Attachment.
// The claim succeeds only if the attachment is still unbound, so an
// attachment is never moved between posts and never bound after the
// reaper has reclaimed it.
func (b *AttachmentBinder) Bind(ctx context.Context, attachmentID int64, post *Post) (*Post, error) {
	attachment, err := b.load(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if attachment.IsBound() {
		return nil, ErrAttachmentAlreadyBound
	}

	claimed, err := b.attachments.Claim(ctx, attachmentID, post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind attachment %d: %w", attachmentID, err)
	}
	if !claimed {
		// Lost a race: either another post claimed it or the reaper removed it
		if _, err := b.load(ctx, attachmentID); err != nil {
			return nil, err
		}
		return nil, ErrAttachmentAlreadyBound
	}

	postID := post.ID
	attachment.PostID = &postID
	post.Attachment = attachment
	return post, nil
}

func (b *AttachmentBinder) load(ctx context.Context, id int64) (*attachments.Attachment, error) {
	attachment, err := b.attachments.GetByID(ctx, id)
	if err != nil {
		if attachments.IsNotFound(err) {
			return nil, ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("failed to load attachment %d: %w", id, err)
	}
	return attachment, nil
}
