package posts

import (
	"context"
	"fmt"
	"log/slog"

	"Postify/internal/core/files"
)

// DeletionOrchestrator removes a post together with its attachment and file
type DeletionOrchestrator struct {
	posts       Repository
	attachments AttachmentStore
	files       files.Store
	tx          Transactor
}

// NewDeletionOrchestrator creates the orchestrator
func NewDeletionOrchestrator(posts Repository, attachmentStore AttachmentStore, fileStore files.Store, tx Transactor) *DeletionOrchestrator {
	return &DeletionOrchestrator{
		posts:       posts,
		attachments: attachmentStore,
		files:       fileStore,
		tx:          tx,
	}
}

// DeletePost removes the post's stored file first, then the attachment and
// post records in one transaction. A file that cannot be removed is logged
// and does not block the record deletion.
func (o *DeletionOrchestrator) DeletePost(ctx context.Context, postID int64) error {
	post, err := o.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.Attachment != nil {
		if err := o.files.Delete(ctx, files.FolderAttachments, post.Attachment.Name); err != nil {
			slog.Warn("[POST-DELETE] failed to remove attachment file",
				"post_id", postID,
				"attachment_id", post.Attachment.ID,
				"file", post.Attachment.Name,
				"error", err,
			)
		}
	}

	err = o.tx.InTx(ctx, func(ctx context.Context) error {
		if post.Attachment != nil {
			if err := o.attachments.Delete(ctx, post.Attachment.ID); err != nil {
				return fmt.Errorf("failed to delete attachment record: %w", err)
			}
		}
		if err := o.posts.Delete(ctx, postID); err != nil {
			return fmt.Errorf("failed to delete post record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("[POST-DELETE] post removed", "post_id", postID, "user_id", post.UserID)
	return nil
}
