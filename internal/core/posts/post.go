package posts

import (
	"time"

	"Postify/internal/core/attachments"
	"Postify/internal/core/users"
)

// Post is a short text entry written by one user, optionally carrying one attachment.
// Author and Attachment are populated by the repository on reads.
type Post struct {
	CreatedAt  time.Time               `json:"createdAt" db:"created_at"`
	Author     *users.User             `json:"-"`
	Attachment *attachments.Attachment `json:"-"`
	Content    string                  `json:"content" db:"content"`
	ID         int64                   `json:"id" db:"id"`
	UserID     int64                   `json:"userId" db:"user_id"`
}

// AttachmentRef names a previously uploaded attachment
type AttachmentRef struct {
	ID int64 `json:"id"`
}

// CreatePostRequest represents input for creating a post.
// The author and timestamp are never taken from the request.
type CreatePostRequest struct {
	Attachment *AttachmentRef `json:"attachment,omitempty"`
	Content    string         `json:"content"`
}

// PostView is the public representation of a post.
// Date is milliseconds since the Unix epoch.
type PostView struct {
	User       *users.UserView   `json:"user"`
	Attachment *attachments.View `json:"attachment,omitempty"`
	Content    string            `json:"content"`
	ID         int64             `json:"id"`
	Date       int64             `json:"date"`
}

// ToView converts a post into its API shape
func (p *Post) ToView() *PostView {
	if p == nil {
		return nil
	}
	view := &PostView{
		ID:         p.ID,
		Content:    p.Content,
		Date:       p.CreatedAt.UnixMilli(),
		Attachment: p.Attachment.ToView(),
	}
	if p.Author != nil {
		view.User = p.Author.ToView()
	} else {
		view.User = &users.UserView{ID: p.UserID}
	}
	return view
}
