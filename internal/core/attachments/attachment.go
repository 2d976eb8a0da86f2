package attachments

import (
	"time"
)

// Attachment is an uploaded file that may later be claimed by exactly one post.
// PostID is nil while the attachment is unbound.
type Attachment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	PostID    *int64    `json:"-" db:"post_id"`
	Name      string    `json:"name" db:"name"`
	FileType  string    `json:"fileType" db:"file_type"`
	ID        int64     `json:"id" db:"id"`
}

// IsBound reports whether a post has claimed the attachment
func (a *Attachment) IsBound() bool {
	return a.PostID != nil
}

// View is the public representation of an attachment embedded in a post
type View struct {
	Name     string `json:"name"`
	FileType string `json:"fileType"`
}

// ToView strips the internal fields
func (a *Attachment) ToView() *View {
	if a == nil {
		return nil
	}
	return &View{
		Name:     a.Name,
		FileType: a.FileType,
	}
}
