package attachments

import (
	"context"
	"time"
)

// Repository defines attachment persistence.
// All methods honor a transaction carried in ctx by the Transactor.
type Repository interface {
	// Create inserts an unbound attachment and fills in its ID
	Create(ctx context.Context, attachment *Attachment) (*Attachment, error)

	// GetByID returns ErrNotFound when the row does not exist
	GetByID(ctx context.Context, id int64) (*Attachment, error)

	// Claim binds the attachment to postID only if it is still unbound.
	// Returns false when the row is missing or already bound.
	Claim(ctx context.Context, id, postID int64) (bool, error)

	// ListUnboundBefore returns up to limit unbound attachments created before
	// cutoff with id greater than afterID, in id order
	ListUnboundBefore(ctx context.Context, cutoff time.Time, afterID int64, limit int) ([]*Attachment, error)

	// LockUnbound locks the row for the rest of the transaction if it is still unbound.
	// Returns ErrNotFound when the row is gone or has been claimed.
	LockUnbound(ctx context.Context, id int64) (*Attachment, error)

	// Delete removes the row. A missing row is not an error.
	Delete(ctx context.Context, id int64) error
}

// Transactor runs fn inside a single database transaction carried by ctx
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service defines attachment upload logic
type Service interface {
	// Upload stores data under a generated name and records it as an unbound attachment
	Upload(ctx context.Context, data []byte) (*Attachment, error)
}
