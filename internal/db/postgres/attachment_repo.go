package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"Postify/internal/core/attachments"
)

type postgresAttachmentRepo struct {
	db *sql.DB
}

// NewAttachmentRepository creates a new PostgreSQL attachment repository
func NewAttachmentRepository(db *sql.DB) attachments.Repository {
	return &postgresAttachmentRepo{db: db}
}

const attachmentColumns = `id, name, file_type, created_at, post_id`

// Create inserts an unbound attachment
func (r *postgresAttachmentRepo) Create(ctx context.Context, attachment *attachments.Attachment) (*attachments.Attachment, error) {
	query := `
		INSERT INTO attachments (name, file_type, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := conn(ctx, r.db).QueryRowContext(ctx, query,
		attachment.Name, attachment.FileType, attachment.CreatedAt,
	).Scan(&attachment.ID); err != nil {
		return nil, fmt.Errorf("failed to insert attachment: %w", err)
	}

	attachment.PostID = nil
	return attachment, nil
}

// GetByID retrieves an attachment by id
func (r *postgresAttachmentRepo) GetByID(ctx context.Context, id int64) (*attachments.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM attachments WHERE id = $1`

	attachment, err := scanAttachment(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return attachment, nil
}

// Claim binds the attachment to postID only while it is still unbound.
// The conditional update is the single point where post_id leaves NULL.
func (r *postgresAttachmentRepo) Claim(ctx context.Context, id, postID int64) (bool, error) {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE attachments SET post_id = $1 WHERE id = $2 AND post_id IS NULL`,
		postID, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim attachment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read claim result: %w", err)
	}
	return affected == 1, nil
}

// ListUnboundBefore returns unbound attachments older than cutoff, keyset-paged by id
func (r *postgresAttachmentRepo) ListUnboundBefore(ctx context.Context, cutoff time.Time, afterID int64, limit int) ([]*attachments.Attachment, error) {
	query := `
		SELECT ` + attachmentColumns + `
		FROM attachments
		WHERE post_id IS NULL AND created_at < $1 AND id > $2
		ORDER BY id
		LIMIT $3`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, cutoff, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unbound attachments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*attachments.Attachment
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		result = append(result, attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachments: %w", err)
	}

	return result, nil
}

// LockUnbound takes a row lock on a still-unbound attachment.
// Must be called inside a transaction for the lock to outlive the statement.
func (r *postgresAttachmentRepo) LockUnbound(ctx context.Context, id int64) (*attachments.Attachment, error) {
	query := `
		SELECT ` + attachmentColumns + `
		FROM attachments
		WHERE id = $1 AND post_id IS NULL
		FOR UPDATE`

	attachment, err := scanAttachment(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock attachment: %w", err)
	}
	return attachment, nil
}

// Delete removes an attachment record
func (r *postgresAttachmentRepo) Delete(ctx context.Context, id int64) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

func scanAttachment(row rowScanner) (*attachments.Attachment, error) {
	attachment := &attachments.Attachment{}
	var postID sql.NullInt64

	err := row.Scan(&attachment.ID, &attachment.Name, &attachment.FileType, &attachment.CreatedAt, &postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, attachments.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if postID.Valid {
		attachment.PostID = &postID.Int64
	}
	return attachment, nil
}
