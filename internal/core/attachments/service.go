package attachments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"Postify/internal/core/files"
)

type attachmentService struct {
	repo  Repository
	files files.Store
	now   func() time.Time
}

// NewAttachmentService creates the upload service.
// now may be nil, in which case time.Now is used.
func NewAttachmentService(repo Repository, store files.Store, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &attachmentService{
		repo:  repo,
		files: store,
		now:   now,
	}
}

// Upload sniffs the type from the bytes and rejects anything that is not an
// accepted image before touching storage.
func (s *attachmentService) Upload(ctx context.Context, data []byte) (*Attachment, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	fileType := files.DetectType(data)
	if !files.IsAcceptedImage(fileType) {
		slog.Debug("[ATTACHMENT-UPLOAD] rejected non-image upload", "file_type", fileType)
		return nil, ErrUnsupportedType
	}
	name, err := s.files.Save(ctx, files.FolderAttachments, data, files.ExtensionFor(data))
	if err != nil {
		return nil, fmt.Errorf("failed to store attachment file: %w", err)
	}

	attachment, err := s.repo.Create(ctx, &Attachment{
		Name:      name,
		FileType:  fileType,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		if delErr := s.files.Delete(ctx, files.FolderAttachments, name); delErr != nil {
			slog.Warn("[ATTACHMENT-UPLOAD] failed to remove file after insert failure",
				"file", name,
				"error", delErr,
			)
		}
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	slog.Debug("[ATTACHMENT-UPLOAD] stored attachment",
		"attachment_id", attachment.ID,
		"file", name,
		"file_type", fileType,
		"size_bytes", len(data),
	)
	return attachment, nil
}
