package posts

import (
	"fmt"
	"unicode/utf8"

	"Postify/internal/core/validation"
)

const (
	minContentLength = 10
	maxContentLength = 5000
)

func validateCreateRequest(req CreatePostRequest) error {
	errs := validation.Errors{}

	n := utf8.RuneCountInString(req.Content)
	switch {
	case req.Content == "":
		errs.Add("content", "must not be null")
	case n < minContentLength || n > maxContentLength:
		errs.Add("content", fmt.Sprintf("size must be between %d and %d", minContentLength, maxContentLength))
	}

	if req.Attachment != nil && req.Attachment.ID <= 0 {
		errs.Add("attachment", "attachment id must be positive")
	}

	return errs.Err()
}
