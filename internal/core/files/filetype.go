package files

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectType sniffs the content type of data from its bytes, ignoring any
// name or header the client supplied. Parameters such as charset are dropped.
func DetectType(data []byte) string {
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

// ExtensionFor returns the canonical file extension for a detected type,
// or "" when the type has none.
func ExtensionFor(data []byte) string {
	return mimetype.Detect(data).Extension()
}

// acceptedImageTypes are the detected types allowed as post attachments
var acceptedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// IsAcceptedImage reports whether a detected type may be stored as an attachment
func IsAcceptedImage(fileType string) bool {
	return acceptedImageTypes[fileType]
}
