package users

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/disintegration/imaging"

	"Postify/internal/core/files"
)

const (
	// maxAvatarDimension bounds avatar width and height in pixels
	maxAvatarDimension = 512

	avatarTypeMessage = "only PNG and JPG files are allowed"
)

// prepareAvatar decodes a base64 avatar, checks that its bytes really are a
// PNG or JPEG, and shrinks it to fit maxAvatarDimension.
// Returns the bytes to store and the matching file extension.
func prepareAvatar(encoded string) ([]byte, string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(raw) == 0 {
		return nil, "", errInvalidAvatar
	}

	var format imaging.Format
	var ext string
	switch files.DetectType(raw) {
	case "image/png":
		format, ext = imaging.PNG, ".png"
	case "image/jpeg":
		format, ext = imaging.JPEG, ".jpg"
	default:
		return nil, "", errInvalidAvatar
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", errInvalidAvatar
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxAvatarDimension && bounds.Dy() <= maxAvatarDimension {
		return raw, ext, nil
	}

	resized := imaging.Fit(img, maxAvatarDimension, maxAvatarDimension, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, "", fmt.Errorf("failed to encode avatar: %w", err)
	}
	return buf.Bytes(), ext, nil
}
