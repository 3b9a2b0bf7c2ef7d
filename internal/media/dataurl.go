package media

import (
	"encoding/base64"
	"regexp"

	"github.com/H4ckEd666/Twitter-clone-app/internal/shared/apperr"
)

var dataURLPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

// IsDataURL reports whether value is an inline image payload rather than a
// hosted URL.
func IsDataURL(value string) bool {
	return len(value) > 5 && value[:5] == "data:"
}

// Decode validates an image data URL and returns its bytes and content type.
func Decode(dataURL string, maxBytes int) ([]byte, string, error) {
	m := dataURLPattern.FindStringSubmatch(dataURL)
	if m == nil {
		return nil, "", apperr.Validation("Invalid image format")
	}
	payload := dataURL[len(m[0]):]
	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return nil, "", apperr.Validation("Image exceeds %d bytes", maxBytes)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", apperr.Validation("Invalid image format")
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, "", apperr.Validation("Image exceeds %d bytes", maxBytes)
	}
	subtype := m[1]
	if subtype == "jpg" {
		subtype = "jpeg"
	}
	return data, "image/" + subtype, nil
}
