package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DecodeImage accepts raw base64 or a data URL and returns the image bytes.
// An empty input yields nil without error.
func DecodeImage(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}

	if strings.HasPrefix(encoded, "data:") {
		comma := strings.Index(encoded, ",")
		if comma < 0 || !strings.Contains(encoded[:comma], ";base64") {
			return nil, fmt.Errorf("invalid image: malformed data URL")
		}
		encoded = encoded[comma+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid image: %w", err)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("invalid image: unsupported content type %s", mime.String())
	}

	return data, nil
}

// EncodeImage renders stored bytes as a data URL, empty for no image.
func EncodeImage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	mime := mimetype.Detect(data)
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
}
