package maskeraser

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
)

// DecodeBase64Image decodes a base64-encoded image (optionally a data URL)
// into an image.Image. It returns the decoded image and the detected format
// string ("png", "jpeg", "webp", etc.).
func DecodeBase64Image(input string) (image.Image, string, error) {
	raw := stripDataPrefix(input)

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}

	return DecodeImageBytes(data)
}

// EncodePNGToBase64 encodes an image as PNG and returns a base64 string.
func EncodePNGToBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DataURL wraps raw bytes in a data URL with the given MIME type.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// PNGDataURL encodes an image as a PNG data URL, the form in which masks
// and results cross the HTTP boundary.
func PNGDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return DataURL("image/png", buf.Bytes()), nil
}

func stripDataPrefix(input string) string {
	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "data:") {
		if idx := strings.Index(input, ","); idx != -1 {
			return input[idx+1:]
		}
	}
	return input
}
