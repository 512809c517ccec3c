package maskeraser

import (
	"bytes"
	"image"
	"image/png"
	"io"

	// Register common decoders, including WebP via x/image/webp.
	_ "golang.org/x/image/webp"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Decode reads an image from the reader, returning the decoded image and the
// detected format string ("png", "jpeg", "webp", etc.).
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// DecodeImageBytes decodes raw image bytes, returning the decoded image and
// the detected format string.
func DecodeImageBytes(data []byte) (image.Image, string, error) {
	return Decode(bytes.NewReader(data))
}

// DecodeDimensions reads just the image header and returns the natural
// pixel dimensions without decoding pixel data.
func DecodeDimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// EncodePNG writes the provided image to the writer as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
