// Package imagepayload turns the browser's text-safe image encoding into raw bytes.
package imagepayload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

var (
	ErrMissingData     = errors.New("image data is required")
	ErrMissingMIMEType = errors.New("mime type is required")
	ErrUnsupportedMIME = errors.New("mime type must be an image type")
	ErrInvalidEncoding = errors.New("image data is not valid base64")
	ErrTooLarge        = errors.New("image exceeds the size limit")
)

// Image is a decoded upload. It only lives for the duration of one request.
type Image struct {
	Data     []byte
	MIMEType string
}

// Metadata describes an image without exposing its content.
type Metadata struct {
	Format string
	Width  int
	Height int
}

// Decode validates the wire fields and decodes the base64 payload.
// A leading data URL header ("data:image/png;base64,") is accepted and dropped.
func Decode(encoded, mimeType string, maxBytes int) (*Image, error) {
	encoded = strings.TrimSpace(encoded)
	mimeType = strings.TrimSpace(mimeType)

	if encoded == "" {
		return nil, ErrMissingData
	}
	if mimeType == "" {
		return nil, ErrMissingMIMEType
	}
	if !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMIME, mimeType)
	}

	encoded = stripDataURL(encoded)
	if encoded == "" {
		return nil, ErrMissingData
	}

	if maxBytes > 0 && base64.StdEncoding.DecodedLen(len(encoded)) > maxBytes+2 {
		return nil, ErrTooLarge
	}

	data, err := decodeBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(data) == 0 {
		return nil, ErrMissingData
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return nil, ErrTooLarge
	}

	return &Image{Data: data, MIMEType: mimeType}, nil
}

// EncodedLimit is the largest base64 length that can decode to maxBytes.
func EncodedLimit(maxBytes int) int {
	return base64.StdEncoding.EncodedLen(maxBytes)
}

// Inspect reads the image header. It returns false for formats without a
// registered decoder, which are still valid uploads.
func (i *Image) Inspect() (Metadata, bool) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(i.Data))
	if err != nil {
		return Metadata{}, false
	}
	return Metadata{Format: format, Width: cfg.Width, Height: cfg.Height}, true
}

// Size returns the decoded length in bytes.
func (i *Image) Size() int {
	return len(i.Data)
}

func stripDataURL(encoded string) string {
	if !strings.HasPrefix(encoded, "data:") {
		return encoded
	}
	if idx := strings.Index(encoded, ","); idx >= 0 {
		return encoded[idx+1:]
	}
	return ""
}

func decodeBase64(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
