package imagepayload

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const downscaleJPEGQuality = 90

// Downscale shrinks the image so its longest side is at most maxDim pixels,
// preserving aspect ratio and EXIF orientation. PNG and GIF uploads are
// re-encoded as PNG, everything else as JPEG. It returns the receiver
// unchanged with false when maxDim is not positive, the image already fits,
// or the format has no registered decoder.
func (i *Image) Downscale(maxDim int) (*Image, bool, error) {
	if maxDim <= 0 {
		return i, false, nil
	}
	meta, ok := i.Inspect()
	if !ok || (meta.Width <= maxDim && meta.Height <= maxDim) {
		return i, false, nil
	}

	src, err := imaging.Decode(bytes.NewReader(i.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, fmt.Errorf("decode %s for resize: %w", meta.Format, err)
	}
	resized := imaging.Fit(src, maxDim, maxDim, imaging.Lanczos)

	format, mimeType := imaging.JPEG, "image/jpeg"
	if meta.Format == "png" || meta.Format == "gif" {
		format, mimeType = imaging.PNG, "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(downscaleJPEGQuality)); err != nil {
		return nil, false, fmt.Errorf("encode resized image: %w", err)
	}
	return &Image{Data: buf.Bytes(), MIMEType: mimeType}, true, nil
}
