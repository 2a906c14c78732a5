// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging prepares admin uploads for the public site. Images wider
// than the limit are downscaled with Lanczos resampling; narrower images
// are re-encoded at their original size. Everything leaves as JPEG except
// PNGs, which stay PNG to keep transparency.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// MaxWidth is the widest image served by the site.
const MaxWidth = 1600

// MaxPixels caps the decoded size so a small file cannot expand into
// gigabytes of RGBA.
const MaxPixels = 40_000_000

const jpegQuality = 82

// ErrUnsupported is returned for payloads that are not JPEG, PNG, GIF or WebP.
var ErrUnsupported = errors.New("imaging: unsupported image format")

// ErrTooLarge is returned for images above MaxPixels.
var ErrTooLarge = errors.New("imaging: image dimensions too large")

// Processed is an encoded image ready for upload.
type Processed struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string
	Ext         string
}

// Fit decodes src, downscales it to at most maxWidth pixels wide keeping
// the aspect ratio and re-encodes it. maxWidth <= 0 means MaxWidth.
func Fit(src []byte, maxWidth int) (*Processed, error) {
	if maxWidth <= 0 {
		maxWidth = MaxWidth
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupported
		}
		return nil, fmt.Errorf("imaging: decode config: %w", err)
	}
	if cfg.Width*cfg.Height > MaxPixels {
		return nil, ErrTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupported
		}
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	out := &Processed{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}

	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("imaging: encode png: %w", err)
		}
		out.ContentType, out.Ext = "image/png", ".png"
	} else {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("imaging: encode jpeg: %w", err)
		}
		out.ContentType, out.Ext = "image/jpeg", ".jpg"
	}

	out.Data = buf.Bytes()
	return out, nil
}
