package imaging

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height for stored images.
const MaxDimension = 1024

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// FallbackColor is reported when an image's color cannot be determined.
const FallbackColor = "#808080"

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ProcessResult contains the processed image data.
type ProcessResult struct {
	ID   string
	Data []byte
	MIME string
}

// Process reads image data, validates the format by sniffing bytes,
// downscales if larger than MaxDimension, and re-encodes as JPEG.
// The result carries a content-derived ID so the same photo stored twice
// maps to one image.
func Process(r io.Reader) (*ProcessResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	img, err := decode(data)
	if err != nil {
		return nil, err
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return &ProcessResult{
		ID:   ContentID(buf.Bytes()),
		Data: buf.Bytes(),
		MIME: "image/jpeg",
	}, nil
}

// DetectMIME sniffs the MIME type of data. The second result is false for
// formats that are not accepted.
func DetectMIME(data []byte) (string, bool) {
	detected := http.DetectContentType(data)
	return detected, AllowedMIME[detected]
}

// ContentID returns a stable identifier derived from data.
func ContentID(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// AverageColor returns the mean color of the image as "#RRGGBB".
// Transparent pixels are ignored.
func AverageColor(data []byte) (string, error) {
	img, err := decode(data)
	if err != nil {
		return FallbackColor, err
	}

	// Sample a small copy; the average barely moves and it is much cheaper.
	small := image.NewRGBA(image.Rect(0, 0, 32, 32))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), img, img.Bounds(), draw.Src, nil)

	var r, g, b, n uint64
	for i := 0; i+3 < len(small.Pix); i += 4 {
		a := small.Pix[i+3]
		if a == 0 {
			continue
		}
		r += uint64(small.Pix[i])
		g += uint64(small.Pix[i+1])
		b += uint64(small.Pix[i+2])
		n++
	}
	if n == 0 {
		return FallbackColor, nil
	}
	return fmt.Sprintf("#%02x%02x%02x", r/n, g/n, b/n), nil
}

func decode(data []byte) (image.Image, error) {
	// Sniff actual MIME type from bytes (not trusting client headers).
	detected, ok := DetectMIME(data)
	if !ok {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG, PNG and GIF accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// downscale resizes the image so neither dimension exceeds maxDim.
// Uses high-quality Catmull-Rom interpolation.
// Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	// Calculate new dimensions preserving aspect ratio.
	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
	image.RegisterFormat("gif", "GIF8?a", gif.Decode, gif.DecodeConfig)
}
