// Package imaging prepares rasterized pages for OCR. Accuracy on scanned
// exams improves markedly when Tesseract is fed a clean binarized image, so
// every page goes through the same normalization: grayscale, autocontrast,
// a height cap, and Otsu thresholding.
package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ErrInvalidImage reports that the normalizer received unusable image data.
var ErrInvalidImage = errors.New("imaging: invalid image")

// MaxHeight is the pixel ceiling above which pages are downscaled before
// thresholding. Pages rasterized at 200 DPI stay below it; oversized scans
// are shrunk proportionally so OCR cost stays bounded.
const MaxHeight = 3500

// Normalize converts a raw page image into the binarized form handed to the
// OCR engine: single-channel grayscale, autocontrast stretch, proportional
// downscale if taller than MaxHeight, then a global Otsu threshold. The
// result contains only the values 0 and 255. Deterministic for identical
// input pixels.
func Normalize(img image.Image) (*image.Gray, error) {
	if img == nil {
		return nil, ErrInvalidImage
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	gray := toGray(img)
	autocontrast(gray)
	if gray.Bounds().Dy() > MaxHeight {
		gray = downscale(gray, MaxHeight)
	}
	binarize(gray, otsuThreshold(gray))
	return gray, nil
}

// EncodePNG serializes a normalized page for the OCR boundary.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrInvalidImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// autocontrast linearly remaps the observed intensity range to the full
// 0..255 span. Flat images are left untouched.
func autocontrast(g *image.Gray) {
	lo, hi := uint8(255), uint8(0)
	for _, v := range g.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo >= hi {
		return
	}
	span := float64(hi - lo)
	var lut [256]uint8
	for i := int(lo); i <= int(hi); i++ {
		lut[i] = uint8(math.Round(float64(i-int(lo)) * 255 / span))
	}
	for i := int(hi) + 1; i < 256; i++ {
		lut[i] = 255
	}
	for i, v := range g.Pix {
		g.Pix[i] = lut[v]
	}
}

func downscale(g *image.Gray, maxHeight int) *image.Gray {
	b := g.Bounds()
	scale := float64(maxHeight) / float64(b.Dy())
	w := int(math.Round(float64(b.Dx()) * scale))
	if w < 1 {
		w = 1
	}
	dst := image.NewGray(image.Rect(0, 0, w, maxHeight))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), g, b, xdraw.Src, nil)
	return dst
}

// otsuThreshold picks the split point that maximizes between-class variance
// of the intensity histogram.
func otsuThreshold(g *image.Gray) uint8 {
	var hist [256]int
	for _, v := range g.Pix {
		hist[v]++
	}
	total := len(g.Pix)

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var best float64
	var threshold uint8
	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			threshold = uint8(i)
		}
	}
	return threshold
}

func binarize(g *image.Gray, threshold uint8) {
	for i, v := range g.Pix {
		if v > threshold {
			g.Pix[i] = 255
		} else {
			g.Pix[i] = 0
		}
	}
}
