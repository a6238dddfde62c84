// Package raster turns a source PDF into an ordered sequence of page
// images. Rasterization is delegated to MuPDF through go-fitz; the rest of
// the pipeline only sees image.Image values, so alternative backends can be
// swapped in behind the Rasterizer interface.
package raster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultDPI is the run-wide rasterization resolution. 200 keeps enough
// detail for Tesseract while bounding memory on long documents.
const DefaultDPI = 200

// Rasterizer produces the pages of a PDF in document order.
type Rasterizer interface {
	Pages(ctx context.Context, pdfPath string, dpi int) ([]image.Image, error)
}

// FitzRasterizer implements Rasterizer with MuPDF.
type FitzRasterizer struct{}

// NewFitzRasterizer constructs a MuPDF-backed rasterizer.
func NewFitzRasterizer() *FitzRasterizer { return &FitzRasterizer{} }

// Pages renders every page of the document at the given DPI. A DPI of zero
// or less falls back to DefaultDPI.
func (r *FitzRasterizer) Pages(ctx context.Context, pdfPath string, dpi int) ([]image.Image, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", pdfPath, err)
	}
	defer doc.Close()

	pages := make([]image.Image, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("rasterize page %d of %s: %w", i+1, pdfPath, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}
