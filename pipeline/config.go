// Package pipeline drives per-document OCR processing: rasterize, normalize,
// recognize (through the page cache), parse, and reconcile question pages
// with answer-key pages. All external effects enter through the Rasterizer,
// Engine and PageCache values handed to the Processor, so the control flow
// is testable without a filesystem or a Tesseract install.
package pipeline

import (
	"github.com/Avionetito/PoliciApp/exam"
	"github.com/Avionetito/PoliciApp/raster"
)

// Config carries every run-wide setting. It is passed by value into the
// pipeline entry points; nothing in the package reads process-global state.
type Config struct {
	// SourceDir holds the input PDF files.
	SourceDir string
	// CacheDir is the root of the per-page OCR cache.
	CacheDir string
	// OutputDir receives the serialized question list.
	OutputDir string
	// DPI is the rasterization resolution for the whole run.
	DPI int
	// Languages are the OCR trained-data hints.
	Languages []string
	// PageSegMode is the Tesseract page segmentation mode. Negative means
	// engine default.
	PageSegMode int
	// EngineMode is the Tesseract OCR engine mode (OEM). Negative means
	// engine default.
	EngineMode int
	// Mode selects the question grammar variant.
	Mode exam.ParseMode
}

// DefaultConfig mirrors the production run settings: Spanish exams scanned
// at 200 DPI, segmented as a single variable-size column (OEM 3, PSM 4),
// answers on separate key pages.
func DefaultConfig() Config {
	return Config{
		SourceDir:   "data",
		CacheDir:    ".cache",
		OutputDir:   "output",
		DPI:         raster.DefaultDPI,
		Languages:   []string{"spa"},
		PageSegMode: 4,
		EngineMode:  3,
		Mode:        exam.SeparateAnswerKey,
	}
}
