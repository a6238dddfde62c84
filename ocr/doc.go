package ocr

// Package ocr defines the abstraction layer for plugging OCR engines
// (Tesseract by default) into the page pipeline. The interfaces are
// intentionally small and transport-agnostic so engines can be backed by
// native libraries or remote APIs without leaking provider-specific
// concerns into callers. The pipeline treats an engine as stable: the same
// image bytes and the same configuration produce the same text, which is
// what makes page-level caching sound.
