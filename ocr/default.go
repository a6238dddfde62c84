package ocr

import "context"

var defaultEngine Engine = noopEngine{}

// DefaultEngine returns the process-wide default OCR engine. It is the
// Tesseract engine once the tesseract subpackage has been imported, and a
// no-op engine otherwise.
func DefaultEngine() Engine {
	return defaultEngine
}

// SetDefaultEngine sets the process-wide default OCR engine.
func SetDefaultEngine(engine Engine) {
	defaultEngine = engine
}

type noopEngine struct{}

func (noopEngine) Name() string { return "noop" }

func (noopEngine) Recognize(ctx context.Context, input Input) (Result, error) {
	return Result{InputID: input.ID}, nil
}
