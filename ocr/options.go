package ocr

// InputOption mutates an OCR input before submission.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithPageSegMode sets the page segmentation mode on the OCR input.
func WithPageSegMode(psm int) InputOption {
	return func(in *Input) { in.PageSegMode = psm }
}

// WithEngineMode sets the recognition engine mode on the OCR input.
func WithEngineMode(oem int) InputOption {
	return func(in *Input) { in.EngineMode = oem }
}

// WithVariable sets a provider-specific variable on the OCR input.
func WithVariable(key, value string) InputOption {
	return func(in *Input) {
		if in.Variables == nil {
			in.Variables = make(map[string]string)
		}
		in.Variables[key] = value
	}
}

// NewInput builds an input for an encoded page image. The generated ID is
// stable for a (document, page) pair to simplify correlation with results.
func NewInput(id string, image []byte, page int, opts ...InputOption) Input {
	in := Input{
		ID:          id,
		Image:       image,
		Format:      ImageFormatPNG,
		PageIndex:   page,
		PageSegMode: -1,
		EngineMode:  -1,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}
