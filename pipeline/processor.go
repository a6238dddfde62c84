package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Avionetito/PoliciApp/cache"
	"github.com/Avionetito/PoliciApp/exam"
	"github.com/Avionetito/PoliciApp/imaging"
	"github.com/Avionetito/PoliciApp/observability"
	"github.com/Avionetito/PoliciApp/ocr"
	"github.com/Avionetito/PoliciApp/raster"
)

// answerPageMarker routes a page to the answer parser. The match is an
// exact lowercased substring test: the accented spelling "solución" does
// NOT match, which mirrors the behavior the production data depends on.
const answerPageMarker = "solucion"

// Processor runs the per-document pipeline.
type Processor struct {
	cfg    Config
	raster raster.Rasterizer
	engine ocr.Engine
	cache  *cache.PageCache
	log    observability.Logger
}

// NewProcessor wires the pipeline's collaborators. A nil engine falls back
// to ocr.DefaultEngine(); a nil logger disables logging.
func NewProcessor(cfg Config, r raster.Rasterizer, engine ocr.Engine, pc *cache.PageCache, log observability.Logger) *Processor {
	if engine == nil {
		engine = ocr.DefaultEngine()
	}
	if log == nil {
		log = observability.NopLogger{}
	}
	return &Processor{cfg: cfg, raster: r, engine: engine, cache: pc, log: log}
}

// DocumentResult is the reconciled output of one source PDF.
type DocumentResult struct {
	Topic string
	// Questions in first-insertion order, so output is reproducible across
	// runs given identical input.
	Questions   []exam.Question
	Diagnostics []Diagnostic
}

// TopicFromFilename derives the topic identifier from a document filename:
// the second whitespace-separated token of the base name, so
// "Tema 36 Test.pdf" yields "36".
func TopicFromFilename(path string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	fields := strings.Fields(stem)
	if len(fields) < 2 {
		return "", fmt.Errorf("pipeline: filename %q has no topic token", filepath.Base(path))
	}
	return fields[1], nil
}

// ProcessDocument runs one PDF through the pipeline: pages are OCR'd (or
// served from the cache), classified as question or answer pages, parsed,
// and merged by question number. Cache write failures and OCR failures
// abort the document; parse misses and reconciliation gaps are returned as
// diagnostics.
func (p *Processor) ProcessDocument(ctx context.Context, pdfPath string) (DocumentResult, error) {
	topic, err := TopicFromFilename(pdfPath)
	if err != nil {
		return DocumentResult{}, err
	}
	docID := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	docLog := p.log.With(observability.String("pdf", filepath.Base(pdfPath)))

	pages, err := p.raster.Pages(ctx, pdfPath, p.cfg.DPI)
	if err != nil {
		return DocumentResult{}, err
	}

	acc := newAccumulator()
	answers := make(map[int]string)
	var diags []Diagnostic

	for i, img := range pages {
		page := i + 1
		raw, err := p.pageText(ctx, docID, page, img)
		if errors.Is(err, imaging.ErrInvalidImage) {
			docLog.Error("unusable page image", observability.Int("page", page), observability.Err(err))
			continue
		}
		if err != nil {
			return DocumentResult{}, err
		}

		if strings.Contains(strings.ToLower(raw), answerPageMarker) {
			found := exam.ParseAnswers(raw)
			for num, letter := range found {
				answers[num] = letter
			}
			if len(found) == 0 {
				diags = append(diags, Diagnostic{Kind: DiagNoMatchOnPage, Document: docID, Page: page})
				docLog.Warn("answer page with no entries", observability.Int("page", page))
			} else {
				docLog.Info("answers parsed", observability.Int("page", page), observability.Int("count", len(found)))
			}
			continue
		}

		qs := exam.ParseQuestions(raw, topic, p.cfg.Mode)
		for _, q := range qs {
			acc.put(q)
		}
		if len(qs) == 0 {
			diags = append(diags, Diagnostic{Kind: DiagNoMatchOnPage, Document: docID, Page: page})
			docLog.Warn("no questions found", observability.Int("page", page))
		} else {
			docLog.Info("questions parsed", observability.Int("page", page), observability.Int("count", len(qs)))
		}
	}

	// Merge. Orphan answers are reported in ascending number order so the
	// diagnostic list is stable.
	for _, num := range sortedKeys(answers) {
		if !acc.setAnswer(num, answers[num]) {
			diags = append(diags, Diagnostic{Kind: DiagOrphanAnswer, Document: docID, Number: num, Letter: answers[num]})
			docLog.Warn("answer without question", observability.Int("number", num))
		}
	}
	for _, q := range acc.questions {
		if q.Answer == "" {
			diags = append(diags, Diagnostic{Kind: DiagUnresolvedQuestion, Document: docID, Number: q.Number})
		}
	}

	return DocumentResult{Topic: topic, Questions: acc.questions, Diagnostics: diags}, nil
}

// pageText returns the raw OCR text for a page, consulting the cache first.
// A cache hit must be used in place of re-running OCR; a fresh result is
// stored before being returned, and a failed store is fatal so computed
// text is never silently dropped.
func (p *Processor) pageText(ctx context.Context, docID string, page int, img image.Image) (string, error) {
	if text, ok, err := p.cache.Get(docID, page); err != nil {
		return "", err
	} else if ok {
		return text, nil
	}

	norm, err := imaging.Normalize(img)
	if err != nil {
		return "", err
	}
	data, err := imaging.EncodePNG(norm)
	if err != nil {
		return "", err
	}

	in := ocr.NewInput(fmt.Sprintf("%s-%03d", docID, page), data, page,
		ocr.WithLanguages(p.cfg.Languages...),
		ocr.WithDPI(p.cfg.DPI),
		ocr.WithPageSegMode(p.cfg.PageSegMode),
		ocr.WithEngineMode(p.cfg.EngineMode))
	res, err := p.engine.Recognize(ctx, in)
	if err != nil {
		return "", fmt.Errorf("ocr page %d of %s: %w", page, docID, err)
	}
	if err := p.cache.Put(docID, page, res.PlainText); err != nil {
		return "", err
	}
	return res.PlainText, nil
}

func sortedKeys(m map[int]string) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// accumulator keeps questions keyed by number while preserving the position
// of first insertion. A duplicate number replaces the earlier question's
// content in place (last-page-wins) without reordering.
type accumulator struct {
	index     map[int]int
	questions []exam.Question
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[int]int)}
}

func (a *accumulator) put(q exam.Question) {
	if i, ok := a.index[q.Number]; ok {
		a.questions[i] = q
		return
	}
	a.index[q.Number] = len(a.questions)
	a.questions = append(a.questions, q)
}

func (a *accumulator) setAnswer(number int, letter string) bool {
	i, ok := a.index[number]
	if !ok {
		return false
	}
	a.questions[i].Answer = letter
	return true
}
