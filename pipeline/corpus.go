package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sort"

	"github.com/Avionetito/PoliciApp/exam"
	"github.com/Avionetito/PoliciApp/observability"
)

// ErrNoDocuments reports an empty input directory. Callers treat it as a
// clean no-op rather than a failure.
var ErrNoDocuments = errors.New("pipeline: no input documents found")

// DocumentFailure records a document that could not be processed. Failures
// abort only their own document; the corpus run continues.
type DocumentFailure struct {
	Path string
	Err  error
}

// CorpusResult aggregates every document's output in document order.
// Identical (topic, number) pairs from different documents are retained as
// separate records; there is no cross-document deduplication.
type CorpusResult struct {
	Questions   []exam.Question
	Diagnostics []Diagnostic
	Failures    []DocumentFailure
}

// Unresolved returns the question numbers that ended the run without an
// answer, in output order.
func (r CorpusResult) Unresolved() []int {
	var nums []int
	for _, q := range r.Questions {
		if q.Answer == "" {
			nums = append(nums, q.Number)
		}
	}
	return nums
}

// ProcessCorpus runs every *.pdf in the configured source directory through
// ProcessDocument, in sorted filename order.
func (p *Processor) ProcessCorpus(ctx context.Context) (CorpusResult, error) {
	paths, err := filepath.Glob(filepath.Join(p.cfg.SourceDir, "*.pdf"))
	if err != nil {
		return CorpusResult{}, err
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return CorpusResult{}, ErrNoDocuments
	}

	var result CorpusResult
	for _, path := range paths {
		doc, err := p.ProcessDocument(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			p.log.Error("document failed", observability.String("pdf", filepath.Base(path)), observability.Err(err))
			result.Failures = append(result.Failures, DocumentFailure{Path: path, Err: err})
			continue
		}
		result.Questions = append(result.Questions, doc.Questions...)
		result.Diagnostics = append(result.Diagnostics, doc.Diagnostics...)
	}
	return result, nil
}
