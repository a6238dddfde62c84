package pipeline

import "fmt"

// DiagnosticKind classifies the non-fatal findings a run reports.
type DiagnosticKind string

const (
	// DiagNoMatchOnPage: a page yielded zero questions or answers.
	DiagNoMatchOnPage DiagnosticKind = "no-match-on-page"
	// DiagOrphanAnswer: an answer-key entry had no matching question and
	// was discarded.
	DiagOrphanAnswer DiagnosticKind = "orphan-answer"
	// DiagUnresolvedQuestion: a question ended the document without an
	// answer.
	DiagUnresolvedQuestion DiagnosticKind = "unresolved-question"
)

// Diagnostic is a typed, collectable record of a non-fatal finding. The
// pipeline returns diagnostics alongside results so callers and tests can
// assert on them directly instead of scraping log output.
type Diagnostic struct {
	Kind     DiagnosticKind
	Document string
	// Page is the 1-based page index, zero for document-level findings.
	Page int
	// Number is the question number involved, zero when not applicable.
	Number int
	// Letter is the answer letter involved, empty when not applicable.
	Letter string
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case DiagNoMatchOnPage:
		return fmt.Sprintf("%s p%03d: no matches", d.Document, d.Page)
	case DiagOrphanAnswer:
		return fmt.Sprintf("%s: answer %d:%s has no question", d.Document, d.Number, d.Letter)
	case DiagUnresolvedQuestion:
		return fmt.Sprintf("%s: question %d has no answer", d.Document, d.Number)
	default:
		return fmt.Sprintf("%s: %s", d.Document, string(d.Kind))
	}
}
