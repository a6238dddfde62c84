// Package exam holds the question data model and the tolerant text
// grammars that turn raw OCR output into structured records. OCR text is
// noisy: line breaks fall mid-sentence, markers drift in case, and stray
// characters surround the answer key pairs. The grammars absorb that noise
// instead of trying to repair it.
package exam

import "fmt"

// OptionCount is the fixed number of options per question, labeled a-d.
const OptionCount = 4

// Question is one extracted multiple-choice item.
type Question struct {
	// Topic identifies the source document's subject area, taken from its
	// filename ("Tema 36 Test.pdf" -> "36").
	Topic string `json:"tema"`
	// Number is the question's printed ordinal, unique within a topic's
	// reconciled set.
	Number int `json:"number"`
	// Text is the whitespace-normalized question stem.
	Text string `json:"text"`
	// Options are the four answer bodies in a, b, c, d order.
	Options []string `json:"options"`
	// Answer is the correct option letter (a-d), empty until reconciled
	// with an answer key in separate-key mode. The field is always
	// serialized so every record carries the same shape.
	Answer string `json:"answer"`
}

// Validate reports whether the question satisfies the model invariants.
func (q Question) Validate() error {
	if q.Number <= 0 {
		return fmt.Errorf("exam: question number %d is not positive", q.Number)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("exam: question %d has %d options, want %d", q.Number, len(q.Options), OptionCount)
	}
	switch q.Answer {
	case "", "a", "b", "c", "d":
	default:
		return fmt.Errorf("exam: question %d has invalid answer %q", q.Number, q.Answer)
	}
	return nil
}

// ParseMode selects which question grammar a run uses.
type ParseMode int

const (
	// SeparateAnswerKey expects answer listings on dedicated key pages;
	// questions parse without an answer and are reconciled afterwards.
	SeparateAnswerKey ParseMode = iota
	// InlineAnswer expects each question to end with a literal
	// "Respuesta correcta: <letter>" phrase.
	InlineAnswer
)

func (m ParseMode) String() string {
	switch m {
	case SeparateAnswerKey:
		return "separate"
	case InlineAnswer:
		return "inline"
	default:
		return fmt.Sprintf("ParseMode(%d)", int(m))
	}
}

// ParseModeFromString maps the config spelling to a ParseMode.
func ParseModeFromString(s string) (ParseMode, error) {
	switch s {
	case "separate", "":
		return SeparateAnswerKey, nil
	case "inline":
		return InlineAnswer, nil
	default:
		return 0, fmt.Errorf("exam: unknown parse mode %q", s)
	}
}
