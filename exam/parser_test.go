package exam

import (
	"reflect"
	"testing"
)

func TestParseQuestionsSeparateMode(t *testing.T) {
	raw := `12. Stem of the question
a) First option
b) Second option
c) Third option
d) Fourth option
13- Another stem a) P b) Q c) R d) S`

	qs := ParseQuestions(raw, "36", SeparateAnswerKey)
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}

	q := qs[0]
	if q.Number != 12 || q.Topic != "36" {
		t.Fatalf("unexpected header: %+v", q)
	}
	if q.Text != "Stem of the question" {
		t.Fatalf("unexpected stem: %q", q.Text)
	}
	want := []string{"First option", "Second option", "Third option", "Fourth option"}
	if !reflect.DeepEqual(q.Options, want) {
		t.Fatalf("options = %v, want %v", q.Options, want)
	}
	if q.Answer != "" {
		t.Fatalf("separate mode must leave answer empty, got %q", q.Answer)
	}

	if qs[1].Number != 13 || qs[1].Text != "Another stem" {
		t.Fatalf("unexpected second question: %+v", qs[1])
	}
}

func TestParseQuestionsOptionArity(t *testing.T) {
	raw := "1. Stem a) A b) B c) C d) D 2) Short a) w b) x c) y d) z"
	for _, q := range ParseQuestions(raw, "1", SeparateAnswerKey) {
		if err := q.Validate(); err != nil {
			t.Fatalf("invariant violated: %v", err)
		}
		for i, opt := range q.Options {
			if opt == "" {
				t.Fatalf("question %d option %d empty after trim", q.Number, i)
			}
		}
	}
}

func TestParseQuestionsAnchorInsideOption(t *testing.T) {
	// "5)" inside option b must not end question 4 early.
	raw := "4. Stem a) one b) see article 5) of the law c) three d) four 6. Next a) A b) B c) C d) D"
	qs := ParseQuestions(raw, "2", SeparateAnswerKey)
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2: %+v", len(qs), qs)
	}
	if qs[0].Number != 4 {
		t.Fatalf("first question number = %d, want 4", qs[0].Number)
	}
	if qs[0].Options[1] != "see article 5) of the law" {
		t.Fatalf("option b = %q", qs[0].Options[1])
	}
	if qs[1].Number != 6 {
		t.Fatalf("second question number = %d, want 6", qs[1].Number)
	}
}

func TestParseQuestionsGluedDigitNotBoundary(t *testing.T) {
	// A number glued to other text, like a parenthesized citation, cannot
	// terminate a question; only a whitespace-preceded number can.
	raw := "1. Stem a) A b) B c) C d) segun la ley (13) de aguas 2. Next a) E b) F c) G d) H"
	qs := ParseQuestions(raw, "2", SeparateAnswerKey)
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2: %+v", len(qs), qs)
	}
	if got := qs[0].Options[3]; got != "segun la ley (13) de aguas" {
		t.Fatalf("option d = %q, want full citation text", got)
	}
	if qs[1].Number != 2 || qs[1].Options[3] != "H" {
		t.Fatalf("second question damaged: %+v", qs[1])
	}
}

func TestParseQuestionsCaseInsensitiveMarkers(t *testing.T) {
	raw := "9. Stem A) one B) two C) three D) four"
	qs := ParseQuestions(raw, "1", SeparateAnswerKey)
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if qs[0].Options[3] != "four" {
		t.Fatalf("option d = %q", qs[0].Options[3])
	}
}

func TestParseQuestionsNoMatch(t *testing.T) {
	if qs := ParseQuestions("page header with no items at all", "3", SeparateAnswerKey); len(qs) != 0 {
		t.Fatalf("expected no questions, got %+v", qs)
	}
	if qs := ParseQuestions("", "3", SeparateAnswerKey); len(qs) != 0 {
		t.Fatalf("expected no questions on empty text, got %+v", qs)
	}
}

func TestParseQuestionsInlineMode(t *testing.T) {
	raw := "5) What is X? a) P b) Q c) R d) S Respuesta correcta: c"
	qs := ParseQuestions(raw, "8", InlineAnswer)
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.Number != 5 || q.Text != "What is X?" {
		t.Fatalf("unexpected question: %+v", q)
	}
	if !reflect.DeepEqual(q.Options, []string{"P", "Q", "R", "S"}) {
		t.Fatalf("options = %v", q.Options)
	}
	if q.Answer != "c" {
		t.Fatalf("answer = %q, want c", q.Answer)
	}
}

func TestParseQuestionsInlineModeUppercasePhrase(t *testing.T) {
	raw := "7. Stem a) A b) B c) C d) D RESPUESTA CORRECTA: B 8. Next a) E b) F c) G d) H Respuesta correcta: d"
	qs := ParseQuestions(raw, "8", InlineAnswer)
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].Answer != "b" || qs[1].Answer != "d" {
		t.Fatalf("answers = %q, %q", qs[0].Answer, qs[1].Answer)
	}
}

func TestParseQuestionsInlineModeRequiresPhrase(t *testing.T) {
	raw := "5) What is X? a) P b) Q c) R d) S"
	if qs := ParseQuestions(raw, "8", InlineAnswer); len(qs) != 0 {
		t.Fatalf("inline mode matched without answer phrase: %+v", qs)
	}
}

func TestParseQuestionsSpansLineBreaks(t *testing.T) {
	raw := "3.\nA stem split\nacross lines a)\none b) two\nc) three d) four"
	qs := ParseQuestions(raw, "1", SeparateAnswerKey)
	if len(qs) != 1 {
		t.Fatalf("got %d questions, want 1", len(qs))
	}
	if qs[0].Text != "A stem split across lines" {
		t.Fatalf("stem = %q", qs[0].Text)
	}
}

func TestParseAnswers(t *testing.T) {
	raw := "SOLUCIONES\n1: a  2:B   3 - c\nnoise 25:B_ more"
	got := ParseAnswers(raw)
	want := map[int]string{1: "a", 2: "b", 3: "c", 25: "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseAnswers() = %v, want %v", got, want)
	}
}

func TestParseAnswersDuplicateLastWins(t *testing.T) {
	got := ParseAnswers("7: a ... 7: d")
	if got[7] != "d" {
		t.Fatalf("duplicate entry resolved to %q, want d (last in scan order)", got[7])
	}
}

func TestParseAnswersEmpty(t *testing.T) {
	if got := ParseAnswers("no pairs here"); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}

func TestParseModeFromString(t *testing.T) {
	cases := []struct {
		in      string
		want    ParseMode
		wantErr bool
	}{
		{"separate", SeparateAnswerKey, false},
		{"", SeparateAnswerKey, false},
		{"inline", InlineAnswer, false},
		{"bogus", 0, true},
	}
	for _, c := range cases {
		got, err := ParseModeFromString(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseModeFromString(%q): expected error", c.in)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Fatalf("ParseModeFromString(%q) = %v, %v", c.in, got, err)
		}
	}
}

func TestQuestionValidate(t *testing.T) {
	good := Question{Topic: "1", Number: 3, Text: "s", Options: []string{"a", "b", "c", "d"}, Answer: "a"}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}
	bad := good
	bad.Options = bad.Options[:3]
	if err := bad.Validate(); err == nil {
		t.Fatal("3-option question accepted")
	}
	bad = good
	bad.Number = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("zero number accepted")
	}
	bad = good
	bad.Answer = "e"
	if err := bad.Validate(); err == nil {
		t.Fatal("out-of-range answer accepted")
	}
}
