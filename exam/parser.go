package exam

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// anchorRe finds the candidate start of a question: a 1-3 digit number
	// followed by ".", "-" or ")".
	anchorRe = regexp.MustCompile(`\d{1,3}\s*[.\-)]\s*`)

	// questionBodyRe matches one whole question segment in separate-key
	// mode: number, separator, non-greedy stem, then the four option
	// markers in fixed order with non-greedy bodies.
	questionBodyRe = regexp.MustCompile(
		`(?i)^(\d{1,3})\s*[.\-)]\s*(.+?)\s+a\)\s*(.+?)\s+b\)\s*(.+?)\s+c\)\s*(.+?)\s+d\)\s*(.+?)\s*$`)

	// questionInlineRe is the inline-answer variant: the same shape, but
	// terminated by the literal answer phrase, which makes the match
	// self-bounding.
	questionInlineRe = regexp.MustCompile(
		`(?i)(\d{1,3})\s*[.\-)]\s*(.+?)\s+a\)\s*(.+?)\s+b\)\s*(.+?)\s+c\)\s*(.+?)\s+d\)\s*(.+?)\s+respuesta\s+correcta\s*:\s*([a-d])`)

	// answerPairRe matches one "number: letter" entry on an answer-key
	// page, tolerating noise around the pair.
	answerPairRe = regexp.MustCompile(`(?i)(\d{1,3})\s*[:\-]\s*([a-d])`)
)

// collapse reduces every whitespace run to a single space so matches can
// span the original line breaks.
func collapse(raw string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
}

// ParseQuestions extracts every question found in a page's raw OCR text.
// Zero matches is not an error; the caller decides how to report it.
func ParseQuestions(raw, topic string, mode ParseMode) []Question {
	clean := collapse(raw)
	if clean == "" {
		return nil
	}
	if mode == InlineAnswer {
		return parseInline(clean, topic)
	}
	return parseSeparate(clean, topic)
}

// parseSeparate reproduces a shortest-match-with-lookahead grammar: a
// question ends right before the next whitespace-preceded number+separator
// anchor, or at end of text. Go's RE2 has no lookahead, so anchors are
// scanned explicitly and each question is tried against successively
// longer anchor-bounded segments, nearest boundary first. An anchor that
// appears inside option text simply fails the short segment and the next
// boundary is tried.
func parseSeparate(clean, topic string) []Question {
	anchors := anchorRe.FindAllStringIndex(clean, -1)
	var out []Question
	i := 0
	for i < len(anchors) {
		start := anchors[i][0]
		matched := false
		for j := i + 1; j <= len(anchors); j++ {
			end := len(clean)
			if j < len(anchors) {
				// Only a number preceded by whitespace can terminate a
				// question; a digit glued to other text, like the citation
				// "(13)", is part of the option body. The text is already
				// whitespace-collapsed, so one space is the only form a
				// boundary takes.
				boundary := anchors[j][0]
				if boundary == 0 || clean[boundary-1] != ' ' {
					continue
				}
				end = boundary
			}
			q, ok := buildQuestion(questionBodyRe.FindStringSubmatch(clean[start:end]), topic)
			if ok {
				out = append(out, q)
				i = j
				matched = true
				break
			}
			if end == len(clean) {
				break
			}
		}
		if !matched {
			i++
		}
	}
	return out
}

func parseInline(clean, topic string) []Question {
	var out []Question
	for _, m := range questionInlineRe.FindAllStringSubmatch(clean, -1) {
		q, ok := buildQuestion(m[:7], topic)
		if !ok {
			continue
		}
		q.Answer = strings.ToLower(m[7])
		out = append(out, q)
	}
	return out
}

// buildQuestion turns the seven capture groups (full match, number, stem,
// four options) into a Question.
func buildQuestion(m []string, topic string) (Question, bool) {
	if len(m) < 7 {
		return Question{}, false
	}
	number, err := strconv.Atoi(m[1])
	if err != nil || number <= 0 {
		return Question{}, false
	}
	q := Question{
		Topic:  topic,
		Number: number,
		Text:   strings.TrimSpace(m[2]),
		Options: []string{
			strings.TrimSpace(m[3]),
			strings.TrimSpace(m[4]),
			strings.TrimSpace(m[5]),
			strings.TrimSpace(m[6]),
		},
	}
	return q, true
}

// ParseAnswers extracts a question-number to answer-letter mapping from an
// answer-key page. Later matches overwrite earlier ones on duplicate
// numbers (scan-order precedence).
func ParseAnswers(raw string) map[int]string {
	out := make(map[int]string)
	for _, m := range answerPairRe.FindAllStringSubmatch(raw, -1) {
		number, err := strconv.Atoi(m[1])
		if err != nil || number <= 0 {
			continue
		}
		out[number] = strings.ToLower(m[2])
	}
	return out
}
