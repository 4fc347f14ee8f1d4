package interview

import (
	"strings"
	"unicode"
)

// SegmentSentences splits text into sentence-sized segments for synthesis.
// A boundary is '.', '!' or '?' followed by whitespace; the punctuation
// stays with the preceding segment and every segment is trimmed. Splitting
// is purely textual, there is no sentence-boundary detection beyond the
// punctuation rule.
func SegmentSentences(text string) []string {
	segments := []string{}

	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if isSentenceEnd(runes[i]) && unicode.IsSpace(runes[i+1]) {
			if segment := strings.TrimSpace(string(runes[start : i+1])); segment != "" {
				segments = append(segments, segment)
			}
			start = i + 1
		}
	}

	if tail := strings.TrimSpace(string(runes[start:])); tail != "" {
		segments = append(segments, tail)
	}

	return segments
}

// ExtractQuestions returns the question-like fragments of text: substrings
// terminated by '?', split on sentence-ending punctuation, trimmed.
func ExtractQuestions(text string) []string {
	questions := []string{}

	var current strings.Builder
	for _, r := range text {
		switch {
		case r == '?':
			if current.Len() > 0 {
				questions = append(questions, strings.TrimSpace(current.String())+"?")
			}
			current.Reset()
		case isSentenceEnd(r):
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return questions
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
