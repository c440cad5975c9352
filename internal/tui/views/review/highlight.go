package review

import (
	"strings"

	"github.com/prooflab/redline/internal/core/styles"
)

// Mode selects how a correction is rendered inside its sentence.
type Mode int

const (
	// ModeBefore strikes through the original substring.
	ModeBefore Mode = iota
	// ModeAfter replaces the original substring with the corrected text,
	// underlined.
	ModeAfter
	// ModeInline shows the struck-through original immediately followed by
	// the corrected text.
	ModeInline
)

// Highlight decorates the first case-insensitive occurrence of original
// inside sentence, per mode. If original is empty or absent the sentence is
// returned verbatim, except ModeAfter which still attempts a plain first
// occurrence replace. Pure function of its inputs.
//
// When original occurs more than once only the first occurrence is
// decorated; the rest of the sentence is passed through untouched. That
// imprecision is deliberate and matches the table's row semantics, which
// carry exactly one correction per row.
func Highlight(sentence, original, corrected string, mode Mode) string {
	idx := -1
	if original != "" {
		idx = indexFold(sentence, original)
	}
	if idx < 0 {
		if mode == ModeAfter && corrected != "" {
			return strings.Replace(sentence, original, corrected, 1)
		}
		return sentence
	}

	before := sentence[:idx]
	match := sentence[idx : idx+len(original)]
	after := sentence[idx+len(original):]

	switch mode {
	case ModeBefore:
		return before + styles.RemovedStyle.Render(match) + after
	case ModeAfter:
		if corrected == "" {
			break
		}
		return before + styles.InsertedStyle.Render(corrected) + after
	}

	// inline: show both original -> corrected
	replacement := corrected
	if replacement == "" {
		replacement = match
	}
	return before +
		styles.RemovedStyle.Render(match) +
		styles.ArrowStyle.Render(" → ") +
		styles.InsertedStyle.Render(replacement) +
		after
}

// indexFold returns the byte index of the first occurrence of sub in s under
// simple case folding, or -1. Matching is over equal byte lengths, which
// holds for the case folds the corrector emits.
func indexFold(s, sub string) int {
	n := len(sub)
	if n == 0 || n > len(s) {
		return -1
	}
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], sub) {
			return i
		}
	}
	return -1
}
