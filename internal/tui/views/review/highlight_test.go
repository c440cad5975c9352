package review

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Pin the color profile so rendered output is stable under test.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestHighlightAfterReplacesOriginal(t *testing.T) {
	out := Highlight("I saw teh cat.", "teh", "the", ModeAfter)

	assert.Contains(t, out, "the")
	assert.NotContains(t, out, "teh")
	assert.Contains(t, out, "I saw ")
	assert.Contains(t, out, " cat.")
}

func TestHighlightBeforeKeepsOriginal(t *testing.T) {
	out := Highlight("I saw teh cat.", "teh", "the", ModeBefore)

	assert.Contains(t, out, "teh")
	assert.NotContains(t, out, "the ", "corrected text never appears in before mode")
}

func TestHighlightInlineShowsBoth(t *testing.T) {
	out := Highlight("I saw teh cat.", "teh", "the", ModeInline)

	assert.Contains(t, out, "teh")
	assert.Contains(t, out, "the")
	assert.Contains(t, out, "→")
}

func TestHighlightNotFoundReturnsSentence(t *testing.T) {
	const sentence = "Nothing to fix here."

	for _, mode := range []Mode{ModeBefore, ModeInline} {
		assert.Equal(t, sentence, Highlight(sentence, "zebra", "zebras", mode))
	}
	// After mode attempts a raw replace; with no occurrence that is still
	// the verbatim sentence.
	assert.Equal(t, sentence, Highlight(sentence, "zebra", "zebras", ModeAfter))
}

func TestHighlightEmptyOriginal(t *testing.T) {
	const sentence = "Unchanged."

	assert.Equal(t, sentence, Highlight(sentence, "", "x", ModeBefore))
	assert.Equal(t, sentence, Highlight(sentence, "", "", ModeAfter))
	assert.Equal(t, sentence, Highlight(sentence, "", "x", ModeInline))
}

func TestHighlightCaseInsensitiveMatch(t *testing.T) {
	out := Highlight("Teh cat sat.", "teh", "The", ModeAfter)

	assert.Contains(t, out, "The")
	assert.NotContains(t, out, "Teh")
}

func TestHighlightFirstOccurrenceOnly(t *testing.T) {
	// Only the first "teh" is replaced; the second passes through verbatim.
	out := Highlight("teh cat and teh dog", "teh", "the", ModeAfter)

	assert.Contains(t, out, "the cat and teh dog")
}

func TestHighlightInlineNoCorrected(t *testing.T) {
	out := Highlight("I saw teh cat.", "teh", "", ModeInline)

	// Falls back to repeating the match after the arrow.
	assert.Contains(t, out, "teh")
	assert.Contains(t, out, "→")
}

func TestHighlightDoesNotMutateInputs(t *testing.T) {
	sentence := "I saw teh cat."
	_ = Highlight(sentence, "teh", "the", ModeAfter)
	assert.Equal(t, "I saw teh cat.", sentence)
}

func TestIndexFold(t *testing.T) {
	tests := []struct {
		s, sub string
		want   int
	}{
		{"hello world", "world", 6},
		{"Hello World", "world", 6},
		{"hello", "hello", 0},
		{"hello", "nope", -1},
		{"hello", "", -1},
		{"ab", "abc", -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, indexFold(tt.s, tt.sub), "indexFold(%q, %q)", tt.s, tt.sub)
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "run_0c9d1f2e_accepted.docx",
		ExportFilename("0c9d1f2e-5a6b-4c7d-8e9f-001122334455", "docx"))
	assert.Equal(t, "run_short_accepted.txt", ExportFilename("short", "txt"))
}
