package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSuggestion(t *testing.T) {
	s := Suggestion{
		ID:       "9b2d6c1e-0000-4000-8000-000000000001",
		Before:   "teh",
		After:    "the",
		Reason:   "spelling",
		Sentence: "I saw teh cat.",
		Line:     4,
		Status:   StatusPending,
	}

	row := FromSuggestion(s)

	assert.Equal(t, KindPersistent, row.Kind)
	assert.Equal(t, s.ID, row.ID)
	assert.Equal(t, "teh", row.Original)
	assert.Equal(t, "the", row.Corrected)
	assert.Equal(t, StatusPending, row.Status)
	assert.True(t, row.Pending())
}

func TestFromCorrection(t *testing.T) {
	c := CorrectionRow{
		Original:  "vaca",
		Corrected: "baca",
		Reason:    "ortografía",
		Sentence:  "La vaca pasta.",
		Line:      12,
		Document:  "novela",
	}

	row := FromCorrection(c)

	assert.Equal(t, KindLegacy, row.Kind)
	assert.Empty(t, row.ID)
	assert.Equal(t, "novela", row.Document)
	assert.False(t, row.Pending(), "legacy rows are never pending")
}

func TestRowSnippet(t *testing.T) {
	assert.Equal(t, "full sentence", Row{Sentence: "full sentence", Context: "ctx"}.Snippet())
	assert.Equal(t, "ctx", Row{Context: "ctx"}.Snippet())
}

func TestCompute(t *testing.T) {
	rows := []Row{
		{Kind: KindPersistent, Status: StatusPending},
		{Kind: KindPersistent, Status: StatusAccepted},
		{Kind: KindPersistent, Status: StatusAccepted},
		{Kind: KindPersistent, Status: StatusRejected},
		{Kind: KindLegacy},
	}

	st := Compute(rows)

	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 2, st.Accepted)
	assert.Equal(t, 1, st.Rejected)
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 3, st.Reviewed())
}

func TestComputeAfterAcceptAll(t *testing.T) {
	// Three pending suggestions; the server confirms accept-all and the next
	// fetch reflects it.
	rows := []Row{
		{Kind: KindPersistent, Status: StatusAccepted},
		{Kind: KindPersistent, Status: StatusAccepted},
		{Kind: KindPersistent, Status: StatusAccepted},
	}

	st := Compute(rows)

	assert.Equal(t, 0, st.Pending)
	assert.Equal(t, 3, st.Accepted)
}

func TestParseJSONL(t *testing.T) {
	input := `{"original":"teh","corrected":"the","sentence":"I saw teh cat.","line":4}
not-json
`

	rows := ParseJSONLString(input)

	require.Len(t, rows, 1, "malformed lines are skipped, not fatal")
	assert.Equal(t, "teh", rows[0].Original)
	assert.Equal(t, "the", rows[0].Corrected)
	assert.Equal(t, 4, rows[0].Line)
}

func TestParseJSONLBlankAndCRLF(t *testing.T) {
	input := "{\"original\":\"a\",\"corrected\":\"b\"}\r\n\r\n   \r\n{\"original\":\"c\",\"corrected\":\"d\"}\r\n"

	rows := ParseJSONLString(input)

	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Original)
	assert.Equal(t, "c", rows[1].Original)
}

func TestParseJSONLEmpty(t *testing.T) {
	assert.Empty(t, ParseJSONLString(""))
}

func TestParseJSONLNoTrailingNewline(t *testing.T) {
	rows := ParseJSONLString(`{"original":"a","corrected":"b"}`)

	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].Original)
}

func TestParseJSONLOversizedLineDoesNotDropRows(t *testing.T) {
	// A line longer than any fixed scanner buffer must not abort the
	// parse: surrounding valid rows still come through.
	huge := `{"original":"` + strings.Repeat("x", 2*1024*1024) + `"}`
	input := "{\"original\":\"a\",\"corrected\":\"b\"}\n" +
		huge + "\n" +
		"{\"original\":\"c\",\"corrected\":\"d\"}\n"

	rows := ParseJSONL(strings.NewReader(input))

	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].Original)
	assert.Equal(t, "c", rows[2].Original)
}

func TestArtifactNaming(t *testing.T) {
	assert.True(t, IsCorrectionArtifact("novela.docx.corrections.jsonl"))
	assert.False(t, IsCorrectionArtifact("novela.docx.changelog.csv"))
	assert.Equal(t, "novela.docx", DocumentName("novela.docx.corrections.jsonl"))
	assert.Equal(t, "summary.md", DocumentName("summary.md"))
}
