package review

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/redline/internal/core/suggest"
	"github.com/prooflab/redline/pkg/tuitest"
)

func TestRenderHeaderAndRows(t *testing.T) {
	backend := &reviewBackend{runID: "run-1", suggestions: threePending("run-1")}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	v := newTestView(t, srv.URL, "run-1")
	drive(t, v, v.loadSuggestions())
	_, _ = v.Update(tuitest.WindowSize(120, 40))

	out := tuitest.StripANSI(v.View())

	assert.Contains(t, out, "Corrections · run run-1")
	assert.Contains(t, out, "3 total")
	assert.Contains(t, out, "3 pending")
	assert.Contains(t, out, "0/3 reviewed")
	assert.Contains(t, out, "teh")
	assert.Contains(t, out, "the")
	assert.Contains(t, out, "q quit")
	assert.NotContains(t, out, "[read-only]")
}

func TestRenderLegacyBadge(t *testing.T) {
	v := newTestView(t, "http://127.0.0.1:0", "run-1")
	_, _ = v.Update(suggestionsMsg{err: assert.AnError})
	_, _ = v.Update(legacyMsg{rows: []suggest.CorrectionRow{{Original: "teh", Corrected: "the", Sentence: "teh cat"}}})

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "[read-only]")
	// No selection or mutation affordances in legacy mode.
	assert.NotContains(t, out, "[ ]")
	assert.NotContains(t, out, "accept/reject")
}

func TestRenderCursorFollowsNavigation(t *testing.T) {
	backend := &reviewBackend{runID: "run-1", suggestions: threePending("run-1")}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	v := newTestView(t, srv.URL, "run-1")
	drive(t, v, v.loadSuggestions())

	_, _ = v.Update(tuitest.KeyDown())
	row, ok := v.currentRow()
	require.True(t, ok)
	assert.Equal(t, "b", row.ID)

	_, _ = v.Update(tuitest.KeyUp())
	row, _ = v.currentRow()
	assert.Equal(t, "a", row.ID)

	// Cursor clamps at the ends.
	_, _ = v.Update(tuitest.KeyUp())
	row, _ = v.currentRow()
	assert.Equal(t, "a", row.ID)
}

func TestRenderFilterNarrowsRows(t *testing.T) {
	backend := &reviewBackend{runID: "run-1", suggestions: threePending("run-1")}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	v := newTestView(t, srv.URL, "run-1")
	drive(t, v, v.loadSuggestions())

	_, _ = v.Update(tuitest.KeyPress('/'))
	require.True(t, v.searching)
	for _, r := range "recieve" {
		_, _ = v.Update(tuitest.KeyPress(r))
	}
	_, _ = v.Update(tuitest.KeyEnter())

	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "recieve")
	assert.NotContains(t, out, "teh")

	// Esc clears the filter entirely.
	_, _ = v.Update(tuitest.KeyPress('/'))
	_, _ = v.Update(tuitest.KeyEsc())
	out = tuitest.StripANSI(v.View())
	assert.True(t, strings.Contains(out, "teh"))
}

func TestRenderSelectionMarker(t *testing.T) {
	backend := &reviewBackend{runID: "run-1", suggestions: threePending("run-1")}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	v := newTestView(t, srv.URL, "run-1")
	drive(t, v, v.loadSuggestions())

	_, _ = v.Update(tuitest.KeyPress(' '))
	out := tuitest.StripANSI(v.View())
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "accept/reject 1 selected")
}
