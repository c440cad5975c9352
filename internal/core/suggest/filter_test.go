package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []Row {
	return []Row{
		{Kind: KindPersistent, ID: "a", Original: "teh", Corrected: "the", Reason: "spelling", Sentence: "I saw teh cat."},
		{Kind: KindPersistent, ID: "b", Original: "recieve", Corrected: "receive", Reason: "spelling", Sentence: "You will recieve it."},
		{Kind: KindPersistent, ID: "c", Original: "its", Corrected: "it's", Reason: "grammar", Sentence: "its raining"},
		{Kind: KindLegacy, Original: "color", Corrected: "colour", Reason: "style", Sentence: "The color red.", Document: "essay"},
	}
}

func TestFilter(t *testing.T) {
	rows := filterFixture()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "empty query returns all rows", query: "", want: 4},
		{name: "matches original", query: "recieve", want: 1},
		{name: "matches corrected", query: "colour", want: 1},
		{name: "matches reason", query: "spelling", want: 2},
		{name: "matches sentence", query: "raining", want: 1},
		{name: "case insensitive", query: "SPELLING", want: 2},
		{name: "no matches", query: "zebra", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(rows, tt.query)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	rows := filterFixture()

	once := Filter(rows, "spelling")
	twice := Filter(once, "spelling")

	assert.Equal(t, once, twice)
}

func TestFilterPreservesOrder(t *testing.T) {
	rows := filterFixture()

	got := Filter(rows, "spelling")

	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	rows := filterFixture()
	before := len(rows)

	_ = Filter(rows, "spelling")

	assert.Len(t, rows, before)
}

func TestFilterDocument(t *testing.T) {
	rows := filterFixture()

	assert.Len(t, FilterDocument(rows, ""), 4)
	assert.Len(t, FilterDocument(rows, "essay"), 1)
	assert.Len(t, FilterDocument(rows, "missing"), 0)
}

func TestFilterComposesWithDocument(t *testing.T) {
	rows := []Row{
		{Kind: KindLegacy, Original: "teh", Document: "a"},
		{Kind: KindLegacy, Original: "teh", Document: "b"},
		{Kind: KindLegacy, Original: "ok", Document: "a"},
	}

	got := Filter(FilterDocument(rows, "a"), "teh")

	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Document)
}

func TestDocuments(t *testing.T) {
	rows := []Row{
		{Document: "b"},
		{Document: "a"},
		{Document: "b"},
		{},
	}

	assert.Equal(t, []string{"b", "a"}, Documents(rows))
}
