package review

import (
	"github.com/prooflab/redline/internal/api"
	"github.com/prooflab/redline/internal/core/suggest"
)

// suggestionsMsg carries the result of the primary persistent-suggestion
// fetch. A failure here is the feature-detection signal for legacy mode, not
// a user-visible error.
type suggestionsMsg struct {
	list api.SuggestionList
	err  error
}

// legacyMsg carries the joined result of fetching every correction artifact.
type legacyMsg struct {
	rows []suggest.CorrectionRow
	err  error
}

// mutationMsg reports the outcome of an accept/reject/bulk/all call. A nil
// err triggers a refetch of the suggestion collection.
type mutationMsg struct {
	action string
	err    error
}

// exportMsg reports the outcome of the export download.
type exportMsg struct {
	path string
	err  error
}
