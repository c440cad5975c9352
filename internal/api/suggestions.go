package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/prooflab/redline/internal/core/suggest"
)

// SuggestionList is the backend's suggestion listing for a run.
type SuggestionList struct {
	RunID       string               `json:"run_id"`
	Total       int                  `json:"total"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
}

// BulkUpdateResult reports how many of the requested suggestions changed.
type BulkUpdateResult struct {
	Updated        int `json:"updated"`
	TotalRequested int `json:"total_requested"`
}

// AcceptAllResult is the count of suggestions accept-all transitioned.
type AcceptAllResult struct {
	Accepted int `json:"accepted"`
}

// RejectAllResult is the count of suggestions reject-all transitioned.
type RejectAllResult struct {
	Rejected int `json:"rejected"`
}

// ListSuggestions fetches a run's persistent suggestions, optionally
// narrowed to a status. A 404 here is the feature-detection signal that the
// run predates persistent suggestions.
func (c *Client) ListSuggestions(ctx context.Context, runID string, status suggest.Status) (SuggestionList, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}

	var list SuggestionList
	err := c.getJSON(ctx, "/suggestions/runs/"+url.PathEscape(runID)+"/suggestions", query, &list)
	return list, err
}

// UpdateSuggestion transitions one suggestion to accepted or rejected.
func (c *Client) UpdateSuggestion(ctx context.Context, suggestionID string, status suggest.Status) (suggest.Suggestion, error) {
	body := struct {
		Status suggest.Status `json:"status"`
	}{Status: status}

	var updated suggest.Suggestion
	err := c.patchJSON(ctx, "/suggestions/suggestions/"+url.PathEscape(suggestionID), body, &updated)
	return updated, err
}

// BulkUpdate transitions the given suggestion ids in one request.
func (c *Client) BulkUpdate(ctx context.Context, runID string, ids []string, status suggest.Status) (BulkUpdateResult, error) {
	body := struct {
		SuggestionIDs []string       `json:"suggestion_ids"`
		Status        suggest.Status `json:"status"`
	}{SuggestionIDs: ids, Status: status}

	var result BulkUpdateResult
	err := c.postJSON(ctx, "/suggestions/runs/"+url.PathEscape(runID)+"/suggestions/bulk-update", body, &result)
	return result, err
}

// AcceptAll accepts every pending suggestion of the run.
func (c *Client) AcceptAll(ctx context.Context, runID string) (AcceptAllResult, error) {
	var result AcceptAllResult
	err := c.postJSON(ctx, "/suggestions/runs/"+url.PathEscape(runID)+"/suggestions/accept-all", nil, &result)
	return result, err
}

// RejectAll rejects every pending suggestion of the run.
func (c *Client) RejectAll(ctx context.Context, runID string) (RejectAllResult, error) {
	var result RejectAllResult
	err := c.postJSON(ctx, "/suggestions/runs/"+url.PathEscape(runID)+"/suggestions/reject-all", nil, &result)
	return result, err
}

// ExportAccepted downloads the corrected document with only accepted
// suggestions applied. The body is an opaque binary blob.
func (c *Client) ExportAccepted(ctx context.Context, runID string) ([]byte, error) {
	return c.doBytes(ctx, http.MethodPost, "/suggestions/runs/"+url.PathEscape(runID)+"/export-with-accepted")
}
