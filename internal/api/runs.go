package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Run statuses reported by the backend.
const (
	RunQueued    = "queued"
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Run is the state of a correction run.
type Run struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Finished reports whether the run reached a terminal status.
func (r Run) Finished() bool {
	return r.Status == RunCompleted || r.Status == RunFailed
}

// CreateRun requests a new correction run over the given documents.
type CreateRun struct {
	ProjectID   string   `json:"project_id"`
	DocumentIDs []string `json:"document_ids"`
	Mode        string   `json:"mode,omitempty"`
	UseAI       bool     `json:"use_ai,omitempty"`
}

// CreateRunResult is the backend's acknowledgment of a new run.
type CreateRunResult struct {
	RunID string `json:"run_id"`
}

// ArtifactList is the set of files a run has produced so far.
type ArtifactList struct {
	Files []string `json:"files"`
}

// StartRun creates a correction run.
func (c *Client) StartRun(ctx context.Context, req CreateRun) (CreateRunResult, error) {
	var result CreateRunResult
	err := c.postJSON(ctx, "/runs", req, &result)
	return result, err
}

// GetRun fetches the current status of a run.
func (c *Client) GetRun(ctx context.Context, runID string) (Run, error) {
	var run Run
	err := c.getJSON(ctx, "/runs/"+url.PathEscape(runID), nil, &run)
	return run, err
}

// ListArtifacts returns the artifact filenames a run has produced.
func (c *Client) ListArtifacts(ctx context.Context, runID string) (ArtifactList, error) {
	var list ArtifactList
	err := c.getJSON(ctx, "/runs/"+url.PathEscape(runID)+"/artifacts", nil, &list)
	return list, err
}

// GetArtifact downloads one artifact's raw bytes.
func (c *Client) GetArtifact(ctx context.Context, runID, filename string) ([]byte, error) {
	return c.doBytes(ctx, http.MethodGet, "/runs/artifacts/"+url.PathEscape(runID)+"/"+url.PathEscape(filename))
}

// SummaryMarkdown fetches the run's generated summary document.
func (c *Client) SummaryMarkdown(ctx context.Context, runID string) ([]byte, error) {
	return c.doBytes(ctx, http.MethodGet, "/runs/"+url.PathEscape(runID)+"/summary.md")
}

// ChangelogCSV fetches the run's persistent correction changelog.
func (c *Client) ChangelogCSV(ctx context.Context, runID string) ([]byte, error) {
	return c.doBytes(ctx, http.MethodGet, "/runs/"+url.PathEscape(runID)+"/changelog.csv")
}
