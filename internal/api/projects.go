package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Project is a correction project owned by the authenticated user.
type Project struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Variant   string    `json:"variant,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentInfo is a document as listed inside a project detail.
type DocumentInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// RunInfo is a run summary as listed inside a project detail.
type RunInfo struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectDetail is a project with its documents and runs.
type ProjectDetail struct {
	Project
	Documents []DocumentInfo `json:"documents"`
	Runs      []RunInfo      `json:"runs"`
}

// CreateProject makes a new project. Name validation happens client-side
// before dispatch; the backend enforces it again.
type CreateProject struct {
	Name    string `json:"name"`
	Variant string `json:"variant,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// UpdateProject carries the mutable project fields for a PATCH.
type UpdateProject struct {
	Name string `json:"name,omitempty"`
}

// ListProjects returns the caller's projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := c.getJSON(ctx, "/projects", nil, &projects)
	return projects, err
}

// CreateProject creates a project and returns the server's record of it.
func (c *Client) CreateProject(ctx context.Context, req CreateProject) (Project, error) {
	var project Project
	err := c.postJSON(ctx, "/projects", req, &project)
	return project, err
}

// GetProject fetches a project with its documents and runs.
func (c *Client) GetProject(ctx context.Context, projectID string) (ProjectDetail, error) {
	var detail ProjectDetail
	err := c.getJSON(ctx, "/projects/"+url.PathEscape(projectID), nil, &detail)
	return detail, err
}

// UpdateProject patches mutable project fields.
func (c *Client) UpdateProject(ctx context.Context, projectID string, req UpdateProject) (Project, error) {
	var project Project
	err := c.patchJSON(ctx, "/projects/"+url.PathEscape(projectID), req, &project)
	return project, err
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.url("/projects/"+url.PathEscape(projectID), nil), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// UploadDocuments sends local files to a project as a single multipart
// request, mirroring the backend's /documents/upload form contract.
func (c *Client) UploadDocuments(ctx context.Context, projectID string, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files to upload")
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for _, path := range paths {
		if err := appendFile(form, path); err != nil {
			return err
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("finalize multipart form: %w", err)
	}

	endpoint := "/projects/" + url.PathEscape(projectID) + "/documents/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint, nil), &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func appendFile(form *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	part, err := form.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create form part for %s: %w", path, err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy %s into form: %w", path, err)
	}
	return nil
}
